package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"time"

	domainauth "github.com/target/foodcart/internal/domain/auth"
)

// AuthGateway performs the network side of a session against the token-issuing backend.
// Implementations never return errors; every failure is folded into a Result.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) domainauth.Result
	Signup(ctx context.Context, email, password string) domainauth.Result
	// VerifyToken validates the persisted token. With no token it must not touch the network.
	VerifyToken(ctx context.Context) domainauth.Result
}

// TokenStore persists the bearer token under the fixed key domainauth.TokenKey.
// Read returns "" and a nil error when no token is stored.
type TokenStore interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}

// TokenClaims is the verified content of an issued token.
type TokenClaims struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies bearer tokens.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
	Verify(token string) (TokenClaims, error)
}

// PasswordHasher hashes passwords and checks candidates against a stored hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil when password matches hash.
	Compare(hash, password string) error
}
