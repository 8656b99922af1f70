// Package jwtissuer signs and verifies HS256 bearer tokens.
package jwtissuer

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/target/foodcart/internal/ports"
)

var (
	// ErrTokenExpired is returned by Verify for a token past its exp claim.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed is returned by Verify for any other invalid token.
	ErrTokenMalformed = errors.New("token malformed")
)

// Claims is the payload of an issued token.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Options configures an Issuer.
type Options struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
	Logger *slog.Logger
	// Now overrides the clock; nil uses time.Now.
	Now func() time.Time
}

// Issuer implements ports.TokenIssuer with HMAC-SHA256.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	logger *slog.Logger
	now    func() time.Time
}

var _ ports.TokenIssuer = (*Issuer)(nil)

// New constructs an Issuer.
func New(opts Options) (*Issuer, error) {
	if len(opts.Secret) == 0 {
		return nil, errors.New("signing secret is required")
	}
	if opts.TTL <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Issuer{secret: opts.Secret, ttl: opts.TTL, issuer: opts.Issuer, logger: logger, now: now}, nil
}

// Issue mints a token for the given user.
func (i *Issuer) Issue(userID, email string) (string, error) {
	now := i.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    i.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Email: email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, issuer and expiry and returns the token's claims.
func (i *Issuer) Verify(token string) (ports.TokenClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	}
	if i.issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.issuer))
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			i.logger.Warn("unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ports.TokenClaims{}, ErrTokenExpired
		}
		return ports.TokenClaims{}, fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return ports.TokenClaims{}, ErrTokenMalformed
	}

	return ports.TokenClaims{
		Subject:   claims.Subject,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
