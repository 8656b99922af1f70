package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeAPI talks to the token-issuing REST API.
	AuthModeAPI AuthMode = "api"
	// AuthModeDemo uses the built-in demo gateway (no backend required).
	AuthModeDemo AuthMode = "demo"
)

const (
	minBcryptCost     = 4
	maxBcryptCost     = 31
	defaultBcryptCost = 12
	minJWTSecretLen   = 16
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "api", "demo":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: api, demo)", v)
	}
}

// AuthConfig groups token issuing and credential hashing configuration.
type AuthConfig struct {
	// Mode determines which gateway the session client uses.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"api"`

	// JWTSecret is the HMAC key used to sign bearer tokens.
	JWTSecret string `env:"AUTH_JWT_SECRET"`

	// TokenTTL is how long an issued token stays valid.
	TokenTTL time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"24h"`

	// Issuer is written to the iss claim and enforced on verification.
	Issuer string `env:"AUTH_TOKEN_ISSUER" envDefault:"foodcart"`

	// BcryptCost is the bcrypt work factor for stored password hashes.
	BcryptCost int `env:"AUTH_BCRYPT_COST" envDefault:"12"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	a.JWTSecret = strings.TrimSpace(a.JWTSecret)
	a.Issuer = strings.TrimSpace(a.Issuer)
	if a.TokenTTL <= 0 {
		a.TokenTTL = 24 * time.Hour
	}
	if a.BcryptCost == 0 {
		a.BcryptCost = defaultBcryptCost
	}
	if a.BcryptCost < minBcryptCost {
		a.BcryptCost = minBcryptCost
	}
	if a.BcryptCost > maxBcryptCost {
		a.BcryptCost = maxBcryptCost
	}
}

// Validate reports configuration that the API server cannot start with.
func (a *AuthConfig) Validate() error {
	if len(a.JWTSecret) < minJWTSecretLen {
		return fmt.Errorf("AUTH_JWT_SECRET must be at least %d characters", minJWTSecretLen)
	}
	return nil
}
