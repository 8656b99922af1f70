package config

import (
	"fmt"
	"strings"
	"time"
)

// TokenStoreKind selects where the session client persists its bearer token.
type TokenStoreKind string

const (
	// TokenStoreFile keeps the token in a local file (survives restarts).
	TokenStoreFile TokenStoreKind = "file"
	// TokenStoreRedis keeps the token in Redis (shared between processes).
	TokenStoreRedis TokenStoreKind = "redis"
	// TokenStoreMemory keeps the token for the lifetime of the process.
	TokenStoreMemory TokenStoreKind = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for TokenStoreKind.
func (k *TokenStoreKind) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "file", "redis", "memory":
		*k = TokenStoreKind(v)
		return nil
	default:
		return fmt.Errorf("invalid TokenStoreKind: %q (valid options: file, redis, memory)", v)
	}
}

// ClientConfig configures the session client used by cmd/foodcart-auth.
type ClientConfig struct {
	// APIBaseURL is the auth API root; endpoints are resolved as <base>/auth/<op>.
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:5000/api"`

	// TokenStore selects the persisted token backend.
	TokenStore TokenStoreKind `env:"TOKEN_STORE" envDefault:"file"`

	// TokenFile is the file used by the file token store.
	// Defaults to <user config dir>/foodcart/session.json when empty.
	TokenFile string `env:"TOKEN_FILE"`

	// TokenRedisPrefix namespaces the "token" key in Redis.
	TokenRedisPrefix string `env:"TOKEN_REDIS_PREFIX" envDefault:"foodcart:"`

	// RequestTimeout bounds each gateway round trip.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`

	// DiscardStale drops results of superseded login/signup/verify attempts.
	DiscardStale bool `env:"DISCARD_STALE" envDefault:"false"`
}

// Sanitize applies guardrails to client configuration values.
func (c *ClientConfig) Sanitize() {
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	c.TokenFile = strings.TrimSpace(c.TokenFile)
	if c.TokenStore == "" {
		c.TokenStore = TokenStoreFile
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 10 * time.Second
	}
}
