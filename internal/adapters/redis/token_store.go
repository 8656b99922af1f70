package redis

// Package redis provides Redis-based adapters for the foodcart client.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	domainauth "github.com/target/foodcart/internal/domain/auth"
)

const defaultPrefix = "foodcart:"

// TokenStore keeps the bearer token in Redis under <prefix>token so several
// processes on one host can share a login.
// Tokens carrying an exp claim are stored with a matching TTL.
type TokenStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewTokenStore creates a Redis token store with the default key prefix.
func NewTokenStore(client redis.UniversalClient) *TokenStore {
	return NewTokenStoreWithPrefix(client, defaultPrefix)
}

// NewTokenStoreWithPrefix creates a Redis token store with a custom key prefix.
func NewTokenStoreWithPrefix(client redis.UniversalClient, prefix string) *TokenStore {
	return &TokenStore{client: client, prefix: prefix, now: time.Now}
}

func (s *TokenStore) key() string {
	return s.prefix + domainauth.TokenKey
}

// Read returns the stored token, or "" when none is stored.
func (s *TokenStore) Read(ctx context.Context) (string, error) {
	tok, err := s.client.Get(ctx, s.key()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return tok, nil
}

// Write replaces the stored token.
func (s *TokenStore) Write(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}

	var ttl time.Duration
	if claims := domainauth.DecodeTokenClaims(token); claims != nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			ttl = exp.Sub(s.now())
			if ttl <= 0 {
				return errors.New("token is expired")
			}
		}
	}

	if err := s.client.Set(ctx, s.key(), token, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes the stored token. Deleting a missing token is not an error.
func (s *TokenStore) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key()).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
