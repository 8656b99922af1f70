package demoauth

// Package demoauth provides an offline AuthGateway for demos and local UI work.

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	domainauth "github.com/target/foodcart/internal/domain/auth"
	"github.com/target/foodcart/internal/ports"
)

const (
	// TokenPrefix marks tokens minted by the demo gateway.
	TokenPrefix = "demo-token"
	// DefaultEmail is the identity reported by VerifyToken.
	DefaultEmail = "demo@example.com"
)

// Config controls the demo gateway. Tokens is required.
type Config struct {
	Tokens ports.TokenStore
	Email  string           // default DefaultEmail
	Now    func() time.Time // default time.Now
}

// Gateway implements ports.AuthGateway without a backend.
// Login and signup always succeed; verify accepts any token it could have minted.
type Gateway struct {
	tokens ports.TokenStore
	email  string
	now    func() time.Time
}

var _ ports.AuthGateway = (*Gateway)(nil)

// NewGateway constructs a demo gateway from Config.
func NewGateway(cfg Config) (*Gateway, error) {
	if cfg.Tokens == nil {
		return nil, errors.New("demo auth: Tokens is required")
	}
	email := cfg.Email
	if email == "" {
		email = DefaultEmail
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Gateway{tokens: cfg.Tokens, email: email, now: now}, nil
}

// Login returns a demo token for any credentials.
func (g *Gateway) Login(_ context.Context, email, _ string) domainauth.Result {
	return domainauth.Result{
		Success: true,
		Message: "Demo login successful",
		Token:   TokenPrefix + "-" + strconv.FormatInt(g.now().UnixMilli(), 10),
		User:    &domainauth.User{Email: email},
	}
}

// Signup accepts any registration.
func (g *Gateway) Signup(context.Context, string, string) domainauth.Result {
	return domainauth.Result{Success: true, Message: "Demo signup successful"}
}

// VerifyToken accepts tokens with the demo prefix.
func (g *Gateway) VerifyToken(ctx context.Context) domainauth.Result {
	token, err := g.tokens.Read(ctx)
	if err != nil || token == "" {
		return domainauth.Result{Success: false, Message: domainauth.MessageNoToken}
	}
	if !strings.HasPrefix(token, TokenPrefix) {
		return domainauth.Result{Success: false, Message: domainauth.MessageInvalidToken}
	}
	return domainauth.Result{Success: true, User: &domainauth.User{Email: g.email}}
}
