// Package authapi implements ports.AuthGateway against the token-issuing REST API.
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/target/foodcart/internal/domain/auth"
	"github.com/target/foodcart/internal/ports"
)

const maxBodyBytes = 1 << 20

// Config captures the gateway's connection settings.
type Config struct {
	BaseURL string // e.g. http://localhost:5000/api
	Tokens  ports.TokenStore
	Timeout time.Duration
	Client  *http.Client
	Logger  *slog.Logger
	// Now is the clock used to spot expired JWTs before verifying. Defaults to time.Now.
	Now func() time.Time
}

// Gateway talks to <base>/auth/{login,signup,verify}.
type Gateway struct {
	baseURL string
	tokens  ports.TokenStore
	client  *http.Client
	logger  *slog.Logger
	now     func() time.Time
}

var _ ports.AuthGateway = (*Gateway)(nil)

// ErrRequestFailed is returned by Fetch when the API answers with a non-2xx status.
var ErrRequestFailed = errors.New("request failed")

// NewGateway builds an HTTP gateway. BaseURL and Tokens are required.
func NewGateway(cfg Config) (*Gateway, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("auth api base url is required")
	}
	if cfg.Tokens == nil {
		return nil, errors.New("auth api token store is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Gateway{
		baseURL: base,
		tokens:  cfg.Tokens,
		client:  hc,
		logger:  logger.With("component", "auth_gateway"),
		now:     now,
	}, nil
}

// Login posts credentials. The decoded body is returned whatever the HTTP status.
func (g *Gateway) Login(ctx context.Context, email, password string) domainauth.Result {
	return g.postCredentials(ctx, "/auth/login", email, password)
}

// Signup posts a registration. The decoded body is returned whatever the HTTP status.
func (g *Gateway) Signup(ctx context.Context, email, password string) domainauth.Result {
	return g.postCredentials(ctx, "/auth/signup", email, password)
}

// VerifyToken checks the persisted token with the API.
// Without a stored token no request is made, and a JWT whose exp has passed is
// rejected locally. A 5xx answer counts as a transport failure, not a rejection.
func (g *Gateway) VerifyToken(ctx context.Context) domainauth.Result {
	token, err := g.tokens.Read(ctx)
	if err != nil {
		g.logger.WarnContext(ctx, "read token failed", "error", err)
		return domainauth.NetworkFailure(domainauth.MessageVerifyFailed)
	}
	if token == "" {
		return domainauth.Result{Success: false, Message: domainauth.MessageNoToken}
	}
	if domainauth.DecodeTokenClaims(token) != nil && domainauth.IsTokenExpired(token, g.now()) {
		return domainauth.Result{Success: false, Message: domainauth.MessageInvalidToken}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/auth/verify", nil)
	if err != nil {
		g.logger.ErrorContext(ctx, "build verify request", "error", err)
		return domainauth.NetworkFailure(domainauth.MessageVerifyFailed)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	res, status, err := g.roundTrip(req)
	if err != nil {
		g.logger.WarnContext(ctx, "verify request failed", "error", err)
		return domainauth.NetworkFailure(domainauth.MessageVerifyFailed)
	}
	if status >= http.StatusInternalServerError {
		g.logger.WarnContext(ctx, "verify unavailable", "status", status, "message", res.Message)
		return domainauth.NetworkFailure(domainauth.MessageVerifyFailed)
	}
	return res
}

func (g *Gateway) postCredentials(ctx context.Context, path, email, password string) domainauth.Result {
	body, err := json.Marshal(domainauth.Credentials{Email: email, Password: password})
	if err != nil {
		return domainauth.NetworkFailure(domainauth.MessageNetworkError)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		g.logger.ErrorContext(ctx, "build auth request", "path", path, "error", err)
		return domainauth.NetworkFailure(domainauth.MessageNetworkError)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, _, err := g.roundTrip(req)
	if err != nil {
		g.logger.WarnContext(ctx, "auth request failed", "path", path, "error", err)
		return domainauth.NetworkFailure(domainauth.MessageNetworkError)
	}
	return res
}

func (g *Gateway) roundTrip(req *http.Request) (domainauth.Result, int, error) {
	resp, err := g.client.Do(req)
	if err != nil {
		return domainauth.Result{}, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	var res domainauth.Result
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&res); err != nil {
		return domainauth.Result{}, resp.StatusCode, fmt.Errorf("decode %s response (status %d): %w", req.URL.Path, resp.StatusCode, err)
	}
	res.Transport = false
	return res, resp.StatusCode, nil
}

// Fetch performs an authenticated JSON request against <base><path> and decodes
// the response into out (when non-nil). A non-2xx answer whose message mentions
// the token or its expiry drops the persisted token.
func (g *Gateway) Fetch(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token, err := g.tokens.Read(ctx)
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return g.handleErrorResponse(ctx, resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (g *Gateway) handleErrorResponse(ctx context.Context, resp *http.Response) error {
	var res domainauth.Result
	_ = json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&res)

	msg := res.Message
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	if staleTokenMessage(msg) {
		if err := g.tokens.Delete(ctx); err != nil {
			g.logger.WarnContext(ctx, "delete stale token failed", "error", err)
		}
	}
	return fmt.Errorf("%w: status %d: %s", ErrRequestFailed, resp.StatusCode, msg)
}

func staleTokenMessage(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "token") || strings.Contains(m, "expired")
}
