package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	domainauth "github.com/target/foodcart/internal/domain/auth"
	apperrors "github.com/target/foodcart/internal/errors"
	"github.com/target/foodcart/internal/service"
)

const (
	messageSignupSucceeded = "User created successfully"
	messageLoginSucceeded  = "Login successful"
	messageNoBearerToken   = "No token provided"
)

// AccountService is the backend surface the auth handlers need.
type AccountService interface {
	Signup(ctx context.Context, email, password string) (*service.SignupOutput, error)
	Login(ctx context.Context, email, password string) (*service.LoginOutput, error)
	Verify(ctx context.Context, token string) (*domainauth.User, error)
}

var _ AccountService = (*service.AccountService)(nil)

// AuthHandlers provides HTTP handlers for the token-issuing auth API.
type AuthHandlers struct {
	Svc    AccountService
	Logger *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Signup registers an account.
// POST /api/auth/signup {email,password}.
func (h *AuthHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	var in domainauth.Credentials
	if !DecodeJSON(w, r, &in) {
		return
	}

	if _, err := h.Svc.Signup(r.Context(), in.Email, in.Password); err != nil {
		h.writeFailure(w, r, "signup", err)
		return
	}
	WriteJSON(w, http.StatusCreated, Response{Success: true, Message: messageSignupSucceeded})
}

// Login exchanges credentials for a bearer token.
// POST /api/auth/login {email,password}.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var in domainauth.Credentials
	if !DecodeJSON(w, r, &in) {
		return
	}

	out, err := h.Svc.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		h.writeFailure(w, r, "login", err)
		return
	}
	WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Message: messageLoginSucceeded,
		Token:   out.Token,
		User:    out.User,
	})
}

// Verify resolves the bearer token to its user.
// GET /api/auth/verify with Authorization: Bearer <token>.
func (h *AuthHandlers) Verify(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, Message: messageNoBearerToken})
		return
	}

	user, err := h.Svc.Verify(r.Context(), token)
	if err != nil {
		h.writeFailure(w, r, "verify", err)
		return
	}
	WriteJSON(w, http.StatusOK, Response{Success: true, User: user})
}

func (h *AuthHandlers) writeFailure(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case service.IsAuthError(err):
		h.logger().InfoContext(r.Context(), "auth rejected", "op", op, "reason", err.Error())
	case apperrors.GetCode(err) == "" || apperrors.IsInternal(err):
		h.logger().ErrorContext(r.Context(), "auth request failed", "op", op, "error", err)
	}
	WriteAppError(w, err)
}

func bearerToken(r *http.Request) string {
	v := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(v, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
