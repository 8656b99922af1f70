package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/target/foodcart/internal/core"
	domainauth "github.com/target/foodcart/internal/domain/auth"
	"github.com/target/foodcart/internal/domain/model"
	apperrors "github.com/target/foodcart/internal/errors"
	"github.com/target/foodcart/internal/ports"
)

const messageValidationFailed = "Validation failed"

var (
	// ErrInvalidCredentials is returned by Login for an unknown email or a wrong password.
	ErrInvalidCredentials = apperrors.Unauthorized(domainauth.MessageInvalidCredentials)
	// ErrInvalidToken is returned by Verify for a token that is malformed, expired or orphaned.
	ErrInvalidToken = apperrors.Unauthorized(domainauth.MessageInvalidToken)
)

// AccountServiceOptions groups dependencies for AccountService.
type AccountServiceOptions struct {
	Users  core.UserRepository
	Hasher ports.PasswordHasher
	Tokens ports.TokenIssuer
	Logger *slog.Logger
}

// AccountService registers users, authenticates them and verifies their tokens.
type AccountService struct {
	users  core.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	logger *slog.Logger
}

// NewAccountService constructs a new AccountService.
func NewAccountService(opts AccountServiceOptions) *AccountService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{
		users:  opts.Users,
		hasher: opts.Hasher,
		tokens: opts.Tokens,
		logger: logger.With("component", "account_service"),
	}
}

// SignupOutput is the outcome of a successful signup.
type SignupOutput struct {
	User domainauth.User
}

// LoginOutput is the outcome of a successful login.
type LoginOutput struct {
	Token string
	User  domainauth.User
}

// Signup validates the credentials and creates the account. A duplicate email
// yields a Conflict AppError on the "email" field.
func (s *AccountService) Signup(ctx context.Context, email, password string) (*SignupOutput, error) {
	if fields := domainauth.ValidateCredentials(domainauth.Credentials{Email: email, Password: password}); fields != nil {
		return nil, apperrors.ValidationFields(messageValidationFailed, fields)
	}
	email = model.NormalizeEmail(email)

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &model.CreateUserRequest{Email: email, PasswordHash: hash})
	if err != nil {
		if apperrors.IsConflict(err) {
			return nil, apperrors.ConflictField("email", domainauth.MessageEmailExists)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user signed up", "user_id", user.ID)
	return &SignupOutput{User: domainauth.User{Email: user.Email}}, nil
}

// Login checks the credentials and issues a bearer token.
func (s *AccountService) Login(ctx context.Context, email, password string) (*LoginOutput, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, model.NormalizeEmail(email))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.logger.InfoContext(ctx, "login rejected", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginOutput{Token: token, User: domainauth.User{Email: user.Email}}, nil
}

// Verify resolves token to the user it was issued for.
func (s *AccountService) Verify(ctx context.Context, token string) (*domainauth.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &domainauth.User{Email: user.Email}, nil
}

// IsAuthError reports whether err is one of the credential or token rejections.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrInvalidToken)
}
