package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/target/foodcart/internal/domain/model"
	apperrors "github.com/target/foodcart/internal/errors"
	"github.com/target/foodcart/internal/mocks"
	"github.com/target/foodcart/internal/ports"
)

type accountFixture struct {
	users  *mocks.MockUserRepository
	hasher *mocks.MockPasswordHasher
	tokens *mocks.MockTokenIssuer
	svc    *AccountService
}

func newAccountFixture(t *testing.T) accountFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := accountFixture{
		users:  mocks.NewMockUserRepository(ctrl),
		hasher: mocks.NewMockPasswordHasher(ctrl),
		tokens: mocks.NewMockTokenIssuer(ctrl),
	}
	f.svc = NewAccountService(AccountServiceOptions{Users: f.users, Hasher: f.hasher, Tokens: f.tokens})
	return f
}

func storedUser() *model.User {
	return &model.User{
		ID:           "6f1c2a9e-0000-4000-8000-000000000001",
		Email:        "a@b.com",
		PasswordHash: "$2a$04$hash",
		CreatedAt:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestAccountService_Signup_Success(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	f.hasher.EXPECT().Hash("secret1").Return("$2a$04$hash", nil)
	f.users.EXPECT().
		Create(ctx, &model.CreateUserRequest{Email: "a@b.com", PasswordHash: "$2a$04$hash"}).
		Return(storedUser(), nil)

	out, err := f.svc.Signup(ctx, "  A@B.com ", "secret1")

	require.NoError(t, err)
	assert.Equal(t, "a@b.com", out.User.Email)
}

func TestAccountService_Signup_ValidationErrors(t *testing.T) {
	f := newAccountFixture(t)

	_, err := f.svc.Signup(context.Background(), "not-an-email", "123")

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, map[string]string{
		"email":    "Please enter a valid email address",
		"password": "Password must be at least 6 characters long",
	}, appErr.FieldErrors())
}

func TestAccountService_Signup_DuplicateEmail(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	f.hasher.EXPECT().Hash(gomock.Any()).Return("hash", nil)
	f.users.EXPECT().Create(ctx, gomock.Any()).Return(nil, apperrors.ConflictField("email", "This value already exists."))

	_, err := f.svc.Signup(ctx, "a@b.com", "secret1")

	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "email", apperrors.GetField(err))
	assert.Equal(t, "Email already exists", err.Error())
}

func TestAccountService_Signup_HashFailure(t *testing.T) {
	f := newAccountFixture(t)
	f.hasher.EXPECT().Hash(gomock.Any()).Return("", errors.New("cost out of range"))

	_, err := f.svc.Signup(context.Background(), "a@b.com", "secret1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "hash password")
}

func TestAccountService_Login_Success(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	u := storedUser()

	f.users.EXPECT().GetByEmail(ctx, "a@b.com").Return(u, nil)
	f.hasher.EXPECT().Compare(u.PasswordHash, "secret1").Return(nil)
	f.tokens.EXPECT().Issue(u.ID, u.Email).Return("tok123", nil)

	out, err := f.svc.Login(ctx, "A@b.com", "secret1")

	require.NoError(t, err)
	assert.Equal(t, "tok123", out.Token)
	assert.Equal(t, "a@b.com", out.User.Email)
}

func TestAccountService_Login_UnknownEmail(t *testing.T) {
	f := newAccountFixture(t)
	f.users.EXPECT().GetByEmail(gomock.Any(), "a@b.com").Return(nil, apperrors.NotFound("user not found"))

	_, err := f.svc.Login(context.Background(), "a@b.com", "secret1")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.True(t, IsAuthError(err))
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	f := newAccountFixture(t)
	u := storedUser()
	f.users.EXPECT().GetByEmail(gomock.Any(), "a@b.com").Return(u, nil)
	f.hasher.EXPECT().Compare(u.PasswordHash, "wrong").Return(errors.New("mismatch"))

	_, err := f.svc.Login(context.Background(), "a@b.com", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, "Invalid email or password", err.Error())
}

func TestAccountService_Login_EmptyInputSkipsLookup(t *testing.T) {
	f := newAccountFixture(t)

	_, err := f.svc.Login(context.Background(), "", "")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAccountService_Login_RepositoryFailure(t *testing.T) {
	f := newAccountFixture(t)
	f.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	_, err := f.svc.Login(context.Background(), "a@b.com", "secret1")

	require.Error(t, err)
	assert.False(t, IsAuthError(err))
	assert.Contains(t, err.Error(), "get user")
}

func TestAccountService_Verify(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	u := storedUser()

	f.tokens.EXPECT().Verify("tok123").Return(ports.TokenClaims{Subject: u.ID, Email: u.Email}, nil)
	f.users.EXPECT().GetByID(ctx, u.ID).Return(u, nil)

	user, err := f.svc.Verify(ctx, "tok123")

	require.NoError(t, err)
	assert.Equal(t, "a@b.com", user.Email)
}

func TestAccountService_Verify_Rejections(t *testing.T) {
	t.Run("empty token", func(t *testing.T) {
		f := newAccountFixture(t)
		_, err := f.svc.Verify(context.Background(), "")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("bad signature", func(t *testing.T) {
		f := newAccountFixture(t)
		f.tokens.EXPECT().Verify("forged").Return(ports.TokenClaims{}, errors.New("signature is invalid"))
		_, err := f.svc.Verify(context.Background(), "forged")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("user removed", func(t *testing.T) {
		f := newAccountFixture(t)
		f.tokens.EXPECT().Verify("tok123").Return(ports.TokenClaims{Subject: "gone"}, nil)
		f.users.EXPECT().GetByID(gomock.Any(), "gone").Return(nil, apperrors.NotFound("user not found"))
		_, err := f.svc.Verify(context.Background(), "tok123")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
