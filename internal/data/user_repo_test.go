package data

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/foodcart/internal/domain/model"
	apperrors "github.com/target/foodcart/internal/errors"
	"github.com/target/foodcart/internal/testutil"
)

func TestUserRepo_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	now := testutil.TestTime()
	repo := NewUserRepoWithTimeProvider(db, NewFixedTimeProvider(now))

	created, err := repo.Create(ctx, &model.CreateUserRequest{Email: "  Alice@Example.com ", PasswordHash: "hash"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "alice@example.com", created.Email)
	assert.Equal(t, "hash", created.PasswordHash)
	assert.WithinDuration(t, now, created.CreatedAt, time.Second)

	byEmail, err := repo.GetByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, byID.Email)
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := NewUserRepo(db)

	_, err := repo.Create(ctx, &model.CreateUserRequest{Email: "dup@example.com", PasswordHash: "hash"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &model.CreateUserRequest{Email: "DUP@example.com", PasswordHash: "hash"})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "email", apperrors.GetField(err))
}

func TestUserRepo_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := NewUserRepo(db)

	_, err := repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUserRepo_Create_Validation(t *testing.T) {
	repo := NewUserRepo(nil)

	_, err := repo.Create(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUserRequestRequired)

	_, err = repo.Create(context.Background(), &model.CreateUserRequest{Email: " ", PasswordHash: "hash"})
	assert.True(t, apperrors.IsValidation(err))
}
