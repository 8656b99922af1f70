package cryptoutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashCompare(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)

	// bcrypt hashes are salted and never contain the plaintext
	assert.NotContains(t, hash, "secret1")
	assert.True(t, strings.HasPrefix(hash, "$2"))

	require.NoError(t, h.Compare(hash, "secret1"))
	assert.ErrorIs(t, h.Compare(hash, "secret2"), ErrMismatchedPassword)
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	a, err := h.Hash("secret1")
	require.NoError(t, err)
	b, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	err = h.Compare("not-a-hash", "secret1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMismatchedPassword)
}

func TestNewBcryptHasher_CostRange(t *testing.T) {
	_, err := NewBcryptHasher(bcrypt.MinCost - 1)
	require.Error(t, err)

	_, err = NewBcryptHasher(bcrypt.MaxCost + 1)
	require.Error(t, err)
}

func TestNoopHasher(t *testing.T) {
	var h NoopHasher

	hash, err := h.Hash("pw")
	require.NoError(t, err)
	assert.Equal(t, "noop:pw", hash)
	require.NoError(t, h.Compare(hash, "pw"))
	assert.ErrorIs(t, h.Compare(hash, "other"), ErrMismatchedPassword)
}
