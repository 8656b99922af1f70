package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/target/foodcart/internal/ports"
)

var _ ports.TokenStore = (*TokenStore)(nil)

func TestTokenStore(t *testing.T) {
	ctx := context.Background()
	s := NewTokenStore()

	tok, _ := s.Read(ctx)
	assert.Empty(t, tok)

	assert.NoError(t, s.Write(ctx, "tok123"))
	tok, _ = s.Read(ctx)
	assert.Equal(t, "tok123", tok)

	assert.NoError(t, s.Delete(ctx))
	tok, _ = s.Read(ctx)
	assert.Empty(t, tok)
}
