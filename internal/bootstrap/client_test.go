package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/foodcart/config"
	"github.com/target/foodcart/internal/adapters/authapi"
	"github.com/target/foodcart/internal/adapters/demoauth"
	"github.com/target/foodcart/internal/adapters/filestore"
	"github.com/target/foodcart/internal/adapters/memory"
	redisadapter "github.com/target/foodcart/internal/adapters/redis"
	"github.com/target/foodcart/internal/testutil"
)

func clientConfig(kind config.TokenStoreKind, mode config.AuthMode) *config.AppConfig {
	cfg := &config.AppConfig{
		Auth: config.AuthConfig{Mode: mode},
		Client: config.ClientConfig{
			APIBaseURL:       "http://localhost:5000/api",
			TokenStore:       kind,
			TokenRedisPrefix: "test:",
		},
	}
	cfg.Sanitize()
	return cfg
}

func TestBuildSessionClient_TokenStores(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		c, err := BuildSessionClient(ctx, ClientDeps{Config: clientConfig(config.TokenStoreMemory, config.AuthModeAPI)})
		require.NoError(t, err)
		t.Cleanup(func() { _ = c.Close() })
		assert.IsType(t, &memory.TokenStore{}, c.Tokens)
		assert.IsType(t, &authapi.Gateway{}, c.Gateway)
	})

	t.Run("file", func(t *testing.T) {
		cfg := clientConfig(config.TokenStoreFile, config.AuthModeAPI)
		cfg.Client.TokenFile = filepath.Join(t.TempDir(), "session.json")

		c, err := BuildSessionClient(ctx, ClientDeps{Config: cfg})
		require.NoError(t, err)
		t.Cleanup(func() { _ = c.Close() })
		fs, ok := c.Tokens.(*filestore.TokenStore)
		require.True(t, ok)
		assert.Equal(t, cfg.Client.TokenFile, fs.Path())
	})

	t.Run("redis", func(t *testing.T) {
		_, rc := testutil.SetupMiniRedis(t)
		c, err := BuildSessionClient(ctx, ClientDeps{Config: clientConfig(config.TokenStoreRedis, config.AuthModeAPI), Redis: rc})
		require.NoError(t, err)
		t.Cleanup(func() { _ = c.Close() })
		assert.IsType(t, &redisadapter.TokenStore{}, c.Tokens)

		require.NoError(t, c.Tokens.Write(ctx, "tok123"))
		got, err := rc.Get(ctx, "test:token").Result()
		require.NoError(t, err)
		assert.Equal(t, "tok123", got)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := BuildSessionClient(ctx, ClientDeps{Config: clientConfig("localStorage", config.AuthModeAPI)})
		require.Error(t, err)
	})
}

func TestBuildSessionClient_DemoMode(t *testing.T) {
	ctx := context.Background()
	c, err := BuildSessionClient(ctx, ClientDeps{Config: clientConfig(config.TokenStoreMemory, config.AuthModeDemo)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	assert.IsType(t, &demoauth.Gateway{}, c.Gateway)

	res := c.Store.Login(ctx, "a@b.com", "secret1")
	require.True(t, res.Success)
	assert.True(t, c.Store.State().IsAuthenticated)

	token, err := c.Tokens.Read(ctx)
	require.NoError(t, err)
	assert.Contains(t, token, demoauth.TokenPrefix)
}

func TestBuildSessionClient_RequiresConfig(t *testing.T) {
	_, err := BuildSessionClient(context.Background(), ClientDeps{})
	require.Error(t, err)
}
