package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/target/foodcart/config"
	"github.com/target/foodcart/internal/adapters/authapi"
	"github.com/target/foodcart/internal/adapters/demoauth"
	"github.com/target/foodcart/internal/adapters/filestore"
	"github.com/target/foodcart/internal/adapters/memory"
	redisadapter "github.com/target/foodcart/internal/adapters/redis"
	"github.com/target/foodcart/internal/ports"
	"github.com/target/foodcart/internal/service"
)

// ClientDeps contains what BuildSessionClient needs.
type ClientDeps struct {
	Config *config.AppConfig
	// Redis is used by the redis token store; when nil one is connected from Config.Redis.
	Redis  redis.UniversalClient
	Logger *slog.Logger
}

// SessionClient bundles a session store with the adapters behind it.
type SessionClient struct {
	Store   *service.SessionStore
	Gateway ports.AuthGateway
	Tokens  ports.TokenStore

	closers []func() error
}

// Close disposes the store and releases connections opened by BuildSessionClient.
func (c *SessionClient) Close() error {
	if c == nil {
		return nil
	}
	if c.Store != nil {
		c.Store.Close()
	}
	var errs []error
	for _, fn := range c.closers {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// BuildSessionClient selects the token store and gateway from config and
// constructs the session store over them.
func BuildSessionClient(ctx context.Context, deps ClientDeps) (*SessionClient, error) {
	if deps.Config == nil {
		return nil, errors.New("client config is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	client := &SessionClient{}

	tokens, err := buildTokenStore(ctx, deps, client, logger)
	if err != nil {
		return nil, err
	}
	gateway, err := buildGateway(deps.Config, tokens, logger)
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	client.Tokens = tokens
	client.Gateway = gateway
	client.Store = service.NewSessionStore(service.SessionStoreOptions{
		Gateway:      gateway,
		Tokens:       tokens,
		Logger:       logger,
		DiscardStale: deps.Config.Client.DiscardStale,
	})
	return client, nil
}

//nolint:ireturn // the store kind is chosen at runtime.
func buildTokenStore(ctx context.Context, deps ClientDeps, client *SessionClient, logger *slog.Logger) (ports.TokenStore, error) {
	cfg := deps.Config.Client
	switch cfg.TokenStore {
	case config.TokenStoreMemory:
		return memory.NewTokenStore(), nil

	case config.TokenStoreRedis:
		rc := deps.Redis
		if rc == nil {
			connected, err := ConnectRedis(ctx, DatabaseConfig{RedisConfig: deps.Config.Redis, Logger: logger})
			if err != nil {
				return nil, fmt.Errorf("connect token redis: %w", err)
			}
			rc = connected
			client.closers = append(client.closers, connected.Close)
		}
		return redisadapter.NewTokenStoreWithPrefix(rc, cfg.TokenRedisPrefix), nil

	case config.TokenStoreFile, "":
		path := cfg.TokenFile
		if path == "" {
			p, err := filestore.DefaultPath()
			if err != nil {
				return nil, fmt.Errorf("resolve token file: %w", err)
			}
			path = p
		}
		return filestore.NewTokenStore(path), nil

	default:
		return nil, fmt.Errorf("unsupported token store %q", cfg.TokenStore)
	}
}

//nolint:ireturn // the gateway kind is chosen at runtime.
func buildGateway(cfg *config.AppConfig, tokens ports.TokenStore, logger *slog.Logger) (ports.AuthGateway, error) {
	if cfg.IsDemoMode() {
		logger.Info("using demo auth gateway")
		gw, err := demoauth.NewGateway(demoauth.Config{Tokens: tokens})
		if err != nil {
			return nil, fmt.Errorf("build demo gateway: %w", err)
		}
		return gw, nil
	}
	gw, err := authapi.NewGateway(authapi.Config{
		BaseURL: cfg.Client.APIBaseURL,
		Tokens:  tokens,
		Timeout: cfg.Client.RequestTimeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build auth api gateway: %w", err)
	}
	return gw, nil
}
