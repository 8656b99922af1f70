package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/target/foodcart/config"
)

const shutdownWaitTimeout = 10 * time.Second

// ServerDeps groups what RunServer needs once infrastructure is connected.
type ServerDeps struct {
	Config *config.AppConfig
	DB     *sql.DB
	Logger *slog.Logger
	// Listener overrides binding Config.HTTP.Addr (tests use 127.0.0.1:0).
	Listener net.Listener
}

// RunServer wires the account service into the HTTP server and runs it until
// ctx is canceled or SIGINT/SIGTERM arrives.
func RunServer(ctx context.Context, deps ServerDeps) error {
	if deps.Config == nil {
		return errors.New("server config is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	accounts, err := BuildAccountService(AccountDeps{Auth: deps.Config.Auth, DB: deps.DB, Logger: logger})
	if err != nil {
		return err
	}
	server, err := NewHTTPServer(&HTTPServerConfig{Config: deps.Config, Accounts: accounts, Logger: logger})
	if err != nil {
		return err
	}

	ln := deps.Listener
	if ln == nil {
		var lc net.ListenConfig
		ln, err = lc.Listen(ctx, "tcp", server.Addr)
		if err != nil {
			return fmt.Errorf("listen %s: %w", server.Addr, err)
		}
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(sigCtx)
	g.Go(func() error { return ServeHTTP(gctx, server, ln, logger) })
	if deps.DB != nil {
		g.Go(func() error { return watchDB(gctx, deps.DB, logger) })
	}
	return g.Wait()
}

// watchDB logs when the database stops answering pings. It never fails the group.
func watchDB(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	healthy := true
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := db.PingContext(pingCtx)
			cancel()
			switch {
			case err != nil && healthy:
				logger.Warn("database ping failed", "error", err)
				healthy = false
			case err == nil && !healthy:
				logger.Info("database reachable again")
				healthy = true
			}
		}
	}
}
