// Command foodcart serves the auth API and the web bundle.
//
// Usage:
//
//	foodcart            run the HTTP server
//	foodcart migrate    apply pending migrations and exit
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/target/foodcart/config"
	"github.com/target/foodcart/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger, os.Args[1:]); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger, args []string) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	migrateOnly := len(args) > 0 && args[0] == "migrate"
	if len(args) > 0 && !migrateOnly {
		return fmt.Errorf("unknown command %q", args[0])
	}

	if !migrateOnly {
		if err = bootstrap.ValidateServerConfig(&cfg); err != nil {
			return err
		}
	}

	logStartupInfo(ctx, logger, &cfg)

	db, err := bootstrap.ConnectDB(ctx, bootstrap.DatabaseConfig{DBConfig: cfg.Postgres, Logger: logger})
	if err != nil {
		return err
	}
	defer closeDB(ctx, db, logger)

	if migrateOnly || cfg.Postgres.RunMigrationsOnStart {
		if err = bootstrap.RunMigrations(ctx, db, logger); err != nil {
			return err
		}
	} else {
		logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
	}
	if migrateOnly {
		return nil
	}

	return bootstrap.RunServer(ctx, bootstrap.ServerDeps{Config: &cfg, DB: db, Logger: logger})
}

func closeDB(ctx context.Context, db *sql.DB, logger *slog.Logger) {
	if cerr := db.Close(); cerr != nil {
		logger.ErrorContext(ctx, "close database failed", "error", cerr)
	}
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting foodcart",
		"addr", cfg.HTTP.Addr,
		"dev", cfg.IsDev,
		"db_host", cfg.Postgres.Host,
		"db_name", cfg.Postgres.Name,
		"static_dir", cfg.HTTP.StaticDir,
	)
}
