package data

import (
	"context"
	"database/sql"

	"github.com/target/foodcart/internal/migrate"
)

// RunMigrations applies the embedded schema (users table) to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrate.Run(ctx, db)
}
