package database

import (
	"context"
	"fmt"
	"log"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"github.com/jmoiron/sqlx"
)

// Migrate creates or updates the users and tasks tables using ent's schema
// migrator over the already open connection.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	log.Println("Running auto migration...")

	drv := sql.OpenDB(db.DriverName(), db.DB)
	migrate, err := schema.NewMigrate(drv,
		schema.WithDropIndex(true),
		schema.WithDropColumn(true),
		schema.WithForeignKeys(true),
	)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := migrate.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("run auto migration: %w", err)
	}

	log.Println("Auto migration completed")
	return nil
}
