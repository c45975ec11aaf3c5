package schema

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/polygonid/wallet-mediator/internal/log"
)

// Migration dialects
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var embedMigrations embed.FS

// Migrate runs the postgres migrations on the databaseURL
func Migrate(databaseURL string) error {
	var db *sql.DB
	// setup database
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return fmt.Errorf("error open connection with database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error(context.Background(), "closing database", "err", err)
		}
	}()

	return MigrateDB(db, DialectPostgres)
}

// MigrateDB runs the migrations of the given dialect on an open database
func MigrateDB(db *sql.DB, dialect string) error {
	dir, err := migrationsDir(dialect)
	if err != nil {
		return err
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("error setting dialect: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("error trying to run migrations: %w", err)
	}

	return nil
}

func migrationsDir(dialect string) (string, error) {
	switch dialect {
	case DialectPostgres:
		return "migrations/postgres", nil
	case DialectSQLite:
		return "migrations/sqlite", nil
	}
	return "", fmt.Errorf("unsupported migration dialect %q", dialect)
}
