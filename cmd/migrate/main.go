package main

import (
	"context"
	"os"

	"github.com/polygonid/wallet-mediator/internal/config"
	"github.com/polygonid/wallet-mediator/internal/db"
	"github.com/polygonid/wallet-mediator/internal/db/schema"
	"github.com/polygonid/wallet-mediator/internal/log"

	_ "github.com/lib/pq"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(".env")
	if err != nil {
		log.Error(ctx, "cannot load config", "err", err)
		return
	}

	log.Config(cfg.Log.Level, cfg.Log.Mode, os.Stdout)
	log.Debug(ctx, "database", "provider", cfg.Storage.Provider, "url", cfg.Storage.URL)

	switch cfg.Storage.Provider {
	case config.StorageProviderPostgres:
		err = schema.Migrate(cfg.Storage.URL)
	case config.StorageProviderSQLite:
		err = migrateSQLite(ctx, cfg.Storage.URL)
	default:
		log.Info(ctx, "nothing to migrate", "provider", cfg.Storage.Provider)
		return
	}
	if err != nil {
		log.Error(ctx, "error migrating database", "err", err)
		return
	}

	log.Info(ctx, "migration done!")
}

func migrateSQLite(ctx context.Context, dsn string) error {
	conn, err := db.NewSQLite(ctx, dsn)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()
	return schema.MigrateDB(conn.Writer.DB, schema.DialectSQLite)
}
