package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/polygonid/wallet-mediator/internal/log"
)

// Storage is the postgres connection pool of the tenant store
type Storage struct {
	Pgx *pgxpool.Pool
}

// NewStorage connects to the postgres database located by connectionString and checks it answers
func NewStorage(ctx context.Context, connectionString string) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(connectionString)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres url: %w", err)
	}
	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Storage{Pgx: pool}, nil
}

// Ping checks the database is reachable
func (s *Storage) Ping(ctx context.Context) error {
	return s.Pgx.Ping(ctx)
}

// Close all connections to database
func (s *Storage) Close() error {
	log.Info(context.Background(), "closing postgres pool")
	s.Pgx.Close()
	return nil
}
