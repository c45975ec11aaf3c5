package db

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

// Querier is satisfied by a pool and by a transaction, so queries can run inside or outside one
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// TxQuerier is a Querier able to open transactions
type TxQuerier interface {
	Querier
	BeginFunc(ctx context.Context, f func(pgx.Tx) error) (err error)
}
