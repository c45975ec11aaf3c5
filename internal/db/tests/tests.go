package tests

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/polygonid/wallet-mediator/internal/db"
	"github.com/polygonid/wallet-mediator/internal/db/schema"
)

const (
	defaultTimeOut = 40
)

// NewTestStorage creates a fresh migrated postgres database on the server located by serverURL
func NewTestStorage(serverURL string) (*db.Storage, func(), error) {
	noopTeardown := func() {}
	if serverURL == "" {
		return nil, noopTeardown, errors.New("testdb: no connection string")
	}

	tempDBName := "wallet_mediator_test_" + time.Now().UTC().Format("20060102150405.999999999")
	tempURL, err := url.Parse(serverURL + "/" + tempDBName + "?sslmode=disable")
	if err != nil {
		return nil, noopTeardown, fmt.Errorf("connection string is invalid: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeOut*time.Second)
	defer cancel()

	storage, err := db.NewStorage(ctx, serverURL)
	if err != nil {
		return nil, noopTeardown, fmt.Errorf("can't connect to database: %v", err)
	}

	_, err = storage.Pgx.Exec(ctx, fmt.Sprintf(`create database "%s";`, tempDBName))
	_ = storage.Close()
	if err != nil {
		return nil, noopTeardown, fmt.Errorf("failed to create database (%s): %v", tempDBName, err)
	}

	if err := schema.Migrate(tempURL.String()); err != nil {
		return nil, noopTeardown, fmt.Errorf("can't migrate database %v", err)
	}

	storage, err = db.NewStorage(ctx, tempURL.String())
	if err != nil {
		return nil, noopTeardown, fmt.Errorf("can't connect to database: %v", err)
	}

	teardown := func() {
		_ = storage.Close()
	}
	return storage, teardown, nil
}

// NewTestSQLite opens a sqlite database in a temporary directory that is removed when the test ends
func NewTestSQLite(t *testing.T) *db.SQLite {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "wallet.db") + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	conn, err := db.NewSQLite(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}
