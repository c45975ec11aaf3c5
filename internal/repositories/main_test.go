package repositories

import (
	"context"
	"os"
	"testing"

	"github.com/polygonid/wallet-mediator/internal/db"
	"github.com/polygonid/wallet-mediator/internal/db/tests"
	"github.com/polygonid/wallet-mediator/internal/log"
)

// storage is only set when POSTGRES_TEST_DATABASE points to a reachable server
var storage *db.Storage

func TestMain(m *testing.M) {
	os.Exit(testMain(m))
}

func testMain(m *testing.M) int {
	ctx := context.Background()
	log.Config(log.LevelDebug, log.OutputText, os.Stdout)
	conn := lookupPostgresURL()
	if conn == "" {
		return m.Run()
	}

	s, teardown, err := tests.NewTestStorage(conn)
	defer teardown()
	if err != nil {
		log.Info(ctx, "failed to acquire test database", "err", err)
		return 1
	}
	storage = s
	return m.Run()
}

func lookupPostgresURL() string {
	con, ok := os.LookupEnv("POSTGRES_TEST_DATABASE")
	if !ok {
		return ""
	}
	return con
}
