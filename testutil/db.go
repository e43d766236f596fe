// Package testutil provides shared helpers for integration tests.
// Helpers in this package skip automatically when no test database is
// available, so unit tests can run without Postgres.
package testutil

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql

	"github.com/pessoas-api/backend/internal/database"
)

// RunWithDatabase is meant to be called from TestMain. It resolves a test
// database (see ResolveDSN), applies all migrations, runs the tests, and
// tears down any container it started. It returns the exit code for os.Exit.
//
// When no database is available the tests still run; integration tests
// skip themselves through NewPool.
func RunWithDatabase(m *testing.M) int {
	ctx := context.Background()

	dsn, cleanup, err := ResolveDSN(ctx)
	if err != nil {
		log.Printf("testutil.RunWithDatabase: %v", err)
		return 1
	}
	defer cleanup()

	if dsn != "" {
		db := MustOpenSQLDB(dsn)
		err := database.Migrate(ctx, db)
		db.Close()
		if err != nil {
			log.Printf("testutil.RunWithDatabase: migrate: %v", err)
			return 1
		}
	}

	return m.Run()
}

// NewPool opens a *pgxpool.Pool connected to TEST_DATABASE_URL.
// The test is skipped if no test database is configured. The pool is closed
// automatically when the test finishes.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := requireDSN(t)

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("testutil.NewPool: open pool: %v", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("testutil.NewPool: ping: %v", err)
	}

	t.Cleanup(pool.Close)
	return pool
}

// NewSQLDB opens a *sql.DB on TEST_DATABASE_URL through the pgx stdlib driver.
// goose needs database/sql rather than a pgx pool.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := openSQLDB(requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// MustOpenSQLDB opens a *sql.DB for the given DSN and panics on any error.
// Use this where no *testing.T is available. Callers close the returned *sql.DB.
func MustOpenSQLDB(dsn string) *sql.DB {
	db, err := openSQLDB(dsn)
	if err != nil {
		panic("testutil.MustOpenSQLDB: " + err.Error())
	}
	return db
}

func openSQLDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// requireDSN returns TEST_DATABASE_URL, skipping the test if it is not set.
func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}
	return dsn
}
