// Package database owns the Postgres connection pool and schema migrations.
package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/pessoas-api/backend/internal/config"
	"github.com/pessoas-api/backend/migrations"
)

// PoolConfig builds a pgxpool configuration from the application config.
// Pool sizing from DB_* overrides anything in the connection string.
func PoolConfig(cfg config.Config) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("database.PoolConfig: %w", err)
	}
	if cfg.DB.MaxConns > 0 {
		pc.MaxConns = cfg.DB.MaxConns
	}
	if cfg.DB.MinConns > 0 && cfg.DB.MinConns <= pc.MaxConns {
		pc.MinConns = cfg.DB.MinConns
	}
	if cfg.DB.MaxConnIdleTime > 0 {
		pc.MaxConnIdleTime = cfg.DB.MaxConnIdleTime
	}
	return pc, nil
}

// NewPool opens the pool and verifies the database is reachable.
// The caller owns the pool and must Close it.
func NewPool(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	pc, err := PoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("database.NewPool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database.NewPool: ping: %w", err)
	}
	return pool, nil
}

// Migrate applies all pending embedded migrations.
func Migrate(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("database.Migrate: create provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("database.Migrate: up: %w", err)
	}
	return nil
}

// MigratePool runs Migrate over a database/sql handle borrowed from pool.
func MigratePool(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return Migrate(ctx, db)
}
