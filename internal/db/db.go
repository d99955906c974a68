// Package db provides helpers for connecting to PostgreSQL and running
// migrations.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
)

// Connect opens a connection pool to PostgreSQL and verifies connectivity.
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	pool, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}

	// Small service, small pool: queries are two cheap reads and ingestion
	// holds a single transaction.
	pool.SetMaxOpenConns(10)
	pool.SetMaxIdleConns(5)
	pool.SetConnMaxLifetime(5 * time.Minute)

	if err := pool.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}

	slog.Info("database connected", "dsn_host", sanitizeDSN(dsn))
	return pool, nil
}

// Healthy returns nil when the database is reachable.
func Healthy(ctx context.Context, db *sql.DB) error {
	return db.PingContext(ctx)
}

// sanitizeDSN strips the password from the DSN for logging purposes.
func sanitizeDSN(dsn string) string {
	// Simple approach: just show enough to identify the target.
	if len(dsn) > 40 {
		return dsn[:40] + "..."
	}
	return dsn
}
