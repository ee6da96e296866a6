package db

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq" // Register postgres driver
)

// NewPool opens a pgx connection pool (catalog service).
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Open opens a database/sql connection without pinging (order service).
func Open(dsn string) (*sql.DB, error) {
	return sql.Open("postgres", dsn)
}
