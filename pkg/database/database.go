// Package database is the SQL adapter: pool management on top of sqlx and
// translation of driver failures into the shared error taxonomy so driver
// internals never reach API clients.
package database

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/elemental-io/elemental/pkg/config"
)

// Open builds the Postgres connection pool and verifies it with a ping.
// Failures come back already translated.
func Open(ctx context.Context, cfg config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, Translate(err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeSeconds) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, Translate(err)
	}
	return db, nil
}
