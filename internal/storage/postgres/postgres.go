package postgres

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDbNotInitialized = errors.New("postgres database not initialized")

type Database struct {
	pool *pgxpool.Pool
}

// NewPool parses databaseURL, opens a pool and pings it.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	// The pool only serves log inserts, so it stays small.
	cfg.MaxConns = int32(max(2, runtime.GOMAXPROCS(0)))
	cfg.MinConns = 1
	cfg.MaxConnLifetime = 5 * time.Minute
	cfg.MaxConnIdleTime = 1 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func NewDB(pool *pgxpool.Pool) *Database {
	return &Database{pool: pool}
}

func (db *Database) ensureReady() error {
	if db == nil || db.pool == nil {
		return ErrDbNotInitialized
	}
	return nil
}

func (db *Database) exec(ctx context.Context, op, statement string, args ...any) (int64, error) {
	if err := db.ensureReady(); err != nil {
		return 0, err
	}
	tag, err := db.pool.Exec(ctx, statement, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return tag.RowsAffected(), nil
}
