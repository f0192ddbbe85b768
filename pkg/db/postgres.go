package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool wraps pgx connection pool.
type Pool struct {
	*pgxpool.Pool
}

// New creates a PostgreSQL connection pool. Connections are opened lazily.
func New(ctx context.Context, url string) (*Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	return &Pool{Pool: pool}, nil
}

// Name identifies the dependency in readiness reports.
func (p *Pool) Name() string {
	return "postgres"
}

// Check pings the database.
func (p *Pool) Check(ctx context.Context) error {
	if err := p.Ping(ctx); err != nil {
		return fmt.Errorf("postgres ping: %w", err)
	}
	return nil
}
