package server

import (
	"context"
	"errors"

	"github.com/coast-guide/agent-fleet/internal/config"
	"github.com/coast-guide/agent-fleet/internal/handler"
	"github.com/coast-guide/agent-fleet/internal/service"
	"github.com/coast-guide/agent-fleet/pkg/db"
	"github.com/coast-guide/agent-fleet/pkg/redis"
)

// Deps holds server dependencies.
type Deps struct {
	Readiness *service.Readiness
	Info      *handler.InfoHandler
	Ready     *handler.ReadyHandler

	closers []func() error
}

// NewDeps creates dependencies from configuration. Redis and Postgres
// checks are registered only when their URLs are set.
func NewDeps(ctx context.Context, cfg *config.Config) (*Deps, error) {
	d := &Deps{}
	var checkers []service.Checker

	if cfg.RedisURL != "" {
		rdb, err := redis.New(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		checkers = append(checkers, rdb)
		d.closers = append(d.closers, rdb.Close)
	}

	if cfg.PostgresURL != "" {
		pool, err := db.New(ctx, cfg.PostgresURL)
		if err != nil {
			_ = d.Close()
			return nil, err
		}
		checkers = append(checkers, pool)
		d.closers = append(d.closers, func() error { pool.Close(); return nil })
	}

	return d.with(service.NewReadiness(cfg.CheckTimeout, checkers...), cfg.App), nil
}

// NewStaticDeps creates dependencies around an existing readiness service.
func NewStaticDeps(app config.App, readiness *service.Readiness) *Deps {
	return (&Deps{}).with(readiness, app)
}

func (d *Deps) with(readiness *service.Readiness, app config.App) *Deps {
	d.Readiness = readiness
	d.Info = &handler.InfoHandler{App: app}
	d.Ready = &handler.ReadyHandler{Readiness: readiness}
	return d
}

// Close releases dependency clients.
func (d *Deps) Close() error {
	var errs []error
	for _, c := range d.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
