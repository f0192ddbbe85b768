package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/coast-guide/agent-fleet/internal/model"
)

// Checker probes one external dependency.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Readiness runs dependency checks for GET /ready.
type Readiness struct {
	checkers []Checker
	timeout  time.Duration
}

// NewReadiness creates a readiness service. Each check is bounded by timeout.
func NewReadiness(timeout time.Duration, checkers ...Checker) *Readiness {
	return &Readiness{checkers: checkers, timeout: timeout}
}

// Check runs every checker concurrently. The report lists results in
// registration order and is degraded when any check failed.
func (r *Readiness) Check(ctx context.Context) model.ReadinessReport {
	results := make([]model.CheckResult, len(r.checkers))

	var g errgroup.Group
	for i, c := range r.checkers {
		i, c := i, c
		g.Go(func() error {
			results[i] = r.run(ctx, c)
			return nil
		})
	}
	_ = g.Wait()

	report := model.ReadinessReport{Status: model.ReadyOK, Checks: results}
	for _, res := range results {
		if res.Status != model.CheckOK {
			report.Status = model.ReadyDegraded
			break
		}
	}
	return report
}

func (r *Readiness) run(ctx context.Context, c Checker) model.CheckResult {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- c.Check(ctx) }()

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = fmt.Errorf("timed out after %s", r.timeout)
	}

	if err != nil {
		return model.CheckResult{Name: c.Name(), Status: model.CheckFail, Message: err.Error()}
	}
	return model.CheckResult{Name: c.Name(), Status: model.CheckOK}
}
