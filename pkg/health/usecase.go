package health

import (
	"context"
	"errors"
	"fmt"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Report is the outcome of one readiness check: "ok" or the failure per
// dependency.
type Report struct {
	Ready  bool              `json:"ready"`
	Checks map[string]string `json:"checks"`
}

// ReadinessUseCase describes readiness verification.
type ReadinessUseCase interface {
	Ready(ctx context.Context) (Report, error)
}

type service struct {
	checkers []Checker
}

// NewService aggregates dependency checkers.
func NewService(checkers ...Checker) ReadinessUseCase {
	return &service{checkers: checkers}
}

// Ready runs every checker; the error joins all failures, each prefixed
// with the dependency name.
func (s *service) Ready(ctx context.Context) (Report, error) {
	r := Report{Ready: true, Checks: make(map[string]string, len(s.checkers))}
	var errs []error
	for _, ch := range s.checkers {
		if err := ch.Check(ctx); err != nil {
			r.Ready = false
			r.Checks[ch.Name()] = err.Error()
			errs = append(errs, fmt.Errorf("%s: %w", ch.Name(), err))
			continue
		}
		r.Checks[ch.Name()] = "ok"
	}
	return r, errors.Join(errs...)
}
