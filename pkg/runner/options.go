package runner

import (
	"log/slog"
	"time"

	"github.com/hashpad/turing/pkg/domain"
	"github.com/hashpad/turing/pkg/ports"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithStore records the run into a trace store.
func WithStore(store ports.TraceStore) Option {
	return func(r *Runner) {
		r.Store = store
	}
}

// WithRunID sets the trace ID used with WithStore.
func WithRunID(id string) Option {
	return func(r *Runner) {
		r.RunID = id
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithMaxSteps bounds the run.
func WithMaxSteps(n int) Option {
	return func(r *Runner) {
		r.MaxSteps = n
	}
}

// WithDelay pauses between steps.
func WithDelay(d time.Duration) Option {
	return func(r *Runner) {
		r.Delay = d
	}
}

// WithObserver adds an observer for the duration of the run.
func WithObserver(obs domain.Observer) Option {
	return func(r *Runner) {
		if obs != nil {
			r.Observers = append(r.Observers, obs)
		}
	}
}
