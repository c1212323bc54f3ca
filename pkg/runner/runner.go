package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hashpad/turing/internal/logging"
	"github.com/hashpad/turing/internal/runtime"
	"github.com/hashpad/turing/pkg/domain"
	"github.com/hashpad/turing/pkg/ports"
)

// ErrStepLimit is returned when a run stops because MaxSteps was reached while the machine was still running.
var ErrStepLimit = errors.New("step limit reached")

// Runner drives a machine until it halts, the step limit is hit or the context is canceled.
type Runner struct {
	// Logger is used for run lifecycle logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Store records every snapshot of the run.
	// If nil, runs are not traced.
	Store ports.TraceStore

	// RunID names the trace. If empty, a random UUID is used.
	RunID string

	// MaxSteps bounds the number of steps taken by Run. 0 means unbounded.
	MaxSteps int

	// Delay pauses between steps, for animated output.
	Delay time.Duration

	// Observers receive a snapshot on subscription and after every step.
	Observers []domain.Observer
}

// Result summarizes a finished run.
type Result struct {
	RunID    string        `json:"run_id"`
	Steps    int           `json:"steps"`
	Halted   bool          `json:"halted"`
	Accepted bool          `json:"accepted"`
	Verdict  string        `json:"verdict"`
	State    string        `json:"state"`
	Tape     string        `json:"tape"`
	Duration time.Duration `json:"duration"`
}

// NewRunner creates a Runner configured by opts.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run steps m until it halts. It returns ErrStepLimit or the context error when the
// run is cut short; the Result is populated in every case.
func (r *Runner) Run(ctx context.Context, m *runtime.Machine) (*Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	runID := r.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	logger = logger.With("run_id", runID)

	var rec *recorder
	observers := r.Observers
	if r.Store != nil {
		rec = &recorder{ctx: ctx, store: r.Store, runID: runID, logger: logger}
		observers = append([]domain.Observer{rec}, observers...)
	}
	if len(observers) > 0 {
		// One subscription, so nobody sees the initial snapshot twice.
		unsubscribe := m.Subscribe(fanout(observers))
		defer unsubscribe()
	}

	logger.Info("run started", "state", m.Current().State.Name(), "max_steps", r.MaxSteps)
	start := time.Now()

	err := r.loop(ctx, m)

	res := &Result{
		RunID:    runID,
		Steps:    m.Steps(),
		Halted:   !m.Running(),
		Accepted: m.Accepted(),
		State:    m.Current().State.Name(),
		Tape:     m.Head().Tape().Trimmed(),
		Duration: time.Since(start),
	}
	res.Verdict = m.Snapshot().Verdict()

	if err == nil && rec != nil && rec.err != nil {
		err = fmt.Errorf("failed to record trace: %w", rec.err)
	}
	if err != nil {
		logger.Warn("run stopped", "steps", res.Steps, "err", err)
		return res, err
	}

	logger.Info("run finished",
		"steps", res.Steps,
		"verdict", res.Verdict,
		"tape", res.Tape,
		"duration", res.Duration)
	return res, nil
}

func (r *Runner) loop(ctx context.Context, m *runtime.Machine) error {
	var timer *time.Timer
	if r.Delay > 0 {
		timer = time.NewTimer(r.Delay)
		defer timer.Stop()
	}

	for taken := 0; m.Running(); taken++ {
		if r.MaxSteps > 0 && taken >= r.MaxSteps {
			return fmt.Errorf("%w after %d steps", ErrStepLimit, taken)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		m.Step()

		if timer != nil && m.Running() {
			timer.Reset(r.Delay)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	return nil
}

// recorder appends every snapshot to a trace store.
// After the first failure it stops recording and keeps the error.
type recorder struct {
	ctx    context.Context
	store  ports.TraceStore
	runID  string
	logger *slog.Logger
	err    error
}

func (r *recorder) Render(snap domain.Snapshot) {
	if r.err != nil {
		return
	}
	if err := r.store.Append(r.ctx, r.runID, snap); err != nil {
		r.err = err
		r.logger.Error("trace append failed", "step", snap.Steps, "err", err)
	}
}

func fanout(observers []domain.Observer) domain.Observer {
	if len(observers) == 1 {
		return observers[0]
	}
	return domain.ObserverFunc(func(snap domain.Snapshot) {
		for _, obs := range observers {
			obs.Render(snap)
		}
	})
}
