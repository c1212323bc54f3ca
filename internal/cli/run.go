package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashpad/turing/internal/config"
	"github.com/hashpad/turing/internal/presentation/tui"
	"github.com/hashpad/turing/pkg/runner"
	"github.com/muesli/termenv"
)

// RunOptions selects the machine and the output mode of a run.
type RunOptions struct {
	File   string
	Preset string
	Tape   *string // overrides the definition's tape
	RunID  string  // trace name; random when empty

	// JSON writes one snapshot per line; with Quiet, only the final result.
	JSON bool
	// Quiet suppresses per-step output.
	Quiet bool

	Out io.Writer // defaults to Stdout
}

// RunMachine builds the machine selected by opts and runs it to completion under cfg.
// An interrupt (SIGINT/SIGTERM) stops the run between steps and is not an error.
func RunMachine(ctx context.Context, cfg config.Config, opts RunOptions) (*runner.Result, error) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	logger, closeLog, err := NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	defer closeLog()

	def, err := LoadDefinition(opts.File, opts.Preset)
	if err != nil {
		return nil, err
	}
	engine, err := createEngine(def, opts.Tape, logger)
	if err != nil {
		return nil, err
	}

	persistence, err := OpenPersistence(cfg)
	if err != nil {
		return nil, err
	}
	defer persistence.Close()

	runnerOpts := []runner.Option{
		runner.WithMaxSteps(cfg.MaxSteps),
		runner.WithDelay(cfg.StepDelay),
		runner.WithRunID(opts.RunID),
	}
	if persistence.Store != nil {
		runnerOpts = append(runnerOpts, runner.WithStore(persistence.Store))
	}

	profile := ColorProfile(cfg.Color, out)
	var jsonObs *runner.JSONObserver
	switch {
	case opts.Quiet:
	case opts.JSON:
		jsonObs = runner.NewJSONObserver(out)
		runnerOpts = append(runnerOpts, runner.WithObserver(jsonObs))
	default:
		if IsTerminal(out) {
			tui.PrintBanner(out, profile)
		}
		runnerOpts = append(runnerOpts, runner.WithObserver(tui.NewTapeRenderer(out, profile)))
	}

	signals := runner.NewSignalManager(ctx)
	defer signals.Stop()

	res, runErr := engine.Run(signals.Context(), runnerOpts...)
	if jsonObs != nil && jsonObs.Err() != nil && runErr == nil {
		runErr = fmt.Errorf("failed to write output: %w", jsonObs.Err())
	}

	switch {
	case opts.JSON && opts.Quiet:
		if err := json.NewEncoder(out).Encode(res); err != nil && runErr == nil {
			runErr = err
		}
	case !opts.JSON:
		printSummary(out, res, profile, runErr, signals.Interrupted())
	}

	if isInterrupted(runErr) && signals.Interrupted() {
		logger.Info("run interrupted", "run_id", res.RunID, "steps", res.Steps)
		return res, nil
	}
	return res, runErr
}

func printSummary(w io.Writer, res *runner.Result, profile termenv.Profile, runErr error, interrupted bool) {
	if res == nil {
		return
	}
	switch {
	case interrupted:
		printSystemMessage(w, "Interrupted after %d steps in state %s: %s", res.Steps, res.State, res.Tape)
	case errors.Is(runErr, runner.ErrStepLimit):
		printSystemMessage(w, "Still running after %d steps in state %s: %s", res.Steps, res.State, res.Tape)
	case res.Halted:
		verdict := tui.FormatVerdict(res.Verdict, profile)
		printSystemMessage(w, "%s after %d steps: %s", verdict, res.Steps, res.Tape)
	}
}
