/*
Package runner implements the execution loop around a machine.

It steps a machine until it halts, bounded by an optional step limit and by
context cancellation, optionally pausing between steps and recording every
snapshot into a ports.TraceStore.

# Usage

	r := runner.NewRunner(
		runner.WithMaxSteps(10000),
		runner.WithStore(memory.NewStore()),
		runner.WithObserver(runner.NewJSONObserver(os.Stdout)),
	)

	res, err := r.Run(ctx, machine)
	if errors.Is(err, runner.ErrStepLimit) {
		// the machine may not halt on this input
	}

SignalManager turns SIGINT/SIGTERM into context cancellation for CLI runs.
*/
package runner
