package observability

import (
	"log/slog"

	"github.com/hashpad/turing/pkg/domain"
)

// LogHooks logs every step at debug level and every halt at info level.
func LogHooks(logger *slog.Logger, machine string) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(e *domain.StepEvent) {
			logger.Debug("step",
				"machine", machine,
				"step", e.Step,
				"from", e.From,
				"read", e.Read,
				"to", e.To,
				"write", e.Write,
				"move", e.Direction.String(),
			)
		},
		OnHalt: func(e *domain.HaltEvent) {
			logger.Info("halt",
				"machine", machine,
				"state", e.State,
				"accepted", e.Accepted,
				"steps", e.Steps,
			)
		},
	}
}

// Chain combines hooks; callbacks run in argument order.
func Chain(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var steps []func(*domain.StepEvent)
	var halts []func(*domain.HaltEvent)
	for _, h := range hooks {
		if h.OnStep != nil {
			steps = append(steps, h.OnStep)
		}
		if h.OnHalt != nil {
			halts = append(halts, h.OnHalt)
		}
	}

	var out domain.LifecycleHooks
	if len(steps) > 0 {
		out.OnStep = func(e *domain.StepEvent) {
			for _, fn := range steps {
				fn(e)
			}
		}
	}
	if len(halts) > 0 {
		out.OnHalt = func(e *domain.HaltEvent) {
			for _, fn := range halts {
				fn(e)
			}
		}
	}
	return out
}
