package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hashpad/turing"
	"github.com/hashpad/turing/pkg/observability"
	"github.com/hashpad/turing/pkg/presets"
	"github.com/hashpad/turing/pkg/schema"
)

// LoadDefinition reads a definition from path or, when path is empty, the named preset.
func LoadDefinition(path, preset string) (*schema.Definition, error) {
	switch {
	case path != "" && preset != "":
		return nil, errors.New("use either a definition file or --preset, not both")
	case path != "":
		return schema.Load(path)
	case preset != "":
		return presets.Get(preset)
	default:
		return nil, errors.New("a definition file or --preset is required")
	}
}

// createEngine builds an engine with standard CLI conventions: the shared logger
// and lifecycle logging at debug level.
func createEngine(def *schema.Definition, tape *string, logger *slog.Logger) (*turing.Engine, error) {
	name := def.Name
	if name == "" {
		name = "unnamed"
	}

	opts := []turing.Option{
		turing.WithLogger(logger),
		turing.WithLifecycleHooks(observability.LogHooks(logger, name)),
	}
	if tape != nil {
		opts = append(opts, turing.WithTape(*tape))
	}

	engine, err := turing.FromDefinition(def, opts...)
	if err != nil {
		return nil, fmt.Errorf("error building machine: %w", err)
	}
	return engine, nil
}
