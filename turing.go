package turing

import (
	"context"
	"log/slog"

	"github.com/hashpad/turing/internal/logging"
	"github.com/hashpad/turing/internal/presentation/graph"
	"github.com/hashpad/turing/internal/runtime"
	"github.com/hashpad/turing/pkg/domain"
	"github.com/hashpad/turing/pkg/presets"
	"github.com/hashpad/turing/pkg/runner"
	"github.com/hashpad/turing/pkg/schema"
)

type (
	// Machine is the stepping engine.
	Machine = runtime.Machine
	// Definition is the serializable machine format.
	Definition = schema.Definition
	// Snapshot is an immutable copy of a machine's configuration and tape.
	Snapshot = domain.Snapshot
	// Observer is notified with a Snapshot whenever a machine changes.
	Observer = domain.Observer
	// ObserverFunc adapts a function to Observer.
	ObserverFunc = domain.ObserverFunc
	// Graph is the read-only state graph of a machine.
	Graph = domain.Graph
	// Result summarizes a finished run.
	Result = runner.Result
)

// Engine is the high-level entry point of the library.
// It owns one machine built from a definition.
type Engine struct {
	machine *runtime.Machine
	def     *schema.Definition
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	tape    *string
	Name    string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithTape replaces the definition's initial tape.
func WithTape(tape string) Option {
	return func(e *Engine) {
		e.tape = &tape
	}
}

// New loads a definition file (YAML or JSON) and builds its machine.
func New(path string, opts ...Option) (*Engine, error) {
	def, err := schema.Load(path)
	if err != nil {
		return nil, err
	}
	return FromDefinition(def, opts...)
}

// FromPreset builds one of the built-in machines.
func FromPreset(name string, opts ...Option) (*Engine, error) {
	def, err := presets.Get(name)
	if err != nil {
		return nil, err
	}
	return FromDefinition(def, opts...)
}

// FromDefinition builds the machine described by def. def is not modified.
func FromDefinition(def *schema.Definition, opts ...Option) (*Engine, error) {
	e := &Engine{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}

	d := *def
	if e.tape != nil {
		d.Tape = *e.tape
	}

	m, err := d.Build(e.logger, runtime.WithLifecycleHooks(e.hooks))
	if err != nil {
		return nil, err
	}

	e.machine = m
	e.def = &d
	e.Name = d.Name
	return e, nil
}

// Machine returns the underlying machine.
func (e *Engine) Machine() *Machine {
	return e.machine
}

// Definition returns the definition the machine was built from.
func (e *Engine) Definition() *Definition {
	return e.def
}

// Step executes one transition and returns the resulting snapshot.
func (e *Engine) Step() Snapshot {
	e.machine.Step()
	return e.machine.Snapshot()
}

// Snapshot returns the current configuration and tape.
func (e *Engine) Snapshot() Snapshot {
	return e.machine.Snapshot()
}

// Subscribe registers an observer; it is notified immediately and after every step.
func (e *Engine) Subscribe(obs Observer) func() {
	return e.machine.Subscribe(obs)
}

// Run steps the machine until it halts. See runner.Runner for the available options.
func (e *Engine) Run(ctx context.Context, opts ...runner.Option) (*Result, error) {
	opts = append([]runner.Option{runner.WithLogger(e.logger)}, opts...)
	return runner.NewRunner(opts...).Run(ctx, e.machine)
}

// Graph returns the state graph of the machine.
func (e *Engine) Graph() Graph {
	return e.machine.Graph()
}

// Mermaid renders the state graph as a Mermaid flowchart, highlighting the current state.
func (e *Engine) Mermaid() string {
	return graph.GenerateMermaid(e.machine.Graph(), graph.OverlayFromSnapshot(e.machine.Snapshot()))
}
