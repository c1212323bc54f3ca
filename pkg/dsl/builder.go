package dsl

import (
	"errors"
	"fmt"

	"github.com/hashpad/turing/internal/runtime"
	"github.com/hashpad/turing/pkg/domain"
)

// Builder manages the machine construction.
// Declaration errors are collected and reported together by Build.
type Builder struct {
	states map[string]*StateBuilder
	order  []string
	input  []string
	tape   string
	start  string
}

// New creates a new machine builder.
func New() *Builder {
	return &Builder{
		states: make(map[string]*StateBuilder),
	}
}

// Input sets the input alphabet. Defaults to 0 and 1.
func (b *Builder) Input(symbols ...string) *Builder {
	b.input = symbols
	return b
}

// Tape sets the initial tape contents, one symbol per character.
// The head starts on the first cell.
func (b *Builder) Tape(contents string) *Builder {
	b.tape = contents
	return b
}

// State declares a state. If the state already exists, it returns the existing builder.
// The first declared state is the start state unless another one calls Start.
func (b *Builder) State(name string) *StateBuilder {
	if sb, ok := b.states[name]; ok {
		return sb
	}
	sb := &StateBuilder{name: name, builder: b}
	b.states[name] = sb
	b.order = append(b.order, name)
	return sb
}

// Build compiles the declarations into a ready-to-run machine.
func (b *Builder) Build(opts ...runtime.MachineOption) (*runtime.Machine, error) {
	if len(b.order) == 0 {
		return nil, domain.ErrNoStates
	}

	var errs []error

	input := domain.DefaultInputAlphabet()
	if len(b.input) > 0 {
		input = input[:0:0]
		for _, v := range b.input {
			sym, err := domain.NewInputSymbol(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("input alphabet: %w", err))
				continue
			}
			input = append(input, sym)
		}
	}

	states := make([]*domain.State, 0, len(b.order))
	byName := make(map[string]*domain.State, len(b.order))
	var accept []*domain.State
	for _, name := range b.order {
		s := domain.NewState(name)
		states = append(states, s)
		byName[name] = s
		if b.states[name].accept {
			accept = append(accept, s)
		}
	}

	table := domain.NewTransitionTable()
	for _, name := range b.order {
		for _, r := range b.states[name].rules {
			if err := b.addRule(table, byName, name, r); err != nil {
				errs = append(errs, err)
			}
		}
	}

	var cells []domain.TapeSymbol
	for _, r := range b.tape {
		sym, err := domain.NewTapeSymbol(string(r))
		if err != nil {
			errs = append(errs, fmt.Errorf("tape: %w", err))
			continue
		}
		cells = append(cells, sym)
	}

	start := states[0]
	if b.start != "" {
		start = byName[b.start]
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	opts = append([]runtime.MachineOption{
		runtime.WithInputAlphabet(input...),
		runtime.WithStartState(start),
	}, opts...)

	return runtime.NewMachine(domain.NewHead(domain.NewTape(cells...)), states, accept, table, opts...)
}

func (b *Builder) addRule(table *domain.TransitionTable, byName map[string]*domain.State, from string, r rule) error {
	next, ok := byName[r.next]
	if !ok {
		return fmt.Errorf("%s: %w %q", from, domain.ErrUnknownState, r.next)
	}
	read, err := domain.NewTapeSymbol(r.read)
	if err != nil {
		return fmt.Errorf("%s: read: %w", from, err)
	}
	write, err := domain.NewTapeSymbol(r.write)
	if err != nil {
		return fmt.Errorf("%s: write: %w", from, err)
	}
	return table.Add(byName[from], read, domain.NextConfig{
		State:     next,
		Symbol:    write,
		Direction: r.move,
	})
}
