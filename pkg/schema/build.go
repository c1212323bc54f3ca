package schema

import (
	"errors"
	"log/slog"

	"github.com/hashpad/turing/internal/logging"
	"github.com/hashpad/turing/internal/runtime"
	"github.com/hashpad/turing/pkg/domain"
)

// Build validates the definition and assembles a fresh machine.
// Every call creates new states, so machines built from the same definition are independent.
// Duplicate rules are logged and skipped when SkipDuplicates is set; the first rule wins.
func (d *Definition) Build(logger *slog.Logger, opts ...runtime.MachineOption) (*runtime.Machine, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	input := domain.DefaultInputAlphabet()
	if len(d.Input) > 0 {
		input = make([]domain.InputSymbol, 0, len(d.Input))
		for _, v := range d.Input {
			input = append(input, domain.MustInputSymbol(v))
		}
	}
	symbols := make(map[string]domain.TapeSymbol, len(input))
	for _, s := range input {
		symbols[s.Value()] = s.Tape()
	}
	resolve := func(v string) domain.TapeSymbol {
		if s, ok := symbols[v]; ok {
			return s
		}
		return domain.Blank
	}

	states := make([]*domain.State, 0, len(d.States))
	byName := make(map[string]*domain.State, len(d.States))
	for _, name := range d.States {
		s := domain.NewState(name)
		states = append(states, s)
		byName[name] = s
	}
	accept := make([]*domain.State, 0, len(d.Accept))
	for _, name := range d.Accept {
		accept = append(accept, byName[name])
	}
	start := states[0]
	if d.Start != "" {
		start = byName[d.Start]
	}

	table := domain.NewTransitionTable()
	add := func(r Rule, read domain.TapeSymbol) error {
		write := read
		if r.Write != Wildcard {
			write = resolve(r.Write)
		}
		dir, _ := domain.ParseDirection(r.Move)
		err := table.Add(byName[r.State], read, domain.NextConfig{
			State:     byName[r.Next],
			Symbol:    write,
			Direction: dir,
		})
		if errors.Is(err, domain.ErrDuplicateTransition) && d.SkipDuplicates {
			logger.Warn("duplicate transition skipped", "machine", d.Name, "rule", r.String())
			return nil
		}
		return err
	}

	// Explicit rules first so wildcards only fill the gaps.
	var wildcards []Rule
	for _, r := range d.Transitions {
		if r.Read == Wildcard {
			wildcards = append(wildcards, r)
			continue
		}
		if err := add(r, resolve(r.Read)); err != nil {
			return nil, err
		}
	}
	alphabet := domain.TapeAlphabet(input)
	for _, r := range wildcards {
		for _, sym := range alphabet {
			if table.Has(byName[r.State], sym) {
				continue
			}
			if err := add(r, sym); err != nil {
				return nil, err
			}
		}
	}

	cells := make([]domain.TapeSymbol, 0, len(d.Tape))
	for _, r := range d.Tape {
		cells = append(cells, resolve(string(r)))
	}

	opts = append([]runtime.MachineOption{
		runtime.WithInputAlphabet(input...),
		runtime.WithStartState(start),
		runtime.WithLogger(logger),
	}, opts...)

	return runtime.NewMachine(domain.NewHead(domain.NewTape(cells...)), states, accept, table, opts...)
}
