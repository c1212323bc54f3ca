// Package presets ships ready-made machine definitions.
package presets

import (
	"fmt"
	"slices"

	"github.com/hashpad/turing/pkg/schema"
)

// Names of the built-in presets.
const (
	ZeroNOneN       = "0^n1^n"
	AddOne          = "add one"
	BinaryIncrement = "binary increment"
)

var registry = map[string]func() *schema.Definition{
	ZeroNOneN:       zeroNOneN,
	AddOne:          func() *schema.Definition { return increment(AddOne, "11") },
	BinaryIncrement: func() *schema.Definition { return increment(BinaryIncrement, "1100") },
}

// Names returns the preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Get returns a fresh copy of the named preset.
func Get(name string) (*schema.Definition, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q", name)
	}
	return fn(), nil
}

// All returns a fresh copy of every preset, sorted by name.
func All() []*schema.Definition {
	defs := make([]*schema.Definition, 0, len(registry))
	for _, name := range Names() {
		defs = append(defs, registry[name]())
	}
	return defs
}

func rule(state, read, write, move, next string) schema.Rule {
	return schema.Rule{State: state, Read: read, Write: write, Move: move, Next: next}
}

// zeroNOneN accepts 0^n 1^n for n >= 1 by blanking the outermost pair each pass.
func zeroNOneN() *schema.Definition {
	return &schema.Definition{
		Name:        ZeroNOneN,
		Description: "Accepts n zeros followed by n ones (n >= 1).",
		Input:       []string{"0", "1"},
		Tape:        "0011",
		States:      []string{"s", "q1", "q2", "q3", "q4", "q5"},
		Start:       "s",
		Accept:      []string{"q5"},
		Transitions: []schema.Rule{
			rule("s", "0", "#", "R", "q1"),
			rule("q1", "0", "0", "R", "q1"),
			rule("q1", "1", "1", "R", "q1"),
			rule("q1", "#", "#", "L", "q2"),
			rule("q2", "1", "#", "L", "q3"),
			rule("q3", "1", "1", "L", "q4"),
			rule("q3", "#", "#", "N", "q5"),
			rule("q4", "1", "1", "L", "q4"),
			rule("q4", "0", "0", "L", "q4"),
			rule("q4", "#", "#", "R", "s"),
		},
	}
}

// increment adds one to the binary number on the tape.
func increment(name, tape string) *schema.Definition {
	return &schema.Definition{
		Name:        name,
		Description: "Adds one to a binary number.",
		Input:       []string{"0", "1"},
		Tape:        tape,
		States:      []string{"s", "q1", "q2", "q3", "q4", "q5", "f"},
		Start:       "s",
		Accept:      []string{"f"},
		Transitions: []schema.Rule{
			rule("s", "0", "0", "R", "q4"),
			rule("s", "1", "1", "R", "q1"),
			rule("q1", "0", "0", "R", "q1"),
			rule("q1", "1", "1", "R", "q1"),
			rule("q1", "#", "#", "L", "q2"),
			rule("q2", "1", "0", "L", "q2"),
			rule("q2", "0", "1", "L", "q3"),
			rule("q2", "#", "1", "L", "f"),
			rule("q3", "*", "*", "L", "q3"),
			rule("q3", "#", "#", "L", "f"),
			rule("q4", "#", "#", "L", "q5"),
			rule("q5", "0", "1", "L", "f"),
		},
	}
}
