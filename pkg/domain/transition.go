package domain

import "fmt"

// Transition is one rule of the program: in State reading Read, apply Next.
type Transition struct {
	State *State
	Read  TapeSymbol
	Next  NextConfig
}

// Label returns the rule in edge-label form: read|write,DIR.
func (t Transition) Label() string {
	return fmt.Sprintf("%s|%s,%s", t.Read, t.Next.Symbol, t.Next.Direction)
}

// TransitionTable maps configurations to their outcome.
// Lookup is by (state identity, symbol value), never by the identity of a Config value.
// At most one rule exists per (state, symbol) pair.
type TransitionTable struct {
	rules map[ConfigKey]NextConfig
	order []ConfigKey
}

// NewTransitionTable creates an empty table.
func NewTransitionTable() *TransitionTable {
	return &TransitionTable{
		rules: make(map[ConfigKey]NextConfig),
	}
}

// Add registers a rule. A second rule for the same (state, symbol) pair is rejected
// with ErrDuplicateTransition and the first rule is kept.
func (t *TransitionTable) Add(state *State, read TapeSymbol, next NextConfig) error {
	if state == nil || next.State == nil {
		return fmt.Errorf("%w: transition with nil state", ErrUnknownState)
	}
	key := ConfigKey{State: state, Symbol: read}
	if _, exists := t.rules[key]; exists {
		return fmt.Errorf("%w: (%s, %s)", ErrDuplicateTransition, state.Name(), read)
	}
	t.rules[key] = next
	t.order = append(t.order, key)
	return nil
}

// Has reports whether a rule exists for (state, read).
func (t *TransitionTable) Has(state *State, read TapeSymbol) bool {
	_, ok := t.rules[ConfigKey{State: state, Symbol: read}]
	return ok
}

// Lookup returns the rule matching c. A miss is not an error: it means the machine halts.
func (t *TransitionTable) Lookup(c *Config) (NextConfig, bool) {
	next, ok := t.rules[c.Key()]
	return next, ok
}

// Len returns the number of rules.
func (t *TransitionTable) Len() int {
	return len(t.order)
}

// Entries returns all rules in insertion order.
func (t *TransitionTable) Entries() []Transition {
	out := make([]Transition, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, Transition{State: key.State, Read: key.Symbol, Next: t.rules[key]})
	}
	return out
}

// Outgoing returns the rules leaving state, in insertion order.
func (t *TransitionTable) Outgoing(state *State) []Transition {
	var out []Transition
	for _, key := range t.order {
		if key.State == state {
			out = append(out, Transition{State: key.State, Read: key.Symbol, Next: t.rules[key]})
		}
	}
	return out
}
