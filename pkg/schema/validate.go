package schema

import (
	"fmt"
	"unicode/utf8"

	"github.com/hashpad/turing/pkg/domain"
)

// Validate checks the definition and returns an *AggregateError with every failure found.
func (d *Definition) Validate() error {
	var errs []error
	fail := func(key, reason string, value any, sentinel error) {
		errs = append(errs, &ValidationError{Key: key, Reason: reason, Value: value, Err: sentinel})
	}

	if len(d.States) == 0 {
		fail("states", "at least one state is required", nil, domain.ErrNoStates)
	}
	names := make(map[string]bool, len(d.States))
	for i, s := range d.States {
		key := fmt.Sprintf("states[%d]", i)
		switch {
		case s == "":
			fail(key, "state name is required", nil, nil)
		case names[s]:
			fail(key, "duplicate state", s, nil)
		}
		names[s] = true
	}

	input := make(map[string]bool, len(d.Input))
	for i, v := range d.Input {
		key := fmt.Sprintf("input[%d]", i)
		switch {
		case utf8.RuneCountInString(v) != 1:
			fail(key, "must be a single character", v, domain.ErrInvalidSymbol)
		case v == domain.BlankValue || v == Wildcard:
			fail(key, "reserved symbol", v, domain.ErrInvalidSymbol)
		case input[v]:
			fail(key, "duplicate input symbol", v, nil)
		}
		input[v] = true
	}
	if len(d.Input) == 0 {
		for _, s := range domain.DefaultInputAlphabet() {
			input[s.Value()] = true
		}
	}

	for i, r := range d.Tape {
		v := string(r)
		if !input[v] && v != domain.BlankValue && v != AltBlank {
			fail(fmt.Sprintf("tape[%d]", i), "not an input symbol", v, domain.ErrInvalidSymbol)
		}
	}

	if d.Start != "" && !names[d.Start] {
		fail("start", "unknown state", d.Start, domain.ErrUnknownState)
	}
	for i, s := range d.Accept {
		if !names[s] {
			fail(fmt.Sprintf("accept[%d]", i), "unknown state", s, domain.ErrUnknownState)
		}
	}

	type ruleKey struct{ state, read string }
	seen := make(map[ruleKey]int)
	for i, r := range d.Transitions {
		key := fmt.Sprintf("transitions[%d]", i)
		if !names[r.State] {
			fail(key+".state", "unknown state", r.State, domain.ErrUnknownState)
		}
		if !names[r.Next] {
			fail(key+".next", "unknown state", r.Next, domain.ErrUnknownState)
		}
		if utf8.RuneCountInString(r.Read) != 1 {
			fail(key+".read", "must be a single character", r.Read, domain.ErrInvalidSymbol)
		}
		if utf8.RuneCountInString(r.Write) != 1 {
			fail(key+".write", "must be a single character", r.Write, domain.ErrInvalidSymbol)
		}
		if _, err := domain.ParseDirection(r.Move); err != nil {
			fail(key+".move", "must be one of L, R, N", r.Move, nil)
		}

		if d.SkipDuplicates {
			continue
		}
		read := r.Read
		if read != Wildcard && !input[read] {
			read = domain.BlankValue
		}
		k := ruleKey{r.State, read}
		if first, ok := seen[k]; ok {
			fail(key, fmt.Sprintf("duplicate of transitions[%d]", first), r.String(), domain.ErrDuplicateTransition)
			continue
		}
		seen[k] = i
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
