package domain

import (
	"fmt"
	"sync/atomic"
)

var stateSeq atomic.Int64

// State is a control state of a machine.
// States are entities: two states with the same name are still different states.
type State struct {
	name string
	id   int
}

// NewState creates a state with the next process-unique ID.
// IDs start at 0 and follow construction order, so graph renderings are reproducible.
func NewState(name string) *State {
	return &State{
		name: name,
		id:   int(stateSeq.Add(1) - 1),
	}
}

// Name returns the human-readable name.
func (s *State) Name() string {
	return s.name
}

// ID returns the sequential identifier.
func (s *State) ID() int {
	return s.id
}

func (s *State) String() string {
	if s == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s#%d", s.name, s.id)
}

// ContainsState reports whether target is one of states (by identity).
func ContainsState(states []*State, target *State) bool {
	for _, s := range states {
		if s == target {
			return true
		}
	}
	return false
}

// FindState returns the first state with the given name.
func FindState(states []*State, name string) (*State, bool) {
	for _, s := range states {
		if s.name == name {
			return s, true
		}
	}
	return nil, false
}
