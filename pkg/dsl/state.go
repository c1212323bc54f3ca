package dsl

import "github.com/hashpad/turing/pkg/domain"

type rule struct {
	read  string
	write string
	move  domain.Direction
	next  string
}

// StateBuilder provides a fluent API for configuring a state and its rules.
type StateBuilder struct {
	name    string
	accept  bool
	rules   []rule
	builder *Builder
}

// Start marks the state as the start state.
func (s *StateBuilder) Start() *StateBuilder {
	s.builder.start = s.name
	return s
}

// Accept marks the state as accepting.
func (s *StateBuilder) Accept() *StateBuilder {
	s.accept = true
	return s
}

// On adds the rule (this state, read) -> (next, write, move).
// The target state may be declared later; it is resolved by Build.
func (s *StateBuilder) On(read, write string, move domain.Direction, next string) *StateBuilder {
	s.rules = append(s.rules, rule{read: read, write: write, move: move, next: next})
	return s
}

// Right is On with a right move.
func (s *StateBuilder) Right(read, write, next string) *StateBuilder {
	return s.On(read, write, domain.Right, next)
}

// Left is On with a left move.
func (s *StateBuilder) Left(read, write, next string) *StateBuilder {
	return s.On(read, write, domain.Left, next)
}

// Stay is On without moving the head.
func (s *StateBuilder) Stay(read, write, next string) *StateBuilder {
	return s.On(read, write, domain.Stay, next)
}

// State returns to the parent builder to declare another state.
func (s *StateBuilder) State(name string) *StateBuilder {
	return s.builder.State(name)
}

// Name returns the state name.
func (s *StateBuilder) Name() string {
	return s.name
}
