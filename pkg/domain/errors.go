package domain

import "errors"

// ErrInvalidSymbol is returned when a symbol is not exactly one character long.
var ErrInvalidSymbol = errors.New("symbols must be single characters")

// ErrDuplicateTransition is returned when a (state, symbol) pair already has a rule.
var ErrDuplicateTransition = errors.New("duplicate transition")

// ErrNoStates is returned when a machine is built without any state.
var ErrNoStates = errors.New("machine has no states")

// ErrUnknownState is returned when a state is missing or not part of the machine.
var ErrUnknownState = errors.New("unknown state")

// ErrSessionNotFound is returned when a session ID cannot be found.
var ErrSessionNotFound = errors.New("session not found")

// ErrTraceNotFound is returned when a run trace cannot be found in the store.
var ErrTraceNotFound = errors.New("trace not found")
