package domain

import (
	"strings"
	"time"
)

// Verdict values reported by Snapshot.Verdict.
const (
	VerdictRunning  = "running"
	VerdictAccepted = "accepted"
	VerdictRejected = "rejected"
)

// Snapshot is an immutable copy of the machine's read surface.
// Observers receive a fresh Snapshot on every notification, so they never alias engine internals.
type Snapshot struct {
	State    string   `json:"state"`
	StateID  int      `json:"state_id"`
	Symbol   string   `json:"symbol"`
	Tape     []string `json:"tape"`
	Head     int      `json:"head"`
	Running  bool     `json:"running"`
	Accepted bool     `json:"accepted"`
	Steps    int      `json:"steps"`
}

// Contents returns the tape contents, blanks included.
func (s Snapshot) Contents() string {
	return strings.Join(s.Tape, "")
}

// Trimmed returns the tape contents without leading and trailing blanks.
func (s Snapshot) Trimmed() string {
	return strings.Trim(s.Contents(), BlankValue)
}

// Verdict summarizes the run flags.
func (s Snapshot) Verdict() string {
	switch {
	case s.Running:
		return VerdictRunning
	case s.Accepted:
		return VerdictAccepted
	default:
		return VerdictRejected
	}
}

// Observer is notified with a Snapshot whenever the machine changes.
// Observers run synchronously and must not call Step on the machine they observe.
type Observer interface {
	Render(snap Snapshot)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(snap Snapshot)

// Render calls f(snap).
func (f ObserverFunc) Render(snap Snapshot) {
	f(snap)
}

// EventType defines the category of a lifecycle event.
type EventType string

const (
	EventStep EventType = "step"
	EventHalt EventType = "halt"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StepEvent describes one applied transition.
type StepEvent struct {
	EventBase
	From      string    `json:"from"`
	To        string    `json:"to"`
	Read      string    `json:"read"`
	Write     string    `json:"write"`
	Direction Direction `json:"direction"`
	// Matched is false when no rule existed and the implicit self-loop was applied.
	Matched bool `json:"matched"`
	Step    int  `json:"step"`
}

// HaltEvent describes the transition to the terminal state.
type HaltEvent struct {
	EventBase
	State    string `json:"state"`
	Accepted bool   `json:"accepted"`
	Steps    int    `json:"steps"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnStep func(*StepEvent)
	OnHalt func(*HaltEvent)
}
