package runtime

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hashpad/turing/internal/logging"
	"github.com/hashpad/turing/pkg/domain"
)

// Machine is the single-tape deterministic Turing machine engine.
// It is not safe for concurrent use; callers sharing a Machine must serialize access.
type Machine struct {
	head         *domain.Head
	states       []*domain.State
	accept       []*domain.State
	input        []domain.InputSymbol
	tapeAlphabet []domain.TapeSymbol
	start        *domain.State
	table        *domain.TransitionTable

	// current is updated in place on every step.
	current  *domain.Config
	running  bool
	accepted bool
	steps    int

	notifier *Notifier
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	now      func() time.Time
}

// MachineOption configures a Machine.
type MachineOption func(*Machine)

// WithInputAlphabet sets the input alphabet (default: 0 and 1).
func WithInputAlphabet(symbols ...domain.InputSymbol) MachineOption {
	return func(m *Machine) {
		if len(symbols) > 0 {
			m.input = symbols
		}
	}
}

// WithStartState sets the start state (default: the first state).
func WithStartState(state *domain.State) MachineOption {
	return func(m *Machine) {
		if state != nil {
			m.start = state
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) MachineOption {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) MachineOption {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMachine creates a machine over a populated head/tape, state set and program.
// The accept set is expected to be a subset of states; it is not validated.
func NewMachine(head *domain.Head, states, accept []*domain.State, table *domain.TransitionTable, opts ...MachineOption) (*Machine, error) {
	if head == nil {
		return nil, fmt.Errorf("machine requires a head")
	}
	if len(states) == 0 {
		return nil, domain.ErrNoStates
	}
	if table == nil {
		table = domain.NewTransitionTable()
	}

	m := &Machine{
		head:     head,
		states:   states,
		accept:   accept,
		input:    domain.DefaultInputAlphabet(),
		start:    states[0],
		table:    table,
		running:  true,
		notifier: NewNotifier(),
		logger:   logging.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	if !domain.ContainsState(m.states, m.start) {
		return nil, fmt.Errorf("%w: start state %s is not in the state set", domain.ErrUnknownState, m.start)
	}

	m.tapeAlphabet = domain.TapeAlphabet(m.input)
	m.current = domain.NewConfig(m.start, m.head.Read())

	return m, nil
}

// Step executes one transition. It is a no-op once the machine has halted.
//
// The rule for the current configuration is applied unconditionally; a missing rule
// is applied as a self-loop that writes the read symbol back and stays. The machine
// halts when the applied outcome equals the resulting configuration and the head
// did not move, so a missing rule halts the machine on the step that applies it.
func (m *Machine) Step() {
	if !m.running {
		return
	}

	from := *m.current
	next, matched := m.table.Lookup(m.current)
	if !matched {
		next = m.current.AsNext()
	}

	m.current.State = next.State
	m.head.Write(next.Symbol)
	m.head.Move(next.Direction)
	m.current.Symbol = m.head.Read()
	m.steps++

	m.emitStep(&from, next, matched)

	if next.Matches(m.current) && next.Direction == domain.Stay {
		if domain.ContainsState(m.accept, m.current.State) {
			m.accepted = true
		}
		m.running = false

		m.logger.Debug("machine halted",
			"state", m.current.State.Name(),
			"accepted", m.accepted,
			"steps", m.steps)
		m.emitHalt()
	}

	m.Notify()
}

// Subscribe registers an observer and immediately notifies, so the new observer
// sees the current configuration without waiting for the next step.
// The returned function removes the observer.
func (m *Machine) Subscribe(obs domain.Observer) func() {
	unsubscribe := m.notifier.Subscribe(obs)
	m.Notify()
	return unsubscribe
}

// Notify sends a fresh snapshot to every registered observer.
func (m *Machine) Notify() {
	if m.notifier.Len() == 0 {
		return
	}
	m.notifier.Notify(m.Snapshot())
}

// Snapshot copies the read surface of the machine.
func (m *Machine) Snapshot() domain.Snapshot {
	symbols := m.head.Tape().Symbols()
	tape := make([]string, len(symbols))
	for i, s := range symbols {
		tape[i] = s.Value()
	}
	return domain.Snapshot{
		State:    m.current.State.Name(),
		StateID:  m.current.State.ID(),
		Symbol:   m.current.Symbol.Value(),
		Tape:     tape,
		Head:     m.head.Index(),
		Running:  m.running,
		Accepted: m.accepted,
		Steps:    m.steps,
	}
}

// Graph returns the read-only graph projection of the program.
func (m *Machine) Graph() domain.Graph {
	return domain.ProjectGraph(m.states, m.start, m.accept, m.table)
}

// Running reports whether the machine can still make progress.
func (m *Machine) Running() bool { return m.running }

// Accepted reports whether the machine halted in an accepting state.
func (m *Machine) Accepted() bool { return m.accepted }

// Steps returns the number of executed steps.
func (m *Machine) Steps() int { return m.steps }

// Head returns the machine head.
func (m *Machine) Head() *domain.Head { return m.head }

// StartState returns the start state.
func (m *Machine) StartState() *domain.State { return m.start }

// Transitions returns the program for inspection.
func (m *Machine) Transitions() *domain.TransitionTable { return m.table }

// Current returns the live configuration. It changes on every Step;
// callers that need a stable value must copy it or use Snapshot.
func (m *Machine) Current() *domain.Config { return m.current }

// States returns the state set.
func (m *Machine) States() []*domain.State {
	return append([]*domain.State(nil), m.states...)
}

// AcceptStates returns the accepting subset.
func (m *Machine) AcceptStates() []*domain.State {
	return append([]*domain.State(nil), m.accept...)
}

// InputAlphabet returns the input symbols.
func (m *Machine) InputAlphabet() []domain.InputSymbol {
	return append([]domain.InputSymbol(nil), m.input...)
}

// TapeAlphabet returns the input symbols plus Blank.
func (m *Machine) TapeAlphabet() []domain.TapeSymbol {
	return append([]domain.TapeSymbol(nil), m.tapeAlphabet...)
}

func (m *Machine) emitStep(from *domain.Config, next domain.NextConfig, matched bool) {
	m.logger.Debug("step",
		"step", m.steps,
		"from", from.State.Name(),
		"read", from.Symbol.Value(),
		"to", next.State.Name(),
		"write", next.Symbol.Value(),
		"move", next.Direction.String(),
		"matched", matched)

	if m.hooks.OnStep == nil {
		return
	}
	m.hooks.OnStep(&domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: m.now(), Type: domain.EventStep},
		From:      from.State.Name(),
		To:        next.State.Name(),
		Read:      from.Symbol.Value(),
		Write:     next.Symbol.Value(),
		Direction: next.Direction,
		Matched:   matched,
		Step:      m.steps,
	})
}

func (m *Machine) emitHalt() {
	if m.hooks.OnHalt == nil {
		return
	}
	m.hooks.OnHalt(&domain.HaltEvent{
		EventBase: domain.EventBase{Timestamp: m.now(), Type: domain.EventHalt},
		State:     m.current.State.Name(),
		Accepted:  m.accepted,
		Steps:     m.steps,
	})
}
