package session

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashpad/turing/internal/logging"
	"github.com/hashpad/turing/internal/runtime"
	"github.com/hashpad/turing/pkg/domain"
	"github.com/hashpad/turing/pkg/observability"
	"github.com/hashpad/turing/pkg/ports"
	"github.com/hashpad/turing/pkg/schema"
)

// DefaultMaxSteps caps a single Step call.
const DefaultMaxSteps = 10000

// ErrTracingDisabled is returned by Trace when the manager has no trace store.
var ErrTracingDisabled = errors.New("tracing is disabled")

// Info is a point-in-time view of a session.
type Info struct {
	ID       string          `json:"id"`
	Machine  string          `json:"machine"`
	Created  time.Time       `json:"created"`
	Snapshot domain.Snapshot `json:"snapshot"`
}

type session struct {
	id      string
	name    string
	created time.Time
	machine *runtime.Machine
}

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	mu    sync.Mutex            // Global lock for the locks map
	locks map[string]*lockEntry // Map of active locks

	smu      sync.RWMutex
	sessions map[string]*session

	traces   ports.TraceStore        // Optional trace store
	locker   ports.DistributedLocker // Optional distributed locker
	lockTTL  time.Duration
	metrics  *observability.Metrics // Optional metrics
	logger   *slog.Logger
	maxSteps int
	now      func() time.Time
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(m *Manager) {
		m.locker = locker
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager and its machines.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithTraceStore records the snapshots of every session.
func WithTraceStore(store ports.TraceStore) Option {
	return func(m *Manager) {
		m.traces = store
	}
}

// WithMetrics instruments every machine.
func WithMetrics(metrics *observability.Metrics) Option {
	return func(m *Manager) {
		m.metrics = metrics
	}
}

// WithMaxSteps caps the count accepted by a single Step call.
func WithMaxSteps(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.maxSteps = n
		}
	}
}

// NewManager creates a new Session Manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		locks:    make(map[string]*lockEntry),
		sessions: make(map[string]*session),
		lockTTL:  30 * time.Second,
		logger:   logging.NewNop(), // Default to no-op
		maxSteps: DefaultMaxSteps,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

func (m *Manager) lookup(sessionID string) (*session, error) {
	m.smu.RLock()
	defer m.smu.RUnlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	return s, nil
}

func (s *session) info() Info {
	return Info{
		ID:       s.id,
		Machine:  s.name,
		Created:  s.created,
		Snapshot: s.machine.Snapshot(),
	}
}

// Create builds a machine from def and registers it under a new ID.
func (m *Manager) Create(ctx context.Context, def *schema.Definition) (Info, error) {
	id := uuid.NewString()
	name := def.Name
	if name == "" {
		name = "unnamed"
	}

	hooks := observability.LogHooks(m.logger.With("session_id", id), name)
	if m.metrics != nil {
		hooks = observability.Chain(m.metrics.Hooks(name), hooks)
	}

	machine, err := def.Build(m.logger, runtime.WithLifecycleHooks(hooks))
	if err != nil {
		return Info{}, err
	}

	s := &session{id: id, name: name, created: m.now(), machine: machine}

	var info Info
	err = m.WithLock(ctx, id, func(ctx context.Context) error {
		m.smu.Lock()
		m.sessions[id] = s
		m.smu.Unlock()

		info = s.info()
		if err := m.record(ctx, id, info.Snapshot); err != nil {
			m.smu.Lock()
			delete(m.sessions, id)
			m.smu.Unlock()
			return err
		}
		return nil
	})
	if err != nil {
		return Info{}, err
	}

	if m.metrics != nil {
		m.metrics.SessionOpened()
	}
	m.logger.Info("session created", "session_id", id, "machine", name)
	return info, nil
}

// Get returns the current view of a session.
func (m *Manager) Get(ctx context.Context, sessionID string) (Info, error) {
	var info Info
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		s, err := m.lookup(sessionID)
		if err != nil {
			return err
		}
		info = s.info()
		return nil
	})
	return info, err
}

// Step advances a session by up to count steps, stopping early if it halts.
// count is clamped to [1, max steps].
func (m *Manager) Step(ctx context.Context, sessionID string, count int) (Info, error) {
	count = max(1, min(count, m.maxSteps))

	var info Info
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		s, err := m.lookup(sessionID)
		if err != nil {
			return err
		}
		for i := 0; i < count && s.machine.Running(); i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.machine.Step()
			if err := m.record(ctx, sessionID, s.machine.Snapshot()); err != nil {
				return err
			}
		}
		info = s.info()
		return nil
	})
	return info, err
}

// Graph returns the graph projection of a session's program.
func (m *Manager) Graph(ctx context.Context, sessionID string) (domain.Graph, Info, error) {
	var g domain.Graph
	var info Info
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		s, err := m.lookup(sessionID)
		if err != nil {
			return err
		}
		g = s.machine.Graph()
		info = s.info()
		return nil
	})
	return g, info, err
}

// Trace returns the recorded snapshots of a session.
func (m *Manager) Trace(ctx context.Context, sessionID string) ([]domain.Snapshot, error) {
	if m.traces == nil {
		return nil, ErrTracingDisabled
	}
	return m.traces.Load(ctx, sessionID)
}

// List returns every live session, oldest first.
func (m *Manager) List(ctx context.Context) ([]Info, error) {
	m.smu.RLock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.smu.RUnlock()

	infos := make([]Info, 0, len(ids))
	for _, id := range ids {
		info, err := m.Get(ctx, id)
		if errors.Is(err, domain.ErrSessionNotFound) {
			continue // deleted meanwhile
		}
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	slices.SortFunc(infos, func(a, b Info) int {
		if c := a.Created.Compare(b.Created); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return infos, nil
}

// Delete removes a live session. Its trace, if any, is kept.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		m.smu.Lock()
		defer m.smu.Unlock()
		if _, ok := m.sessions[sessionID]; !ok {
			return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
		}
		delete(m.sessions, sessionID)
		return nil
	})
	if err != nil {
		return err
	}

	if m.metrics != nil {
		m.metrics.SessionClosed()
	}
	m.logger.Info("session deleted", "session_id", sessionID)
	return nil
}

func (m *Manager) record(ctx context.Context, sessionID string, snap domain.Snapshot) error {
	if m.traces == nil {
		return nil
	}
	if err := m.traces.Append(ctx, sessionID, snap); err != nil {
		return fmt.Errorf("failed to record trace: %w", err)
	}
	return nil
}
