package cli

import (
	"fmt"
	"log/slog"

	"github.com/hashpad/turing/internal/config"
	"github.com/hashpad/turing/pkg/adapters/file"
	"github.com/hashpad/turing/pkg/adapters/memory"
	"github.com/hashpad/turing/pkg/adapters/redis"
	"github.com/hashpad/turing/pkg/observability"
	"github.com/hashpad/turing/pkg/ports"
	"github.com/hashpad/turing/pkg/session"
)

// Persistence bundles the trace store selected by the configuration.
// Store is nil when tracing is disabled. Locker is only set for the redis backend.
type Persistence struct {
	Store  ports.TraceStore
	Locker ports.DistributedLocker
	close  func() error
}

// Close releases backend connections.
func (p *Persistence) Close() error {
	if p.close == nil {
		return nil
	}
	return p.close()
}

// OpenPersistence opens the trace backend named in cfg.
func OpenPersistence(cfg config.Config) (*Persistence, error) {
	switch cfg.Trace.Backend {
	case "", config.TraceNone:
		return &Persistence{}, nil
	case config.TraceMemory:
		return &Persistence{Store: memory.NewStore()}, nil
	case config.TraceFile:
		return &Persistence{Store: file.New(cfg.Trace.Dir)}, nil
	case config.TraceRedis:
		prefix := cfg.Redis.Prefix
		if prefix == "" {
			prefix = redis.DefaultPrefix
		}
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		return &Persistence{
			Store:  store,
			Locker: redis.NewLocker(store.Client(), prefix),
			close:  store.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown trace backend %q", cfg.Trace.Backend)
	}
}

// NewSessionManager wires a session manager to the configured persistence and metrics.
func NewSessionManager(cfg config.Config, p *Persistence, metrics *observability.Metrics, logger *slog.Logger) *session.Manager {
	opts := []session.Option{
		session.WithLogger(logger),
		session.WithMetrics(metrics),
	}
	if cfg.MaxSteps > 0 {
		opts = append(opts, session.WithMaxSteps(cfg.MaxSteps))
	}
	if p.Store != nil {
		opts = append(opts, session.WithTraceStore(p.Store))
	}
	if p.Locker != nil {
		opts = append(opts, session.WithLocker(p.Locker, 0))
	}
	return session.NewManager(opts...)
}
