package observability

import (
	"net/http"
	"strconv"

	"github.com/hashpad/turing/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the machine collectors.
type Metrics struct {
	steps    *prometheus.CounterVec
	halts    *prometheus.CounterVec
	runSteps *prometheus.HistogramVec
	sessions prometheus.Gauge

	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg uses a fresh private registry.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_steps_total",
				Help: "Total number of applied transitions.",
			},
			[]string{"machine", "matched"},
		),
		halts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_halts_total",
				Help: "Total number of halted machines by verdict.",
			},
			[]string{"machine", "verdict"},
		),
		runSteps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "turing_run_steps",
				Help:    "Number of steps a machine took before halting.",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"machine"},
		),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "turing_sessions_active",
			Help: "Number of live sessions.",
		}),
		gatherer: reg,
	}
	reg.MustRegister(m.steps, m.halts, m.runSteps, m.sessions)
	return m
}

// Hooks returns lifecycle hooks recording metrics under the given machine label.
func (m *Metrics) Hooks(machine string) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(e *domain.StepEvent) {
			m.steps.WithLabelValues(machine, strconv.FormatBool(e.Matched)).Inc()
		},
		OnHalt: func(e *domain.HaltEvent) {
			verdict := domain.VerdictRejected
			if e.Accepted {
				verdict = domain.VerdictAccepted
			}
			m.halts.WithLabelValues(machine, verdict).Inc()
			m.runSteps.WithLabelValues(machine).Observe(float64(e.Steps))
		},
	}
}

// SessionOpened increments the live sessions gauge.
func (m *Metrics) SessionOpened() { m.sessions.Inc() }

// SessionClosed decrements the live sessions gauge.
func (m *Metrics) SessionClosed() { m.sessions.Dec() }

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
