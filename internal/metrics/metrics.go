package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ethicsreview"

// Metrics groups the process collectors. A nil *Metrics records nothing.
type Metrics struct {
	registry      *prometheus.Registry
	commands      *prometheus.CounterVec
	fetchFailures *prometheus.CounterVec
	events        *prometheus.CounterVec
	loadDuration  *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "State-changing contract calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		fetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_failures_total",
			Help:      "Per-entity read failures skipped by the read model loader.",
		}, []string{"entity"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contract_events_total",
			Help:      "Contract events applied to the projection.",
		}, []string{"event"}),
		loadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Read model region load time.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"region"}),
	}
	m.registry.MustRegister(m.commands, m.fetchFailures, m.events, m.loadDuration)
	m.registry.MustRegister(collectors.NewGoCollector())
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) CommandDone(operation, outcome string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) FetchFailed(entity string) {
	if m == nil {
		return
	}
	m.fetchFailures.WithLabelValues(entity).Inc()
}

func (m *Metrics) EventApplied(kind string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveLoad(region string, started time.Time) {
	if m == nil {
		return
	}
	m.loadDuration.WithLabelValues(region).Observe(time.Since(started).Seconds())
}
