package compliance

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks compliance audit writes. All methods are nil-safe.
type Metrics struct {
	eventsEmitted   prometheus.Counter
	persistFailures prometheus.Counter
	persistDuration prometheus.Histogram
}

func NewMetrics() *Metrics {
	return &Metrics{
		eventsEmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aml_compliance_audit_events_total",
			Help: "Compliance audit events written",
		}),
		persistFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aml_compliance_audit_failures_total",
			Help: "Compliance audit writes that failed and aborted the operation",
		}),
		persistDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "aml_compliance_audit_persist_seconds",
			Help:    "Time to write a compliance audit event",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncEventsEmitted() {
	if m == nil {
		return
	}
	m.eventsEmitted.Inc()
}

func (m *Metrics) IncPersistFailures() {
	if m == nil {
		return
	}
	m.persistFailures.Inc()
}

func (m *Metrics) ObservePersistDuration(seconds float64) {
	if m == nil {
		return
	}
	m.persistDuration.Observe(seconds)
}
