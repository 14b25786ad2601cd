package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the assessment module.
// Methods are safe on a nil receiver so services can run without metrics.
type Metrics struct {
	AssessmentsCreated  *prometheus.CounterVec
	Decisions           *prometheus.CounterVec
	ScreeningsTotal     *prometheus.CounterVec
	AccessDenied        prometheus.Counter
	CreateDuration      prometheus.Histogram
	ScreeningDuration   prometheus.Histogram
	RiskScoreCalculated prometheus.Counter
}

var durationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// New registers the assessment metrics with the default registry. Call once
// per process.
func New() *Metrics {
	return &Metrics{
		AssessmentsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "aml_assessments_created_total",
			Help: "Assessments created, by risk rating and initial status",
		}, []string{"rating", "status"}),
		Decisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "aml_assessment_decisions_total",
			Help: "Approval workflow decisions, by outcome",
		}, []string{"outcome"}),
		ScreeningsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "aml_sanctions_screenings_total",
			Help: "Sanctions screenings, by result status (clear, match, unknown)",
		}, []string{"status"}),
		AccessDenied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aml_access_denied_total",
			Help: "Requests rejected for missing role or business access",
		}),
		CreateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "aml_create_assessment_duration_seconds",
			Help:    "Duration of CreateAssessment including the store transaction",
			Buckets: durationBuckets,
		}),
		ScreeningDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "aml_sanctions_screening_duration_seconds",
			Help:    "Duration of ScreenSanctions including the provider call",
			Buckets: durationBuckets,
		}),
		RiskScoreCalculated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aml_risk_scores_calculated_total",
			Help: "Risk score calculations served",
		}),
	}
}

func (m *Metrics) IncrementAssessmentCreated(rating, status string) {
	if m == nil {
		return
	}
	m.AssessmentsCreated.WithLabelValues(rating, status).Inc()
}

func (m *Metrics) IncrementDecision(outcome string) {
	if m == nil {
		return
	}
	m.Decisions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementScreening(status string) {
	if m == nil {
		return
	}
	m.ScreeningsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) IncrementAccessDenied() {
	if m == nil {
		return
	}
	m.AccessDenied.Inc()
}

func (m *Metrics) IncrementRiskScoreCalculated() {
	if m == nil {
		return
	}
	m.RiskScoreCalculated.Inc()
}

// ObserveCreate records a CreateAssessment duration measured from start.
func (m *Metrics) ObserveCreate(start time.Time) {
	if m == nil {
		return
	}
	m.CreateDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveScreening(start time.Time) {
	if m == nil {
		return
	}
	m.ScreeningDuration.Observe(time.Since(start).Seconds())
}
