package middleware

import (
	"github.com/prometheus/client_golang/prometheus"

	arrskema "github.com/reoring/arrskema"
)

const (
	outcomeOK        = "ok"
	outcomeInvalid   = "invalid"
	outcomeMalformed = "malformed"
)

// Metrics counts body validations by outcome and rejected bodies by issue
// code. A nil *Metrics records nothing.
type Metrics struct {
	validations *prometheus.CounterVec
	issues      *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arrskema",
			Name:      "body_validations_total",
			Help:      "Request bodies validated, by outcome (ok, invalid, malformed).",
		}, []string{"outcome"}),
		issues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arrskema",
			Name:      "body_issues_total",
			Help:      "Top-level issues reported for rejected request bodies, by code.",
		}, []string{"code"}),
	}
	reg.MustRegister(m.validations, m.issues)
	return m
}

func (m *Metrics) observe(outcome string, iss arrskema.Issues) {
	if m == nil {
		return
	}
	m.validations.WithLabelValues(outcome).Inc()
	for _, it := range iss {
		m.issues.WithLabelValues(it.Code).Inc()
	}
}
