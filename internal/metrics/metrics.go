// Package metrics counts editor requests and locally rejected edits.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes recorded for requests.
const (
	OutcomeOK          = "ok"
	OutcomeError       = "error"
	OutcomeUnavailable = "unavailable"
)

// Metrics holds the editor counters. A nil *Metrics records nothing.
type Metrics struct {
	requests   *prometheus.CounterVec
	rejections *prometheus.CounterVec
}

// New creates the counters and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Requests sent to the abstract server by operation and outcome.",
		}, []string{"op", "outcome"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Edits rejected before any request was sent, by reason.",
		}, []string{"reason"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.rejections)
	}
	return m
}

func (m *Metrics) ObserveRequest(op, outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) ObserveRejection(reason string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(reason).Inc()
}

// Requests returns the request counter for op and outcome.
func (m *Metrics) Requests(op, outcome string) prometheus.Counter {
	return m.requests.WithLabelValues(op, outcome)
}

// Rejections returns the rejection counter for reason.
func (m *Metrics) Rejections(reason string) prometheus.Counter {
	return m.rejections.WithLabelValues(reason)
}
