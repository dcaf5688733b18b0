package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the contact disclosure guard.
type Metrics struct {
	Decisions         *prometheus.CounterVec
	Disclosures       *prometheus.CounterVec
	CreditsDeducted   prometheus.Counter
	CreditsGranted    prometheus.Counter
	TransientFailures prometheus.Counter
	DiscloseDuration  prometheus.Histogram
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "skilloncall_disclosure_decisions_total",
			Help: "Contact disclosure decisions by reason",
		}, []string{"reason"}),
		Disclosures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "skilloncall_disclosures_total",
			Help: "Contact disclosures served, split into new and already revealed",
		}, []string{"kind"}),
		CreditsDeducted: factory.NewCounter(prometheus.CounterOpts{
			Name: "skilloncall_disclosure_credits_deducted_total",
			Help: "Credits consumed by new disclosures",
		}),
		CreditsGranted: factory.NewCounter(prometheus.CounterOpts{
			Name: "skilloncall_disclosure_credits_granted_total",
			Help: "Credits added through grants",
		}),
		TransientFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "skilloncall_disclosure_transient_failures_total",
			Help: "Disclosures aborted by storage failures",
		}),
		DiscloseDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "skilloncall_disclose_duration_seconds",
			Help:    "Latency of disclose calls",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
	}
}

func (m *Metrics) IncDecision(reason string) {
	m.Decisions.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncDisclosure(alreadyRevealed bool) {
	kind := "new"
	if alreadyRevealed {
		kind = "already_revealed"
	}
	m.Disclosures.WithLabelValues(kind).Inc()
}

func (m *Metrics) AddCreditsDeducted(n int) {
	m.CreditsDeducted.Add(float64(n))
}

func (m *Metrics) AddCreditsGranted(n int) {
	m.CreditsGranted.Add(float64(n))
}

func (m *Metrics) IncTransientFailures() {
	m.TransientFailures.Inc()
}

func (m *Metrics) ObserveDisclose(d time.Duration) {
	m.DiscloseDuration.Observe(d.Seconds())
}
