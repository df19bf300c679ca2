package metrics

import "github.com/prometheus/client_golang/prometheus"

// FunnelMetrics exposes counters/histograms for the checkout and
// qualification flows.
type FunnelMetrics struct {
	checkoutTotal      *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	networksDetected   *prometheus.CounterVec
	sessionsStarted    prometheus.Counter
	sessionsCompleted  *prometheus.CounterVec
	scores             prometheus.Histogram
}

func NewFunnelMetrics(reg prometheus.Registerer) *FunnelMetrics {
	m := &FunnelMetrics{
		checkoutTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "funnel",
			Subsystem: "checkout",
			Name:      "submissions_total",
			Help:      "Total checkout submissions",
		}, []string{"status"}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "funnel",
			Subsystem: "checkout",
			Name:      "validation_failures_total",
			Help:      "Total field validation failures on submit",
		}, []string{"field"}),
		networksDetected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "funnel",
			Subsystem: "checkout",
			Name:      "card_networks_total",
			Help:      "Card networks detected at submit",
		}, []string{"network"}),
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "funnel",
			Subsystem: "qualification",
			Name:      "sessions_started_total",
			Help:      "Total qualification sessions started",
		}),
		sessionsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "funnel",
			Subsystem: "qualification",
			Name:      "sessions_completed_total",
			Help:      "Total qualification sessions completed",
		}, []string{"outcome"}),
		scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "funnel",
			Subsystem: "qualification",
			Name:      "score",
			Help:      "Final weighted qualification scores",
			Buckets:   prometheus.LinearBuckets(0, 1, 11),
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.checkoutTotal, m.validationFailures, m.networksDetected,
		m.sessionsStarted, m.sessionsCompleted, m.scores)
	return m
}

func (m *FunnelMetrics) ObserveCheckout(status string) {
	if m == nil {
		return
	}
	m.checkoutTotal.WithLabelValues(status).Inc()
}

func (m *FunnelMetrics) ObserveValidationFailure(field string) {
	if m == nil {
		return
	}
	m.validationFailures.WithLabelValues(field).Inc()
}

func (m *FunnelMetrics) ObserveNetwork(network string) {
	if m == nil {
		return
	}
	if network == "" {
		network = "unknown"
	}
	m.networksDetected.WithLabelValues(network).Inc()
}

func (m *FunnelMetrics) ObserveSessionStarted() {
	if m == nil {
		return
	}
	m.sessionsStarted.Inc()
}

func (m *FunnelMetrics) ObserveSessionCompleted(outcome string, score float64) {
	if m == nil {
		return
	}
	m.sessionsCompleted.WithLabelValues(outcome).Inc()
	m.scores.Observe(score)
}
