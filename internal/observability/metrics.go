// Package observability holds the Prometheus collectors of the client.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for gateway requests.
const (
	OutcomeOK          = "ok"
	OutcomeUnavailable = "unavailable"
	OutcomeRejected    = "rejected"
	OutcomeDecodeError = "decode_error"
	OutcomeCanceled    = "canceled"
	OutcomeFailed      = "failed"
)

// GatewayMetrics counts and times backend requests by operation.
type GatewayMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewGatewayMetrics creates the collectors and registers them on reg. A nil
// reg leaves them unregistered.
func NewGatewayMetrics(reg prometheus.Registerer) *GatewayMetrics {
	m := &GatewayMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fittracker",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Number of backend requests grouped by operation and outcome.",
		}, []string{"operation", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fittracker",
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Latency of backend requests per operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.latency)
	}
	return m
}

// Observe records one finished request. Safe to call on a nil receiver.
func (m *GatewayMetrics) Observe(operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(operation, outcome).Inc()
	m.latency.WithLabelValues(operation).Observe(elapsed.Seconds())
}
