// Package vimpmetrics exposes Prometheus collectors for the verifier and
// executor, grounded on pkg/consensus/prometheus.go's
// MustRegister-at-init-time convention.
package vimpmetrics

import "github.com/prometheus/client_golang/prometheus"

// Stage labels the two attestation entry points.
const (
	StageCertify = "certify"
	StageRun     = "run"
)

// Outcome labels a request's terminal state.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vimp",
			Name:      "requests_total",
			Help:      "Total number of certify/run requests by stage and outcome.",
		},
		[]string{"stage", "outcome"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vimp",
			Name:      "request_duration_seconds",
			Help:      "Duration of certify/run requests by stage.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"stage"},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration)
}

// ObserveRequest records one completed request's outcome and duration.
func ObserveRequest(stage, outcome string, seconds float64) {
	requestsTotal.WithLabelValues(stage, outcome).Inc()
	requestDuration.WithLabelValues(stage).Observe(seconds)
}
