// Package telemetry records pipeline metrics on the default prometheus
// registry, exposed by the server's /metrics endpoint.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/futureproof-labs/insight/config"
)

// Telemetry tracks question outcomes, per-stage latencies and collaborator
// calls. All methods are no-ops when telemetry is disabled.
type Telemetry struct {
	enabled bool

	questions     *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	llmCalls      *prometheus.CounterVec
	llmDuration   prometheus.Histogram
	sqlCalls      *prometheus.CounterVec
}

// NewTelemetry creates a telemetry instance registered on the default
// registry.
func NewTelemetry(cfg config.TelemetryConfig) *Telemetry {
	t := &Telemetry{enabled: cfg.Enabled}
	if !t.enabled {
		return t
	}
	t.questions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "insight_questions_total",
		Help: "Questions processed, labeled by outcome.",
	}, []string{"outcome"})
	t.stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "insight_stage_duration_seconds",
		Help:    "Duration of each pipeline stage.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})
	t.llmCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "insight_llm_requests_total",
		Help: "Completion requests, labeled by status.",
	}, []string{"status"})
	t.llmDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "insight_llm_request_duration_seconds",
		Help:    "Completion request latency.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
	})
	t.sqlCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "insight_sql_queries_total",
		Help: "SQL executions, labeled by status.",
	}, []string{"status"})
	return t
}

// RecordQuestion records a completed question with its outcome.
func (t *Telemetry) RecordQuestion(success bool) {
	if !t.enabled {
		return
	}
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	t.questions.WithLabelValues(outcome).Inc()
}

// RecordStage records one pipeline stage duration.
func (t *Telemetry) RecordStage(stage string, d time.Duration) {
	if !t.enabled {
		return
	}
	t.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordLLMCall records one completion round trip.
func (t *Telemetry) RecordLLMCall(d time.Duration, err error) {
	if !t.enabled {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	t.llmCalls.WithLabelValues(status).Inc()
	t.llmDuration.Observe(d.Seconds())
}

// RecordSQLQuery records one SQL execution.
func (t *Telemetry) RecordSQLQuery(err error) {
	if !t.enabled {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	t.sqlCalls.WithLabelValues(status).Inc()
}
