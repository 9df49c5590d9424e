package triage

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Request outcomes used as metric labels.
const (
	OutcomeAccepted        = "accepted"
	OutcomeRejected        = "rejected"
	OutcomeUpstreamError   = "upstream_error"
	OutcomeInvalidResponse = "invalid_response"
)

// Metrics holds Prometheus metrics for the triage subsystem. A nil
// *Metrics is valid and observes nothing, so tests can pass nil.
type Metrics struct {
	RequestsTotal      *prometheus.CounterVec
	LLMCallsTotal      *prometheus.CounterVec
	LLMDuration        prometheus.Histogram
	LLMTokensIn        prometheus.Counter
	LLMTokensOut       prometheus.Counter
	NormalizeFailures  *prometheus.CounterVec
	UrgencyTotal       *prometheus.CounterVec
	AuditWriteFailures prometheus.Counter
	NotifyFailures     prometheus.Counter
}

// NewMetrics registers and returns triage metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "triago_requests_total",
			Help: "Total triage requests by final outcome.",
		}, []string{"outcome"}),
		LLMCallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "triago_llm_calls_total",
			Help: "Total upstream model calls by outcome.",
		}, []string{"outcome"}),
		LLMDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "triago_llm_call_duration_seconds",
			Help:    "Duration of upstream model calls in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 9), // 0.25s .. ~64s
		}),
		LLMTokensIn: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "triago_llm_tokens_input_total",
			Help: "Total upstream model input tokens consumed.",
		}),
		LLMTokensOut: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "triago_llm_tokens_output_total",
			Help: "Total upstream model output tokens consumed.",
		}),
		NormalizeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "triago_normalize_failures_total",
			Help: "Model payloads rejected by the normalizer, by reason.",
		}, []string{"reason"}),
		UrgencyTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "triago_urgency_total",
			Help: "Returned urgency levels; values outside Low/Medium/High count as other.",
		}, []string{"urgency"}),
		AuditWriteFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "triago_audit_write_failures_total",
			Help: "Audit store writes that failed and were swallowed.",
		}),
		NotifyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "triago_notify_failures_total",
			Help: "High-urgency notifications that failed and were swallowed.",
		}),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.LLMCallsTotal,
		m.LLMDuration,
		m.LLMTokensIn,
		m.LLMTokensOut,
		m.NormalizeFailures,
		m.UrgencyTotal,
		m.AuditWriteFailures,
		m.NotifyFailures,
	)
	return m
}

// ObserveRequest records the final outcome of one triage request.
func (m *Metrics) ObserveRequest(outcome string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(outcome).Inc()
}

// ObserveLLMCall records one upstream call with its duration and usage.
func (m *Metrics) ObserveLLMCall(dur time.Duration, usage Usage, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.LLMCallsTotal.WithLabelValues(outcome).Inc()
	m.LLMDuration.Observe(dur.Seconds())
	m.LLMTokensIn.Add(float64(usage.InputTokens))
	m.LLMTokensOut.Add(float64(usage.OutputTokens))
}

// ObserveNormalizeFailure records a payload rejected by the normalizer.
func (m *Metrics) ObserveNormalizeFailure(reason string) {
	if m == nil {
		return
	}
	m.NormalizeFailures.WithLabelValues(reason).Inc()
}

// ObserveUrgency records a returned urgency level. The raw string is
// passed through to the client, but the label set stays bounded: any
// value outside the known levels is counted as "other".
func (m *Metrics) ObserveUrgency(urgency string) {
	if m == nil {
		return
	}
	label := strings.TrimSpace(urgency)
	if !KnownUrgency(label) {
		label = "other"
	}
	m.UrgencyTotal.WithLabelValues(label).Inc()
}

// ObserveAuditFailure records a swallowed audit write failure.
func (m *Metrics) ObserveAuditFailure() {
	if m == nil {
		return
	}
	m.AuditWriteFailures.Inc()
}

// ObserveNotifyFailure records a swallowed notification failure.
func (m *Metrics) ObserveNotifyFailure() {
	if m == nil {
		return
	}
	m.NotifyFailures.Inc()
}
