package triage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/linnemanlabs/go-core/log"
	"github.com/oklog/ulid/v2"
)

// ErrOutOfScope marks input rejected by the intent gate: absent, empty,
// or not symptom-related. A client input error, never retried.
var ErrOutOfScope = errors.New("message is not symptom-related")

// ErrUpstream marks a transport failure, timeout, or non-success status
// from the model service. Surfaced to callers as an opaque
// "Service unavailable"; the current design performs no retry.
var ErrUpstream = errors.New("upstream model service unavailable")

// DefaultLLMTimeout bounds the single upstream call when no explicit
// timeout is configured. Expiry is treated as an upstream failure.
const DefaultLLMTimeout = 30 * time.Second

// Service runs the triage pipeline for one request at a time: intent
// gate, upstream call, normalization, symptom extraction, audit write.
// Requests are independent; the only shared state is the immutable gate
// and the audit sink.
type Service struct {
	gate       *Gate
	provider   Provider
	store      Store
	notifier   Notifier
	logger     log.Logger
	metrics    *Metrics
	llmTimeout time.Duration
}

// NewService creates a triage service. notifier may be nil; metrics may
// be nil (observes nothing); llmTimeout <= 0 uses DefaultLLMTimeout.
func NewService(gate *Gate, provider Provider, store Store, logger log.Logger, metrics *Metrics, notifier Notifier, llmTimeout time.Duration) *Service {
	if logger == nil {
		logger = log.Nop()
	}
	if llmTimeout <= 0 {
		llmTimeout = DefaultLLMTimeout
	}
	return &Service{
		gate:       gate,
		provider:   provider,
		store:      store,
		notifier:   notifier,
		logger:     logger,
		metrics:    metrics,
		llmTimeout: llmTimeout,
	}
}

// Triage runs the full pipeline for one message. Errors are typed for
// the HTTP layer: ErrOutOfScope (client input), ErrInvalidAssessment
// (model replied off-contract), anything else wraps ErrUpstream. The
// audit write happens before returning on both the rejected and the
// accepted path, and its failure never changes the outcome.
func (s *Service) Triage(ctx context.Context, message string) (*Assessment, error) {
	if !s.gate.Classify(message) {
		s.audit(ctx, &AuditRecord{
			Symptoms:    []string{},
			Urgency:     UrgencyLow,
			Department:  "N/A",
			IntentValid: false,
		})
		s.metrics.ObserveRequest(OutcomeRejected)
		return nil, ErrOutOfScope
	}

	// Single attempt, bounded. An unbounded upstream call risks
	// resource exhaustion under load.
	callCtx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()

	start := time.Now()
	resp, err := s.provider.Send(callCtx, BuildRequest(message))
	var usage Usage
	if resp != nil {
		usage = resp.Usage
	}
	s.metrics.ObserveLLMCall(time.Since(start), usage, err)

	if err != nil {
		// Providers report an off-contract response envelope (no
		// choices, no content) as ErrInvalidAssessment; everything
		// else is transport.
		var invalid *InvalidAssessmentError
		if errors.As(err, &invalid) {
			s.metrics.ObserveNormalizeFailure(invalid.Reason)
			s.metrics.ObserveRequest(OutcomeInvalidResponse)
			s.logger.Warn(ctx, "model response failed contract", "reason", invalid.Reason)
			return nil, err
		}
		s.metrics.ObserveRequest(OutcomeUpstreamError)
		s.logger.Error(ctx, err, "model call failed")
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	assessment, err := Normalize(resp.Content)
	if err != nil {
		var invalid *InvalidAssessmentError
		if errors.As(err, &invalid) {
			s.metrics.ObserveNormalizeFailure(invalid.Reason)
			s.logger.Warn(ctx, "model output failed normalization", "reason", invalid.Reason, "model", resp.Model)
		}
		s.metrics.ObserveRequest(OutcomeInvalidResponse)
		return nil, err
	}

	s.metrics.ObserveUrgency(assessment.Urgency)
	if !KnownUrgency(assessment.Urgency) {
		s.logger.Warn(ctx, "model returned off-enum urgency", "urgency", assessment.Urgency, "model", resp.Model)
	}

	entry := &AuditRecord{
		Symptoms:    s.gate.Extract(message),
		Urgency:     assessment.Urgency,
		Department:  assessment.Department,
		IntentValid: true,
	}
	s.audit(ctx, entry)

	if s.notifier != nil && strings.EqualFold(assessment.Urgency, UrgencyHigh) {
		// Notification must not add latency or couple to the
		// request lifetime.
		go s.notify(context.WithoutCancel(ctx), entry)
	}

	s.metrics.ObserveRequest(OutcomeAccepted)
	return assessment, nil
}

// Audit returns recent audit records for the admin surface, newest
// first. limit outside 1..500 falls back to 50.
func (s *Service) Audit(ctx context.Context, limit int) ([]AuditRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return s.store.List(ctx, limit)
}

// audit stamps and appends one record. Failures are counted and logged
// out-of-band; the triage response is the primary deliverable and the
// trail is best-effort.
func (s *Service) audit(ctx context.Context, entry *AuditRecord) {
	entry.ID = ulid.Make().String()
	entry.CreatedAt = time.Now().UTC()
	if err := s.store.Record(ctx, entry); err != nil {
		s.metrics.ObserveAuditFailure()
		s.logger.Warn(ctx, "audit write failed", "error", err, "intent_valid", entry.IntentValid)
	}
}

func (s *Service) notify(ctx context.Context, entry *AuditRecord) {
	if err := s.notifier.Send(ctx, entry); err != nil {
		s.metrics.ObserveNotifyFailure()
		s.logger.Warn(ctx, "high-urgency notification failed", "error", err)
	}
}
