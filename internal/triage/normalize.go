package triage

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidAssessment marks model output that failed normalization,
// either unparsable syntax or a missing/mistyped mandatory field.
// Callers match it with errors.Is and must surface only a generic
// "invalid response format" message: raw model text is never echoed
// back to the end user.
var ErrInvalidAssessment = errors.New("invalid assessment from model")

// Normalization failure reasons, used for error detail and metrics.
const (
	ReasonSyntax   = "syntax"   // not parsable as JSON at all
	ReasonShape    = "shape"    // parsed, but mandatory fields missing or mistyped
	ReasonEnvelope = "envelope" // upstream response envelope had no content at all
)

// InvalidAssessmentError carries the reason a model payload was
// rejected. It matches ErrInvalidAssessment under errors.Is.
type InvalidAssessmentError struct {
	Reason string
	err    error
}

func (e *InvalidAssessmentError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("invalid assessment (%s): %v", e.Reason, e.err)
	}
	return fmt.Sprintf("invalid assessment (%s)", e.Reason)
}

func (e *InvalidAssessmentError) Unwrap() error { return e.err }

func (e *InvalidAssessmentError) Is(target error) bool {
	return target == ErrInvalidAssessment
}

// NewInvalidAssessment wraps err as an InvalidAssessmentError. Used by
// providers when the upstream response envelope itself is off-contract
// (no choices, no message content).
func NewInvalidAssessment(reason string, err error) *InvalidAssessmentError {
	return &InvalidAssessmentError{Reason: reason, err: err}
}

// Normalize parses raw model text into an Assessment. The upstream
// model is an untrusted, non-deterministic text generator that may emit
// prose, truncated JSON, or extra commentary, so normalization is two
// phases: a syntax parse, then shape validation of the mandatory
// fields. Optional fields get defaults: empty medical_attention, the
// canonical disclaimer.
//
// The urgency string is passed through verbatim, without clamping to
// the Low/Medium/High set; off-enum values are surfaced via metrics
// instead (see Metrics.ObserveUrgency).
func Normalize(raw string) (*Assessment, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, &InvalidAssessmentError{Reason: ReasonSyntax, err: err}
	}

	urgency, err := mandatoryString(payload, "urgency")
	if err != nil {
		return nil, err
	}
	department, err := mandatoryString(payload, "department")
	if err != nil {
		return nil, err
	}
	explanation, err := mandatoryString(payload, "explanation")
	if err != nil {
		return nil, err
	}

	return &Assessment{
		Urgency:          urgency,
		Department:       department,
		Explanation:      explanation,
		MedicalAttention: optionalString(payload, "medical_attention", ""),
		Disclaimer:       optionalString(payload, "disclaimer", CanonicalDisclaimer),
	}, nil
}

func mandatoryString(payload map[string]any, key string) (string, error) {
	v, ok := payload[key]
	if !ok {
		return "", &InvalidAssessmentError{Reason: ReasonShape, err: fmt.Errorf("missing field %q", key)}
	}
	s, ok := v.(string)
	if !ok {
		return "", &InvalidAssessmentError{Reason: ReasonShape, err: fmt.Errorf("field %q is not a string", key)}
	}
	return s, nil
}

func optionalString(payload map[string]any, key, fallback string) string {
	if s, ok := payload[key].(string); ok && s != "" {
		return s
	}
	return fallback
}
