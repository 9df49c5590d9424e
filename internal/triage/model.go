package triage

import "time"

// Urgency levels the upstream model is instructed to use. The
// normalizer does not clamp to these: the model's literal string is
// passed through, and anything else shows up as "other" in metrics.
const (
	UrgencyLow    = "Low"
	UrgencyMedium = "Medium"
	UrgencyHigh   = "High"
)

// CanonicalDisclaimer is substituted whenever the model omits one, and
// accompanies every scope rejection.
const CanonicalDisclaimer = "This information is not a medical diagnosis and does not replace professional medical advice."

// Assessment is the validated, normalized output of a triage run.
// Urgency, Department, and Explanation are mandatory; the normalizer
// rejects the whole payload if any of them is missing or mistyped.
type Assessment struct {
	Urgency          string `json:"urgency"`
	Department       string `json:"department"`
	Explanation      string `json:"explanation"`
	MedicalAttention string `json:"medical_attention"`
	Disclaimer       string `json:"disclaimer"`
}

// AuditRecord is the anonymized, append-only log entry written once per
// request, accepted or rejected. It never carries the raw message; only
// corpus-derived symptom tags and the assessment's urgency/department.
type AuditRecord struct {
	ID          string    `json:"id"`
	Symptoms    []string  `json:"symptoms"`
	Urgency     string    `json:"urgency"`
	Department  string    `json:"department"`
	IntentValid bool      `json:"intent_valid"`
	CreatedAt   time.Time `json:"created_at"`
}

// KnownUrgency reports whether u is one of the three levels the system
// prompt asks for. Used for metrics labelling only, never to reject.
func KnownUrgency(u string) bool {
	return u == UrgencyLow || u == UrgencyMedium || u == UrgencyHigh
}
