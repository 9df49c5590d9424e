package triage

import "context"

// Store is the persistence interface for the audit trail. The trail is
// append-only: there is no update or delete path, and implementations
// must guarantee safe concurrent appends.
type Store interface {
	// Record appends one audit entry. Failures are reported to the
	// caller but must never influence the triage response already
	// prepared; the Service logs and swallows them.
	Record(ctx context.Context, entry *AuditRecord) error

	// List returns up to limit entries, newest first. Read-only admin
	// surface; it never exposes raw request text because none is stored.
	List(ctx context.Context, limit int) ([]AuditRecord, error)
}

// Notifier is notified of completed high-urgency assessments. Delivery
// is best-effort and must not block or fail the triage response.
type Notifier interface {
	Send(ctx context.Context, entry *AuditRecord) error
}
