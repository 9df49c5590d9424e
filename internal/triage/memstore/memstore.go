// Package memstore provides an in-memory implementation of triage.Store.
package memstore

import (
	"context"
	"sync"

	"github.com/carelabs/triago/internal/triage"
)

// Store holds audit records in memory, append-only. Suitable for
// dev/testing; selected explicitly with -audit-store=memory, never as a
// silent fallback.
type Store struct {
	mu      sync.RWMutex
	entries []triage.AuditRecord // append order, oldest first
}

// New initializes a new in-memory Store.
func New() *Store {
	return &Store{}
}

// Record appends a copy of the audit entry.
func (s *Store) Record(_ context.Context, entry *triage.AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *entry
	cp.Symptoms = append([]string(nil), entry.Symptoms...)
	s.entries = append(s.entries, cp)
	return nil
}

// List returns up to limit records, newest first. Returns copies.
func (s *Store) List(_ context.Context, limit int) ([]triage.AuditRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.entries)
	if limit > n {
		limit = n
	}
	out := make([]triage.AuditRecord, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		cp := s.entries[i]
		cp.Symptoms = append([]string(nil), cp.Symptoms...)
		out = append(out, cp)
	}
	return out, nil
}
