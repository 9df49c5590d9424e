// Package pgstore provides a PostgreSQL implementation of triage.Store.
package pgstore

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carelabs/triago/internal/triage"
)

var tracer = otel.Tracer("github.com/carelabs/triago/internal/triage/pgstore")

//go:embed schema.sql
var schema string

// Store persists audit records in PostgreSQL. The triage_logs table is
// append-only; this store issues INSERT and SELECT statements only.
type Store struct {
	pool *pgxpool.Pool
}

// New applies the schema and returns a ready Store. The pool is owned
// by the caller.
func New(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Record appends one audit entry.
func (s *Store) Record(ctx context.Context, entry *triage.AuditRecord) error {
	ctx, span := tracer.Start(ctx, "pgstore.Record", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "INSERT"),
	))
	defer span.End()

	symptomsJSON, err := json.Marshal(entry.Symptoms)
	if err != nil {
		return fmt.Errorf("marshal symptoms: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO triage_logs (id, symptoms, urgency, department, intent_valid, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, symptomsJSON, entry.Urgency, entry.Department, entry.IntentValid, entry.CreatedAt,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}

// List returns up to limit audit records, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]triage.AuditRecord, error) {
	ctx, span := tracer.Start(ctx, "pgstore.List", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "SELECT"),
	))
	defer span.End()

	rows, err := s.pool.Query(ctx,
		`SELECT id, symptoms, urgency, department, intent_valid, created_at
		 FROM triage_logs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("query audit records: %w", err)
	}
	defer rows.Close()

	var out []triage.AuditRecord
	for rows.Next() {
		var (
			entry        triage.AuditRecord
			symptomsJSON []byte
		)
		if err := rows.Scan(&entry.ID, &symptomsJSON, &entry.Urgency, &entry.Department, &entry.IntentValid, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		if err := json.Unmarshal(symptomsJSON, &entry.Symptoms); err != nil {
			return nil, fmt.Errorf("unmarshal symptoms for %s: %w", entry.ID, err)
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("iterate audit records: %w", err)
	}
	return out, nil
}
