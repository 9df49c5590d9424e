// Package triageapi exposes the triage pipeline over HTTP. It owns
// routing and status mapping only; CORS and the rest of the transport
// middleware are applied by the caller around the router.
package triageapi

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-chi/chi/v5"
	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"

	"github.com/carelabs/triago/internal/triage"
)

// Client-facing messages. Fixed strings: upstream details and raw model
// text never leak into responses.
const (
	welcomeMessage       = "Welcome to the Clinical Triage API"
	scopeRejectionError  = "This service is for symptom-related health concerns only."
	invalidJSONError     = "Invalid JSON in request body"
	upstreamError        = "Service unavailable"
	invalidResponseError = "Invalid response format from AI service"
)

// TriageService defines the business operations triageapi needs.
type TriageService interface {
	Triage(ctx context.Context, message string) (*triage.Assessment, error)
	Audit(ctx context.Context, limit int) ([]triage.AuditRecord, error)
}

// API holds dependencies for HTTP handlers.
type API struct {
	logger     log.Logger
	svc        TriageService
	adminToken string
}

// New creates a new API handler. adminToken guards the audit listing;
// empty disables that route entirely.
func New(logger log.Logger, svc TriageService, adminToken string) *API {
	if logger == nil {
		logger = log.Nop()
	}
	if svc == nil {
		panic(xerrors.New("triage service is required"))
	}
	return &API{
		logger:     logger,
		svc:        svc,
		adminToken: adminToken,
	}
}

// RegisterRoutes attaches API endpoints to the router, including the
// JSON 404/405 fallbacks.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Get("/triage", a.handleWelcome)
	r.Post("/triage", a.handlePostTriage)

	if a.adminToken != "" {
		r.Route("/api/v1", func(r chi.Router) {
			r.Use(bearerToken(a.adminToken))
			r.Get("/audit", a.handleListAudit)
		})
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
	})
}

func (a *API) handleWelcome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
}

func (a *API) handlePostTriage(w http.ResponseWriter, r *http.Request) {
	// Only syntax errors (including trailing garbage) are "invalid
	// JSON". A valid body of the wrong shape — a bare string, number,
	// or array — has no message and takes the out-of-scope path, audit
	// record included.
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": invalidJSONError})
		return
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": invalidJSONError})
		return
	}
	var message string
	if obj, ok := payload.(map[string]any); ok {
		message, _ = obj["message"].(string)
	}

	assessment, err := a.svc.Triage(r.Context(), message)

	span := trace.SpanFromContext(r.Context())

	switch {
	case err == nil:
		span.SetAttributes(attribute.String("triago.outcome", "accepted"))
		writeJSON(w, http.StatusOK, assessment)

	case errors.Is(err, triage.ErrOutOfScope):
		span.SetAttributes(attribute.String("triago.outcome", "rejected"))
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":      scopeRejectionError,
			"disclaimer": triage.CanonicalDisclaimer,
		})

	case errors.Is(err, triage.ErrInvalidAssessment):
		span.SetAttributes(attribute.String("triago.outcome", "invalid_response"))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": invalidResponseError})

	default:
		span.SetAttributes(attribute.String("triago.outcome", "upstream_error"))
		a.logger.Error(r.Context(), err, "triage request failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": upstreamError})
	}
}

func (a *API) handleListAudit(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be an integer"})
			return
		}
		limit = n
	}

	entries, err := a.svc.Audit(r.Context(), limit)
	if err != nil {
		a.logger.Error(r.Context(), err, "failed to list audit records")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if entries == nil {
		entries = []triage.AuditRecord{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// bearerToken validates the Authorization header against the expected
// token using constant-time comparison.
func bearerToken(token string) func(http.Handler) http.Handler {
	expected := []byte(token)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing or malformed authorization header"})
				return
			}
			got := []byte(strings.TrimPrefix(auth, "Bearer "))
			if subtle.ConstantTimeCompare(got, expected) != 1 {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// nothing useful to do with an encode error at this point
	_ = json.NewEncoder(w).Encode(v)
}
