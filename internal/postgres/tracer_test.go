package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestWithHTTPMethod_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithHTTPMethod(context.Background(), "POST")
	got, _ := ctx.Value(ctxKeyHTTPMethod).(string)
	if got != "POST" {
		t.Errorf("stored method = %q, want %q", got, "POST")
	}
}

func TestWithHTTPMethod_Empty(t *testing.T) {
	t.Parallel()

	ctx := WithHTTPMethod(context.Background(), "")
	if v := ctx.Value(ctxKeyHTTPMethod); v != nil {
		t.Errorf("stored method = %v, want none", v)
	}
}

func TestSetQueryObserver(t *testing.T) {
	// Mutates the package-global observer; not parallel.
	defer SetQueryObserver(nil)

	called := false
	obs := QueryObserverFunc(func(_ context.Context, _, _, _ string, _ time.Duration) {
		called = true
	})

	SetQueryObserver(obs)
	got := getQueryObserver()
	if got == nil {
		t.Fatal("expected non-nil observer after Set")
	}
	got.ObserveQuery(context.Background(), "GET", "/test", "ok", time.Millisecond)
	if !called {
		t.Error("observer was not called")
	}

	SetQueryObserver(nil)
	if getQueryObserver() != nil {
		t.Error("expected nil observer after Set(nil)")
	}
}

func TestLoggingTracer_ObserverOutcomes(t *testing.T) {
	defer SetQueryObserver(nil)

	type observed struct {
		method, route, outcome string
		dur                    time.Duration
	}
	var seen []observed
	SetQueryObserver(QueryObserverFunc(func(_ context.Context, method, route, outcome string, dur time.Duration) {
		seen = append(seen, observed{method, route, outcome, dur})
	}))

	tr := wrapQueryTracer(nil)

	run := func(ctx context.Context, err error) {
		ctx = tr.TraceQueryStart(ctx, nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
		time.Sleep(time.Millisecond)
		tr.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{
			CommandTag: pgconn.NewCommandTag("SELECT 1"),
			Err:        err,
		})
	}

	run(WithHTTPMethod(context.Background(), "POST"), nil)
	run(context.Background(), errors.New("query canceled"))

	if len(seen) != 2 {
		t.Fatalf("observer called %d times, want 2", len(seen))
	}
	if seen[0].method != "POST" || seen[0].outcome != "ok" {
		t.Errorf("first observation = %+v", seen[0])
	}
	if seen[0].dur <= 0 {
		t.Errorf("first observation duration = %v, want > 0", seen[0].dur)
	}
	if seen[1].method != "UNKNOWN" {
		t.Errorf("second observation method = %q, want UNKNOWN", seen[1].method)
	}
	if seen[1].outcome != "error" {
		t.Errorf("second observation outcome = %q, want error", seen[1].outcome)
	}
	if seen[1].route != "unknown" {
		t.Errorf("second observation route = %q, want unknown", seen[1].route)
	}
}

func TestLoggingTracer_NoObserver(t *testing.T) {
	defer SetQueryObserver(nil)
	SetQueryObserver(nil)

	tr := wrapQueryTracer(nil)
	ctx := tr.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	// Must not panic without an observer installed.
	tr.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("SELECT 1")})
}
