package engine

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupTestCB(t *testing.T) (*CircuitBreaker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewCircuitBreaker(client, logger, 5, 30*time.Second), mr
}

// openAndExpire opens the circuit for scope and moves the clock past the cooldown.
func openAndExpire(t *testing.T, cb *CircuitBreaker, scope string) {
	t.Helper()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		cb.RecordFailure(ctx, scope)
	}
	later := time.Now().Add(31 * time.Second)
	cb.now = func() time.Time { return later }
}

func TestCircuitBreaker_InitialState(t *testing.T) {
	cb, _ := setupTestCB(t)

	if err := cb.Allow(context.Background(), "app-1"); err != nil {
		t.Errorf("new scope should be allowed, got %v", err)
	}
	if s := cb.State(context.Background(), "app-1"); s.State != StateClosed || s.Failures != 0 {
		t.Errorf("State = %+v, want closed with 0 failures", s)
	}
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb, _ := setupTestCB(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		cb.RecordFailure(ctx, "app-1")
	}

	if err := cb.Allow(ctx, "app-1"); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("Allow() = %v, want ErrCircuitOpen", err)
	}
	if s := cb.State(ctx, "app-1"); s.State != StateOpen {
		t.Errorf("State = %q, want %q", s.State, StateOpen)
	}
}

func TestCircuitBreaker_StaysClosedBelowThreshold(t *testing.T) {
	cb, _ := setupTestCB(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		cb.RecordFailure(ctx, "app-1")
	}

	if err := cb.Allow(ctx, "app-1"); err != nil {
		t.Errorf("should be allowed below threshold, got %v", err)
	}
}

func TestCircuitBreaker_SuccessResets(t *testing.T) {
	cb, _ := setupTestCB(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		cb.RecordFailure(ctx, "app-1")
	}
	cb.RecordSuccess(ctx, "app-1")

	s := cb.State(ctx, "app-1")
	if s.State != StateClosed {
		t.Errorf("State = %q after success, want %q", s.State, StateClosed)
	}
	if s.Failures != 0 {
		t.Errorf("Failures = %d after success, want 0", s.Failures)
	}
}

func TestCircuitBreaker_HalfOpenAfterCooldown(t *testing.T) {
	cb, _ := setupTestCB(t)
	ctx := context.Background()

	openAndExpire(t, cb, "app-1")

	if err := cb.Allow(ctx, "app-1"); err != nil {
		t.Fatalf("half-open call should be allowed after cooldown, got %v", err)
	}
	if s := cb.State(ctx, "app-1"); s.State != StateHalfOpen {
		t.Errorf("State = %q, want %q", s.State, StateHalfOpen)
	}
}

func TestCircuitBreaker_HalfOpenSuccessCloses(t *testing.T) {
	cb, _ := setupTestCB(t)
	ctx := context.Background()

	openAndExpire(t, cb, "app-1")
	cb.Allow(ctx, "app-1")
	cb.RecordSuccess(ctx, "app-1")

	if s := cb.State(ctx, "app-1"); s.State != StateClosed {
		t.Errorf("State = %q, want %q", s.State, StateClosed)
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb, _ := setupTestCB(t)
	ctx := context.Background()

	openAndExpire(t, cb, "app-1")
	cb.Allow(ctx, "app-1")
	cb.RecordFailure(ctx, "app-1")

	if err := cb.Allow(ctx, "app-1"); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("Allow() = %v after failed half-open call, want ErrCircuitOpen", err)
	}
}

func TestCircuitBreaker_ScopesAreIsolated(t *testing.T) {
	cb, _ := setupTestCB(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		cb.RecordFailure(ctx, "app-1")
	}

	if err := cb.Allow(ctx, "app-2"); err != nil {
		t.Errorf("app-2 should be unaffected, got %v", err)
	}
}

func TestCircuitBreaker_RedisDownFailsOpen(t *testing.T) {
	cb, mr := setupTestCB(t)
	mr.Close()

	if err := cb.Allow(context.Background(), "app-1"); err != nil {
		t.Errorf("Allow() should let calls through when Redis is unavailable, got %v", err)
	}
}
