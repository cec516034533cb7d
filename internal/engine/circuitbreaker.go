package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Circuit breaker states
const (
	StateClosed   = "closed"
	StateOpen     = "open"
	StateHalfOpen = "half-open"
)

// ErrCircuitOpen is returned by Allow while calls to a scope are being shed.
var ErrCircuitOpen = errors.New("circuit open")

// CircuitBreaker sheds calls to the attribution backend after repeated
// failures. State lives in Redis so every process of the demo shares it.
//
// closed -> open after failureThreshold consecutive failures;
// open -> half-open once cooldown has elapsed since the last failure;
// half-open -> closed on success, back to open on failure.
//
// A shed call is reported to the caller as a failed SDK call. Nothing is
// retried on its behalf.
type CircuitBreaker struct {
	redisClient      *redis.Client
	logger           *slog.Logger
	failureThreshold int
	cooldown         time.Duration
	now              func() time.Time
}

// BreakerState is the externally visible state for a scope.
type BreakerState struct {
	State        string `json:"state"`
	Failures     int    `json:"failures"`
	LastFailedAt string `json:"last_failed_at,omitempty"`
}

func NewCircuitBreaker(redisClient *redis.Client, logger *slog.Logger, failureThreshold int, cooldown time.Duration) *CircuitBreaker {
	if failureThreshold <= 0 {
		failureThreshold = 5
	}
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	return &CircuitBreaker{
		redisClient:      redisClient,
		logger:           logger,
		failureThreshold: failureThreshold,
		cooldown:         cooldown,
		now:              time.Now,
	}
}

func breakerKey(scope string) string {
	return fmt.Sprintf("sdk:cb:%s", scope)
}

// Allow returns ErrCircuitOpen when calls for scope must be shed. Redis
// errors let the call through.
func (cb *CircuitBreaker) Allow(ctx context.Context, scope string) error {
	key := breakerKey(scope)

	data, err := cb.redisClient.HGetAll(ctx, key).Result()
	if err != nil {
		cb.logger.Error("circuit breaker state unavailable", "error", err, "scope", scope)
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	if data["state"] != StateOpen {
		return nil
	}

	lastFailedAt, _ := strconv.ParseInt(data["last_failed_at"], 10, 64)
	if cb.now().Unix()-lastFailedAt < int64(cb.cooldown.Seconds()) {
		return ErrCircuitOpen
	}

	if err := cb.redisClient.HSet(ctx, key, "state", StateHalfOpen).Err(); err != nil {
		cb.logger.Error("failed to move circuit to half-open", "error", err, "scope", scope)
	}
	cb.logger.Info("circuit breaker half-open", "scope", scope)
	return nil
}

// RecordSuccess closes the circuit and clears the failure count.
func (cb *CircuitBreaker) RecordSuccess(ctx context.Context, scope string) {
	key := breakerKey(scope)

	prev, _ := cb.redisClient.HGet(ctx, key, "state").Result()

	if err := cb.redisClient.HSet(ctx, key, "state", StateClosed, "failures", 0).Err(); err != nil {
		cb.logger.Error("failed to record circuit breaker success", "error", err, "scope", scope)
		return
	}

	if prev == StateHalfOpen {
		cb.logger.Info("circuit breaker closed (recovered)", "scope", scope)
	}
}

// RecordFailure counts a failure and opens the circuit at the threshold or
// when a half-open call fails.
func (cb *CircuitBreaker) RecordFailure(ctx context.Context, scope string) {
	key := breakerKey(scope)

	failures, err := cb.redisClient.HIncrBy(ctx, key, "failures", 1).Result()
	if err != nil {
		cb.logger.Error("failed to record circuit breaker failure", "error", err, "scope", scope)
		return
	}
	cb.redisClient.HSet(ctx, key, "last_failed_at", cb.now().Unix())

	state, _ := cb.redisClient.HGet(ctx, key, "state").Result()

	switch {
	case state == StateHalfOpen:
		cb.redisClient.HSet(ctx, key, "state", StateOpen)
		cb.logger.Warn("circuit breaker re-opened (half-open call failed)", "scope", scope)
	case failures >= int64(cb.failureThreshold):
		if state != StateOpen {
			cb.redisClient.HSet(ctx, key, "state", StateOpen)
			cb.logger.Warn("circuit breaker opened",
				"scope", scope,
				"failures", failures,
				"threshold", cb.failureThreshold,
			)
		}
	case state == "":
		cb.redisClient.HSet(ctx, key, "state", StateClosed)
	}
}

// State reports the breaker state for scope without changing it.
func (cb *CircuitBreaker) State(ctx context.Context, scope string) BreakerState {
	data, err := cb.redisClient.HGetAll(ctx, breakerKey(scope)).Result()
	if err != nil || len(data) == 0 {
		return BreakerState{State: StateClosed}
	}

	failures, _ := strconv.Atoi(data["failures"])
	state := data["state"]
	if state == "" {
		state = StateClosed
	}

	lastFailed, _ := strconv.ParseInt(data["last_failed_at"], 10, 64)
	if state == StateOpen && cb.now().Unix()-lastFailed >= int64(cb.cooldown.Seconds()) {
		state = StateHalfOpen
	}

	result := BreakerState{State: state, Failures: failures}
	if lastFailed > 0 {
		result.LastFailedAt = time.Unix(lastFailed, 0).UTC().Format(time.RFC3339)
	}
	return result
}
