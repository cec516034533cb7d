package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRateLimited is returned when a scope has used up its per-second budget.
var ErrRateLimited = errors.New("rate limited")

// RateLimiter is a per-scope sliding window limiter on SDK calls, kept in a
// Redis sorted set scored by millisecond timestamps.
type RateLimiter struct {
	redisClient *redis.Client
	logger      *slog.Logger
	limit       int
	window      time.Duration
}

var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)

if redis.call('ZCARD', key) < limit then
    redis.call('ZADD', key, now, member)
    redis.call('PEXPIRE', key, window + 1000)
    return 1
end
return 0
`)

// NewRateLimiter allows limit calls per second per scope. A limit of zero
// disables limiting.
func NewRateLimiter(redisClient *redis.Client, logger *slog.Logger, limit int) *RateLimiter {
	return &RateLimiter{
		redisClient: redisClient,
		logger:      logger,
		limit:       limit,
		window:      time.Second,
	}
}

func limiterKey(scope string) string {
	return fmt.Sprintf("sdk:rl:%s", scope)
}

// Allow returns ErrRateLimited when scope is over budget. Redis errors let
// the call through.
func (rl *RateLimiter) Allow(ctx context.Context, scope string) error {
	if rl.limit <= 0 {
		return nil
	}

	now := time.Now()
	member := fmt.Sprintf("%d", now.UnixNano())

	allowed, err := slidingWindowScript.Run(ctx, rl.redisClient, []string{limiterKey(scope)},
		now.UnixMilli(), rl.window.Milliseconds(), rl.limit, member,
	).Int64()
	if err != nil {
		rl.logger.Error("rate limiter script failed", "error", err, "scope", scope)
		return nil
	}
	if allowed == 0 {
		rl.logger.Debug("sdk call rate limited", "scope", scope, "limit", rl.limit)
		return ErrRateLimited
	}
	return nil
}
