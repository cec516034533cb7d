// Package navigation tracks which screen is active. Writers race and the
// last write wins; history supports navigating back.
package navigation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/websocket"
)

// MaxHistory bounds the back stack.
const MaxHistory = 50

// Navigator is the navigation collaborator.
type Navigator interface {
	Navigate(ctx context.Context, target domain.NavigationTarget) error
	Back(ctx context.Context) (domain.NavigationTarget, error)
	Current(ctx context.Context) (domain.NavigationTarget, error)
}

// Publisher is notified of every screen change. *websocket.Hub satisfies it.
type Publisher interface {
	Broadcast(msgType string, payload any)
}

// navigateScript replaces the current screen and pushes the previous one
// onto the history list unless it is the same screen.
var navigateScript = redis.NewScript(`
local prev = redis.call('GET', KEYS[1])
if prev and prev ~= ARGV[1] then
	redis.call('LPUSH', KEYS[2], prev)
	redis.call('LTRIM', KEYS[2], 0, tonumber(ARGV[2]) - 1)
end
redis.call('SET', KEYS[1], ARGV[1])
return 1
`)

// backScript pops the history list into the current screen. An empty
// history lands on ARGV[1].
var backScript = redis.NewScript(`
local prev = redis.call('LPOP', KEYS[2])
if not prev then
	prev = ARGV[1]
end
redis.call('SET', KEYS[1], prev)
return prev
`)

// Redis keeps navigation state in Redis so every API instance shares it.
type Redis struct {
	redisClient *redis.Client
	publisher   Publisher
	logger      *slog.Logger
	currentKey  string
	historyKey  string
}

// NewRedis creates a navigator whose keys are scoped by session. publisher
// may be nil.
func NewRedis(redisClient *redis.Client, session string, publisher Publisher, logger *slog.Logger) *Redis {
	return &Redis{
		redisClient: redisClient,
		publisher:   publisher,
		logger:      logger,
		currentKey:  fmt.Sprintf("nav:%s:current", session),
		historyKey:  fmt.Sprintf("nav:%s:history", session),
	}
}

func (r *Redis) Navigate(ctx context.Context, target domain.NavigationTarget) error {
	data, err := json.Marshal(target)
	if err != nil {
		return fmt.Errorf("encoding navigation target: %w", err)
	}
	if err := navigateScript.Run(ctx, r.redisClient, []string{r.currentKey, r.historyKey}, string(data), MaxHistory).Err(); err != nil {
		return fmt.Errorf("navigating to %s: %w", target.ScreenID, err)
	}
	r.logger.Info("navigated", "screen", target.ScreenID)
	r.publish(target)
	return nil
}

func (r *Redis) Back(ctx context.Context) (domain.NavigationTarget, error) {
	home, _ := json.Marshal(domain.Home())
	raw, err := backScript.Run(ctx, r.redisClient, []string{r.currentKey, r.historyKey}, string(home)).Text()
	if err != nil {
		return domain.NavigationTarget{}, fmt.Errorf("navigating back: %w", err)
	}

	var target domain.NavigationTarget
	if err := json.Unmarshal([]byte(raw), &target); err != nil {
		return domain.NavigationTarget{}, fmt.Errorf("decoding navigation target: %w", err)
	}
	r.logger.Info("navigated back", "screen", target.ScreenID)
	r.publish(target)
	return target, nil
}

// Current returns the active screen, home when nothing has navigated yet.
func (r *Redis) Current(ctx context.Context) (domain.NavigationTarget, error) {
	raw, err := r.redisClient.Get(ctx, r.currentKey).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Home(), nil
	}
	if err != nil {
		return domain.NavigationTarget{}, fmt.Errorf("reading current screen: %w", err)
	}

	var target domain.NavigationTarget
	if err := json.Unmarshal([]byte(raw), &target); err != nil {
		return domain.NavigationTarget{}, fmt.Errorf("decoding navigation target: %w", err)
	}
	return target, nil
}

// History returns the back stack, most recent first.
func (r *Redis) History(ctx context.Context) ([]domain.NavigationTarget, error) {
	raws, err := r.redisClient.LRange(ctx, r.historyKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading navigation history: %w", err)
	}
	out := make([]domain.NavigationTarget, 0, len(raws))
	for _, raw := range raws {
		var t domain.NavigationTarget
		if err := json.Unmarshal([]byte(raw), &t); err != nil {
			r.logger.Warn("skipping undecodable history entry", "error", err)
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *Redis) publish(target domain.NavigationTarget) {
	if r.publisher != nil {
		r.publisher.Broadcast(websocket.TypeNavigation, target)
	}
}
