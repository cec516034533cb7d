// Package notify shows transient, non-blocking banners to the user.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/metrics"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/websocket"
)

// Notifier displays a banner and returns what was shown. Implementations
// must not block on the receiver.
type Notifier interface {
	Notify(ctx context.Context, message string, durationMs int, pos domain.Position, sev domain.Severity) domain.Notification
}

func newNotification(message string, durationMs int, pos domain.Position, sev domain.Severity) domain.Notification {
	metrics.IncNotification(string(sev))
	return domain.Notification{
		ID:         uuid.NewString(),
		Message:    message,
		DurationMs: durationMs,
		Position:   pos,
		Severity:   sev,
		CreatedAt:  time.Now().UTC(),
	}
}

// Broadcaster is satisfied by *websocket.Hub.
type Broadcaster interface {
	Broadcast(msgType string, payload any)
}

// Hub pushes notifications to websocket clients.
type Hub struct {
	hub    Broadcaster
	logger *slog.Logger
}

func NewHub(hub Broadcaster, logger *slog.Logger) *Hub {
	return &Hub{hub: hub, logger: logger}
}

func (h *Hub) Notify(_ context.Context, message string, durationMs int, pos domain.Position, sev domain.Severity) domain.Notification {
	n := newNotification(message, durationMs, pos, sev)
	h.hub.Broadcast(websocket.TypeToast, n)
	h.logger.Debug("toast", "message", message, "severity", sev)
	return n
}

// Log writes notifications through slog. Used where no screen is attached.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Notify(ctx context.Context, message string, durationMs int, pos domain.Position, sev domain.Severity) domain.Notification {
	n := newNotification(message, durationMs, pos, sev)
	level := slog.LevelInfo
	switch sev {
	case domain.SeverityDanger:
		level = slog.LevelError
	case domain.SeverityWarning:
		level = slog.LevelWarn
	}
	l.logger.Log(ctx, level, message, "toast_id", n.ID, "severity", sev, "duration_ms", durationMs)
	return n
}

// Recorder keeps every notification in memory.
type Recorder struct {
	mu   sync.Mutex
	sent []domain.Notification
}

func (r *Recorder) Notify(_ context.Context, message string, durationMs int, pos domain.Position, sev domain.Severity) domain.Notification {
	n := newNotification(message, durationMs, pos, sev)
	r.mu.Lock()
	r.sent = append(r.sent, n)
	r.mu.Unlock()
	return n
}

// Sent returns a copy of the notifications shown so far.
func (r *Recorder) Sent() []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Notification(nil), r.sent...)
}

// Last returns the most recent notification, if any.
func (r *Recorder) Last() (domain.Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sent) == 0 {
		return domain.Notification{}, false
	}
	return r.sent[len(r.sent)-1], true
}
