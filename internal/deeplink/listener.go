package deeplink

import (
	"context"
	"log/slog"
)

// Listener feeds deferred deep links into a Dispatcher for the lifetime of
// the process.
type Listener struct {
	links      <-chan string
	dispatcher *Dispatcher
	logger     *slog.Logger
}

func NewListener(links <-chan string, dispatcher *Dispatcher, logger *slog.Logger) *Listener {
	return &Listener{links: links, dispatcher: dispatcher, logger: logger}
}

// Run blocks until ctx is cancelled or the link stream is closed.
func (l *Listener) Run(ctx context.Context) {
	l.logger.Info("deferred deep link listener started")

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("deferred deep link listener stopping")
			return
		case link, ok := <-l.links:
			if !ok {
				l.logger.Info("deferred deep link stream closed")
				return
			}
			l.dispatcher.Dispatch(ctx, link, SourceDeferred)
		}
	}
}
