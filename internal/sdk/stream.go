package sdk

import (
	"log/slog"
	"sync"
)

// DeepLinkStream is the single-producer stream of deferred deep links.
// Each distinct link is delivered at most once: repeats are dropped, and a
// full buffer drops the link instead of blocking the producer.
type DeepLinkStream struct {
	ch     chan string
	mu     sync.Mutex
	seen   map[string]struct{}
	closed bool
	logger *slog.Logger
}

func NewDeepLinkStream(buffer int, logger *slog.Logger) *DeepLinkStream {
	if buffer <= 0 {
		buffer = 16
	}
	return &DeepLinkStream{
		ch:     make(chan string, buffer),
		seen:   make(map[string]struct{}),
		logger: logger,
	}
}

// Publish hands link to the listener. It reports whether the link was accepted.
func (s *DeepLinkStream) Publish(link string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || link == "" {
		return false
	}
	if _, dup := s.seen[link]; dup {
		s.logger.Debug("deferred deep link already delivered", "url", link)
		return false
	}

	select {
	case s.ch <- link:
		s.seen[link] = struct{}{}
		return true
	default:
		s.logger.Warn("deferred deep link stream full, dropping link", "url", link)
		return false
	}
}

// Links returns the receive side of the stream.
func (s *DeepLinkStream) Links() <-chan string {
	return s.ch
}

// Close ends the stream. Later publishes are ignored.
func (s *DeepLinkStream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}
