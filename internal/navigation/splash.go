package navigation

import (
	"context"
	"log/slog"
	"time"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
)

// SplashGate sends the app home once SDK initialization has settled and the
// splash delay has passed, unless a deep link opened the app first.
type SplashGate struct {
	navigator Navigator
	delay     time.Duration
	opened    func() bool
	logger    *slog.Logger
}

func NewSplashGate(navigator Navigator, delay time.Duration, opened func() bool, logger *slog.Logger) *SplashGate {
	return &SplashGate{navigator: navigator, delay: delay, opened: opened, logger: logger}
}

// Run waits for settled, then the splash delay. It reports whether it
// navigated home.
func (g *SplashGate) Run(ctx context.Context, settled <-chan struct{}) bool {
	select {
	case <-ctx.Done():
		return false
	case <-settled:
	}

	if g.opened() {
		g.logger.Info("splash skipped, app opened by deep link")
		return false
	}

	timer := time.NewTimer(g.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
	}

	if g.opened() {
		g.logger.Info("splash skipped, app opened by deep link")
		return false
	}
	if err := g.navigator.Navigate(ctx, domain.Home()); err != nil {
		g.logger.Error("splash navigation failed", "error", err)
		return false
	}
	return true
}
