package deeplink

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/metrics"
)

// Sources a URL can arrive from.
const (
	SourceAppOpen  = "app_open"
	SourceDeferred = "deferred"
	SourceResolve  = "resolve"
)

// Navigator performs screen transitions. Concurrent calls race and the
// last write wins.
type Navigator interface {
	Navigate(ctx context.Context, target domain.NavigationTarget) error
}

// Dispatcher resolves URLs and navigates to the result. Each URL is handled
// on its own; there is no backlog.
type Dispatcher struct {
	router    *Router
	navigator Navigator
	logger    *slog.Logger

	mu     sync.Mutex
	last   State
	opened bool
}

func NewDispatcher(router *Router, navigator Navigator, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		router:    router,
		navigator: navigator,
		logger:    logger,
		last:      StateIdle,
	}
}

// Dispatch resolves rawURL and navigates to its target. The returned error
// is only set when navigation itself failed.
func (d *Dispatcher) Dispatch(ctx context.Context, rawURL, source string) (Result, error) {
	res := d.router.Resolve(rawURL)

	d.mu.Lock()
	d.last = res.State
	if source == SourceAppOpen || source == SourceDeferred {
		d.opened = true
	}
	d.mu.Unlock()

	metrics.IncDeepLinkDispatch(source, string(res.State))

	if res.Err != nil {
		d.logger.Warn("malformed deep link", "url", rawURL, "source", source, "error", res.Err)
	} else {
		d.logger.Info("deep link dispatched",
			"url", rawURL,
			"source", source,
			"state", res.State,
			"screen", res.Target.ScreenID,
		)
	}

	if err := d.navigator.Navigate(ctx, res.Target); err != nil {
		d.logger.Error("deep link navigation failed", "error", err, "screen", res.Target.ScreenID)
		return res, err
	}
	return res, nil
}

// Resolve runs the router without navigating.
func (d *Dispatcher) Resolve(rawURL string) Result {
	return d.router.Resolve(rawURL)
}

// LastState is the state of the most recent dispatch, Idle before the first.
func (d *Dispatcher) LastState() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

// Opened reports whether the app has been opened through a deep link.
func (d *Dispatcher) Opened() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opened
}
