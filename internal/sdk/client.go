package sdk

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/metrics"
)

// State is the initialization state of a Client.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateInitializing  State = "initializing"
	StateReady         State = "ready"
	StateFailed        State = "failed"
)

// ErrInitInProgress is returned when Initialize is called while another
// initialization is running.
var ErrInitInProgress = errors.New("sdk initialization already in progress")

// Client wraps a Facade with an explicit lifecycle. Every call made before
// the client is Ready fails with an SdkCallError wrapping domain.ErrNotReady.
type Client struct {
	facade Facade
	cfg    Config
	logger *slog.Logger

	mu      sync.RWMutex
	state   State
	initErr error

	settled     chan struct{}
	settledOnce sync.Once
}

func NewClient(facade Facade, cfg Config, logger *slog.Logger) *Client {
	return &Client{
		facade:  facade,
		cfg:     cfg,
		logger:  logger,
		state:   StateUninitialized,
		settled: make(chan struct{}),
	}
}

// Initialize runs the facade's initialization. It may be retried after a
// failure; a Ready client returns nil immediately.
func (c *Client) Initialize(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateReady:
		c.mu.Unlock()
		return nil
	case StateInitializing:
		c.mu.Unlock()
		return ErrInitInProgress
	}
	c.state = StateInitializing
	c.mu.Unlock()

	start := time.Now()
	err := c.facade.Initialize(ctx, c.cfg)
	metrics.ObserveSDKCall("initialize", err, time.Since(start))

	c.mu.Lock()
	if err != nil {
		c.state = StateFailed
		c.initErr = err
	} else {
		c.state = StateReady
		c.initErr = nil
	}
	c.mu.Unlock()
	c.settledOnce.Do(func() { close(c.settled) })

	if err != nil {
		c.logger.Error("sdk initialization failed", "error", err, "environment", c.cfg.Environment)
		var sce *domain.SdkCallError
		if !errors.As(err, &sce) {
			err = &domain.SdkCallError{Op: "initialize", Err: err}
		}
		return err
	}
	return nil
}

func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Err returns the error from the last failed initialization.
func (c *Client) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.initErr
}

// Available reports whether calls will reach the facade.
func (c *Client) Available() bool {
	return c.State() == StateReady
}

// Settled is closed once the first initialization attempt finishes.
func (c *Client) Settled() <-chan struct{} {
	return c.settled
}

func (c *Client) call(ctx context.Context, op string, fn func(context.Context) error) error {
	if !c.Available() {
		err := &domain.SdkCallError{Op: op, Err: domain.ErrNotReady}
		metrics.ObserveSDKCall(op, err, 0)
		return err
	}

	start := time.Now()
	err := fn(ctx)
	metrics.ObserveSDKCall(op, err, time.Since(start))
	if err == nil {
		return nil
	}

	var sce *domain.SdkCallError
	if !errors.As(err, &sce) {
		err = &domain.SdkCallError{Op: op, Err: err}
	}
	c.logger.Warn("sdk call failed", "operation", op, "error", err)
	return err
}

func (c *Client) TrackEvent(ctx context.Context, ev domain.TrackableEvent) error {
	return c.call(ctx, "track_event", func(ctx context.Context) error {
		return c.facade.TrackEvent(ctx, ev)
	})
}

func (c *Client) SetUserID(ctx context.Context, v string) error {
	return c.call(ctx, "set_user_id", func(ctx context.Context) error { return c.facade.SetUserID(ctx, v) })
}

func (c *Client) SetUserName(ctx context.Context, v string) error {
	return c.call(ctx, "set_name", func(ctx context.Context) error { return c.facade.SetUserName(ctx, v) })
}

func (c *Client) SetUserPhone(ctx context.Context, v string) error {
	return c.call(ctx, "set_phone", func(ctx context.Context) error { return c.facade.SetUserPhone(ctx, v) })
}

func (c *Client) SetUserEmail(ctx context.Context, v string) error {
	return c.call(ctx, "set_email", func(ctx context.Context) error { return c.facade.SetUserEmail(ctx, v) })
}

func (c *Client) SetDOB(ctx context.Context, v string) error {
	return c.call(ctx, "set_dob", func(ctx context.Context) error { return c.facade.SetDOB(ctx, v) })
}

func (c *Client) SetGender(ctx context.Context, v string) error {
	return c.call(ctx, "set_gender", func(ctx context.Context) error { return c.facade.SetGender(ctx, v) })
}

func (c *Client) CampaignField(ctx context.Context, f domain.CampaignField) (string, error) {
	var v string
	err := c.call(ctx, "campaign_field", func(ctx context.Context) error {
		var err error
		v, err = c.facade.CampaignField(ctx, f)
		return err
	})
	return v, err
}

func (c *Client) CreateDynamicLink(ctx context.Context, cfg domain.DynamicLinkConfig) (string, error) {
	var link string
	err := c.call(ctx, "create_dynamic_link", func(ctx context.Context) error {
		var err error
		link, err = c.facade.CreateDynamicLink(ctx, cfg)
		return err
	})
	return link, err
}

func (c *Client) ResolveDeepLinkURL(ctx context.Context, rawURL string) (domain.ResolvedLink, error) {
	var out domain.ResolvedLink
	err := c.call(ctx, "resolve_deeplink", func(ctx context.Context) error {
		var err error
		out, err = c.facade.ResolveDeepLinkURL(ctx, rawURL)
		return err
	})
	return out, err
}

// ParseDeepLink passes parse failures through unwrapped so callers can tell
// a bad URL from an unavailable SDK.
func (c *Client) ParseDeepLink(ctx context.Context, rawURL string) (map[string]string, error) {
	if !c.Available() {
		return nil, &domain.SdkCallError{Op: "parse_deeplink", Err: domain.ErrNotReady}
	}
	return c.facade.ParseDeepLink(ctx, rawURL)
}

func (c *Client) DeferredDeepLinks() <-chan string {
	return c.facade.DeferredDeepLinks()
}
