// Package screen holds the per-screen glue of the demo app: each action
// builds a value, calls the SDK, shows a toast and may navigate.
package screen

import (
	"context"
	"log/slog"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/campaign"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/deeplink"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/dynamiclink"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/event"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/navigation"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/notify"
)

// Toast durations in milliseconds.
const (
	durationShort = 1000
	durationBase  = 2000
	durationLong  = 3000
)

// Parser splits a deep link through the SDK.
type Parser interface {
	ParseDeepLink(ctx context.Context, rawURL string) (map[string]string, error)
}

// Deps are the collaborators shared by every screen.
type Deps struct {
	Submitter  *event.Submitter
	Campaign   *campaign.Retriever
	Links      *dynamiclink.Service
	Dispatcher *deeplink.Dispatcher
	Parser     Parser
	Navigator  navigation.Navigator
	Notifier   notify.Notifier
	Logger     *slog.Logger
}

// Screens exposes every screen action.
type Screens struct {
	deps Deps
}

func New(deps Deps) *Screens {
	return &Screens{deps: deps}
}

// Outcome is what an action showed the user. Notification is nil for
// actions that stay silent.
type Outcome struct {
	Notification *domain.Notification    `json:"notification,omitempty"`
	Navigated    *domain.NavigationTarget `json:"navigated,omitempty"`
}

func (s *Screens) toast(ctx context.Context, msg string, durationMs int, sev domain.Severity) *domain.Notification {
	n := s.deps.Notifier.Notify(ctx, msg, durationMs, domain.PositionBottom, sev)
	return &n
}

func (s *Screens) navigate(ctx context.Context, target domain.NavigationTarget) *domain.NavigationTarget {
	if err := s.deps.Navigator.Navigate(ctx, target); err != nil {
		s.deps.Logger.Error("navigation failed", "error", err, "screen", target.ScreenID)
		return nil
	}
	return &target
}

// Back pops to the previous screen.
func (s *Screens) Back(ctx context.Context) (domain.NavigationTarget, error) {
	return s.deps.Navigator.Back(ctx)
}

// Current returns the active screen.
func (s *Screens) Current(ctx context.Context) (domain.NavigationTarget, error) {
	return s.deps.Navigator.Current(ctx)
}

// NavigateTo moves to an arbitrary screen.
func (s *Screens) NavigateTo(ctx context.Context, target domain.NavigationTarget) error {
	return s.deps.Navigator.Navigate(ctx, target)
}
