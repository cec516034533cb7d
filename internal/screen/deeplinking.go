package screen

import (
	"context"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/deeplink"
)

// OpenDeepLink handles a URL the app was opened with.
func (s *Screens) OpenDeepLink(ctx context.Context, rawURL string) (deeplink.Result, error) {
	return s.deps.Dispatcher.Dispatch(ctx, rawURL, deeplink.SourceAppOpen)
}

// ParseDeepLink asks the SDK to split a URL without navigating.
func (s *Screens) ParseDeepLink(ctx context.Context, rawURL string) (map[string]string, deeplink.Result, error) {
	res := s.deps.Dispatcher.Resolve(rawURL)
	parsed, err := s.deps.Parser.ParseDeepLink(ctx, rawURL)
	return parsed, res, err
}
