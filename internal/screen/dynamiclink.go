package screen

import (
	"context"
	"errors"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/dynamiclink"
)

const (
	msgSDKUnavailable = "Attribution SDK not available"
	msgLinkCreated    = "Dynamic link created successfully!"
	msgLinkResolved   = "Deep link resolved successfully!"
	msgNoResolvedURL  = "No URL returned from resolver"
)

// LinkOutcome carries the created link alongside the toast.
type LinkOutcome struct {
	Outcome
	Link string `json:"link,omitempty"`
}

// ResolveOutcome carries the resolved payload alongside the toast.
type ResolveOutcome struct {
	Outcome
	Resolved domain.ResolvedLink `json:"resolved"`
}

// CreateDynamicLink submits cfg, or the demo configuration when cfg is nil.
func (s *Screens) CreateDynamicLink(ctx context.Context, cfg *domain.DynamicLinkConfig) (LinkOutcome, error) {
	c := dynamiclink.DefaultConfig()
	if cfg != nil {
		c = *cfg
	}

	link, err := s.deps.Links.Create(ctx, c)
	if err != nil {
		return LinkOutcome{Outcome: Outcome{Notification: s.linkError(ctx, "Error creating dynamic link: ", err)}}, err
	}
	return LinkOutcome{
		Outcome: Outcome{Notification: s.toast(ctx, msgLinkCreated, durationLong, domain.SeveritySuccess)},
		Link:    link,
	}, nil
}

// ResolveLink resolves rawURL, or the demo link when it is empty.
func (s *Screens) ResolveLink(ctx context.Context, rawURL string) (ResolveOutcome, error) {
	if rawURL == "" {
		rawURL = dynamiclink.DefaultResolveURL
	}

	res, err := s.deps.Links.Resolve(ctx, rawURL)
	if err != nil {
		return ResolveOutcome{Outcome: Outcome{Notification: s.linkError(ctx, "Error resolving deep link: ", err)}}, err
	}
	if res.URL == "" {
		return ResolveOutcome{
			Outcome:  Outcome{Notification: s.toast(ctx, msgNoResolvedURL, durationLong, domain.SeverityWarning)},
			Resolved: res,
		}, nil
	}
	return ResolveOutcome{
		Outcome:  Outcome{Notification: s.toast(ctx, msgLinkResolved, durationLong, domain.SeveritySuccess)},
		Resolved: res,
	}, nil
}

func (s *Screens) linkError(ctx context.Context, prefix string, err error) *domain.Notification {
	if errors.Is(err, dynamiclink.ErrFacadeUnavailable) {
		return s.toast(ctx, msgSDKUnavailable, durationLong, domain.SeverityWarning)
	}
	return s.toast(ctx, prefix+err.Error(), durationLong, domain.SeverityDanger)
}
