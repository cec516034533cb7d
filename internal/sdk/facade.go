// Package sdk models the third-party attribution SDK the demo exercises.
//
// The SDK itself is opaque: callers talk to it through Facade. Client adds
// an explicit initialization lifecycle on top of any Facade, and HTTPFacade
// is the implementation that talks to an attribution backend over HTTP.
package sdk

import (
	"context"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
)

// Environment selects which attribution environment events are sent to.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
	EnvTesting     Environment = "testing"
)

// Config is handed to Initialize.
type Config struct {
	AppKey      string
	Secret      string
	Environment Environment
}

// Facade is the method surface of the attribution SDK.
type Facade interface {
	Initialize(ctx context.Context, cfg Config) error
	TrackEvent(ctx context.Context, ev domain.TrackableEvent) error

	SetUserID(ctx context.Context, v string) error
	SetUserName(ctx context.Context, v string) error
	SetUserPhone(ctx context.Context, v string) error
	SetUserEmail(ctx context.Context, v string) error
	SetDOB(ctx context.Context, v string) error
	SetGender(ctx context.Context, v string) error

	// CampaignField returns one attribution value; each field is a separate call.
	CampaignField(ctx context.Context, f domain.CampaignField) (string, error)

	CreateDynamicLink(ctx context.Context, cfg domain.DynamicLinkConfig) (string, error)
	ResolveDeepLinkURL(ctx context.Context, rawURL string) (domain.ResolvedLink, error)
	ParseDeepLink(ctx context.Context, rawURL string) (map[string]string, error)

	// DeferredDeepLinks emits deferred deep links for the lifetime of the process.
	DeferredDeepLinks() <-chan string
}
