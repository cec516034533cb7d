// Package dynamiclink creates shareable links and resolves them back into
// attribution payloads.
package dynamiclink

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
)

// ErrFacadeUnavailable is returned when the SDK has not finished initializing.
var ErrFacadeUnavailable = errors.New("attribution sdk not available")

// DefaultResolveURL is the link the demo screen resolves.
const DefaultResolveURL = "https://trackier58.u9ilnk.me/d/8X7iwyXsyA"

// Facade is the part of the SDK client used here.
type Facade interface {
	Available() bool
	CreateDynamicLink(ctx context.Context, cfg domain.DynamicLinkConfig) (string, error)
	ResolveDeepLinkURL(ctx context.Context, rawURL string) (domain.ResolvedLink, error)
}

type Service struct {
	facade Facade
	logger *slog.Logger
}

func NewService(facade Facade, logger *slog.Logger) *Service {
	return &Service{facade: facade, logger: logger}
}

// Create submits cfg and returns the generated link.
func (s *Service) Create(ctx context.Context, cfg domain.DynamicLinkConfig) (string, error) {
	if !s.facade.Available() {
		return "", ErrFacadeUnavailable
	}
	link, err := s.facade.CreateDynamicLink(ctx, cfg)
	if err != nil {
		s.logger.Warn("dynamic link creation failed", "template_id", cfg.TemplateID, "error", err)
		return "", err
	}
	s.logger.Info("dynamic link created", "template_id", cfg.TemplateID, "link", link)
	return link, nil
}

// Resolve returns the attribution payload behind rawURL. A payload without a
// URL is not an error.
func (s *Service) Resolve(ctx context.Context, rawURL string) (domain.ResolvedLink, error) {
	if !s.facade.Available() {
		return domain.ResolvedLink{}, ErrFacadeUnavailable
	}
	res, err := s.facade.ResolveDeepLinkURL(ctx, rawURL)
	if err != nil {
		s.logger.Warn("deep link resolution failed", "url", rawURL, "error", err)
		return domain.ResolvedLink{}, err
	}
	s.logger.Info("deep link resolved", "url", rawURL, "resolved_url", res.URL)
	return res, nil
}

// DefaultConfig is the configuration the demo screen submits.
func DefaultConfig() domain.DynamicLinkConfig {
	return domain.DynamicLinkConfig{
		TemplateID:      "M5Osa2",
		Link:            "https://testdeeplink",
		DomainURIPrefix: "https://trackier59.u9ilnk.me",
		DeepLinkValue:   "MyMainactivity",
		AndroidParameters: &domain.RedirectParameters{
			RedirectLink: "https://play.google.com/store/apps/details?id=com.yourapp",
		},
		IOSParameters: &domain.RedirectParameters{
			RedirectLink: "https://apps.apple.com/app/yourapp/id123456789",
		},
		DesktopParameters: &domain.RedirectParameters{
			RedirectLink: "https://yourapp.com",
		},
		SDKParameters: map[string]string{
			"utm_source":   "demo",
			"utm_medium":   "app",
			"utm_campaign": "dynamic_link_test",
		},
		SocialMetaTagParameters: &domain.SocialMetaTagParameters{
			Title:       "Check out this amazing app!",
			Description: "Download our app and get amazing features",
			ImageLink:   "https://yourapp.com/app-icon.png",
		},
		AttributionParameters: &domain.AttributionParameters{
			Channel:     "social",
			Campaign:    "summer_sale",
			MediaSource: "facebook",
			P1:          "param1_value",
			P2:          "param2_value",
			P3:          "param3_value",
			P4:          "param4_value",
			P5:          "param5_value",
		},
	}
}
