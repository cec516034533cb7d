package domain

// RedirectParameters holds a platform-specific redirect target.
type RedirectParameters struct {
	RedirectLink string `json:"redirectLink,omitempty"`
}

type SocialMetaTagParameters struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	ImageLink   string `json:"imageLink,omitempty"`
}

type AttributionParameters struct {
	Channel     string `json:"channel,omitempty"`
	Campaign    string `json:"campaign,omitempty"`
	MediaSource string `json:"mediaSource,omitempty"`
	P1          string `json:"p1,omitempty"`
	P2          string `json:"p2,omitempty"`
	P3          string `json:"p3,omitempty"`
	P4          string `json:"p4,omitempty"`
	P5          string `json:"p5,omitempty"`
}

// DynamicLinkConfig is submitted to the SDK to generate a shareable link.
type DynamicLinkConfig struct {
	TemplateID              string                   `json:"templateId"`
	Link                    string                   `json:"link"`
	DomainURIPrefix         string                   `json:"domainUriPrefix"`
	DeepLinkValue           string                   `json:"deepLinkValue,omitempty"`
	AndroidParameters       *RedirectParameters      `json:"androidParameters,omitempty"`
	IOSParameters           *RedirectParameters      `json:"iosParameters,omitempty"`
	DesktopParameters       *RedirectParameters      `json:"desktopParameters,omitempty"`
	SDKParameters           map[string]string        `json:"sdkParameters,omitempty"`
	SocialMetaTagParameters *SocialMetaTagParameters `json:"socialMetaTagParameters,omitempty"`
	AttributionParameters   *AttributionParameters   `json:"attributionParameters,omitempty"`
}

// ResolvedLink is the attribution payload returned for a resolved URL. URL
// may be empty when the resolver had nothing to return.
type ResolvedLink struct {
	URL    string         `json:"url"`
	Fields map[string]any `json:"fields,omitempty"`
}
