package domain

// Screen identifiers used as navigation targets.
const (
	ScreenHome          = "home"
	ScreenBuiltInEvents = "built-in-events"
	ScreenCustomEvents  = "customs-events"
	ScreenDeepLinking   = "deep-linking"
	ScreenProductPage   = "product-page"
	ScreenCake          = "cake-screen"
	ScreenAddToCart     = "add-to-cart-screen"
	ScreenDynamicLink   = "dynamic-link"
	ScreenCompleteEvent = "complete-event"
	ScreenCampaignData  = "campaign-data"
)

// NavigationTarget is the screen the app should show next.
type NavigationTarget struct {
	ScreenID    string            `json:"screen_id"`
	QueryParams map[string]string `json:"query_params,omitempty"`
}

// Home is the default target used whenever nothing more specific applies.
func Home() NavigationTarget {
	return NavigationTarget{ScreenID: ScreenHome}
}

// DeepLinkRoute maps a URL pattern to a navigation target. The handler
// reports false when the extracted parameters do not satisfy the route.
type DeepLinkRoute struct {
	Pattern string
	Handler func(params map[string]string) (NavigationTarget, bool)
}
