package screen

import (
	"context"
	"errors"
	"fmt"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
)

// MenuItem is one button on the home screen.
type MenuItem struct {
	Label    string `json:"label"`
	ScreenID string `json:"screen_id"`
}

var menu = []MenuItem{
	{"Built-in events", domain.ScreenBuiltInEvents},
	{"Customs Events", domain.ScreenCustomEvents},
	{"Deep linking Page", domain.ScreenDeepLinking},
	{"Product Page", domain.ScreenProductPage},
	{"Dynamic Links", domain.ScreenDynamicLink},
	{"Complete Event", domain.ScreenCompleteEvent},
	{"Campaign Data", domain.ScreenCampaignData},
}

// ErrUnknownMenuItem is returned for a label that is not on the home screen.
var ErrUnknownMenuItem = errors.New("unknown menu item")

// Menu returns the home screen buttons in display order.
func Menu() []MenuItem {
	out := make([]MenuItem, len(menu))
	copy(out, menu)
	return out
}

// Select navigates to the screen behind a menu label.
func (s *Screens) Select(ctx context.Context, label string) (domain.NavigationTarget, error) {
	for _, m := range menu {
		if m.Label == label {
			target := domain.NavigationTarget{ScreenID: m.ScreenID}
			return target, s.deps.Navigator.Navigate(ctx, target)
		}
	}
	return domain.NavigationTarget{}, fmt.Errorf("%w: %q", ErrUnknownMenuItem, label)
}
