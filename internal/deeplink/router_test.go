package deeplink

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
)

func TestRouter_Resolve(t *testing.T) {
	r := NewRouter(DefaultRoutes()...)

	tests := []struct {
		name   string
		url    string
		state  State
		screen string
		params map[string]string
	}{
		{
			name:   "query route",
			url:    "scheme://open?product_id=42&quantity=3",
			state:  StateMatched,
			screen: domain.ScreenCake,
			params: map[string]string{"productId": "42", "quantity": "3"},
		},
		{
			name:   "zero quantity",
			url:    "scheme://open?quantity=0",
			state:  StateUnmatched,
			screen: domain.ScreenHome,
		},
		{
			name:   "missing product",
			url:    "https://example.com/open?quantity=2",
			state:  StateUnmatched,
			screen: domain.ScreenHome,
		},
		{
			name:   "non numeric quantity",
			url:    "scheme://open?product_id=1&quantity=lots",
			state:  StateUnmatched,
			screen: domain.ScreenHome,
		},
		{
			name:   "fractional quantity keeps integer part",
			url:    "scheme://open?product_id=42&quantity=3.5",
			state:  StateMatched,
			screen: domain.ScreenCake,
			params: map[string]string{"productId": "42", "quantity": "3"},
		},
		{
			name:   "trailing garbage after quantity",
			url:    "scheme://open?product_id=42&quantity=3abc",
			state:  StateMatched,
			screen: domain.ScreenCake,
			params: map[string]string{"productId": "42", "quantity": "3"},
		},
		{
			name:   "leading space before quantity",
			url:    "scheme://open?product_id=42&quantity=%203",
			state:  StateMatched,
			screen: domain.ScreenCake,
			params: map[string]string{"productId": "42", "quantity": "3"},
		},
		{
			name:   "negative quantity",
			url:    "scheme://open?product_id=42&quantity=-2",
			state:  StateUnmatched,
			screen: domain.ScreenHome,
		},
		{
			name:   "path route on custom scheme",
			url:    "myapp://cake/7/2?actionData=promo&dlv=summer",
			state:  StateMatched,
			screen: domain.ScreenCake,
			params: map[string]string{"productId": "7", "quantity": "2", "actionData": "promo", "dlv": "summer"},
		},
		{
			name:   "path route on https",
			url:    "https://trackier58.u9ilnk.me/cake/9/1",
			state:  StateMatched,
			screen: domain.ScreenCake,
			params: map[string]string{"productId": "9", "quantity": "1"},
		},
		{
			name:   "path route with zero quantity",
			url:    "myapp://cake/7/0",
			state:  StateUnmatched,
			screen: domain.ScreenHome,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Resolve(tt.url)

			if res.State != tt.state {
				t.Errorf("State = %s, want %s", res.State, tt.state)
			}
			if res.Target.ScreenID != tt.screen {
				t.Errorf("ScreenID = %q, want %q", res.Target.ScreenID, tt.screen)
			}
			if tt.params != nil && !reflect.DeepEqual(res.Target.QueryParams, tt.params) {
				t.Errorf("QueryParams = %v, want %v", res.Target.QueryParams, tt.params)
			}
			if tt.params == nil && len(res.Target.QueryParams) != 0 {
				t.Errorf("home target carries params %v", res.Target.QueryParams)
			}
		})
	}
}

func TestRouter_MalformedURLsGoHome(t *testing.T) {
	r := NewRouter(DefaultRoutes()...)

	for _, raw := range []string{
		"",
		"   ",
		"no scheme at all",
		"://missing",
		"http://[::1",
		"%zz",
		"mailto:someone@example.com",
	} {
		res := r.Resolve(raw)

		if res.State != StateUnmatched {
			t.Errorf("Resolve(%q).State = %s, want unmatched", raw, res.State)
		}
		if res.Target.ScreenID != domain.ScreenHome {
			t.Errorf("Resolve(%q) screen = %q, want home", raw, res.Target.ScreenID)
		}
		var pe *domain.ParseError
		if !errors.As(res.Err, &pe) {
			t.Errorf("Resolve(%q).Err = %v, want *ParseError", raw, res.Err)
		}
	}
}

func TestRouter_FirstPatternMatchDecides(t *testing.T) {
	accept := func(screen string) func(map[string]string) (domain.NavigationTarget, bool) {
		return func(map[string]string) (domain.NavigationTarget, bool) {
			return domain.NavigationTarget{ScreenID: screen}, true
		}
	}
	reject := func(map[string]string) (domain.NavigationTarget, bool) {
		return domain.NavigationTarget{}, false
	}

	r := NewRouter(
		domain.DeepLinkRoute{Pattern: "/a/:id", Handler: reject},
		domain.DeepLinkRoute{Pattern: "/a/:id", Handler: accept("second")},
		domain.DeepLinkRoute{Pattern: CatchAll, Handler: accept("fallback")},
	)

	res := r.Resolve("app://a/1")
	if res.State != StateUnmatched || res.Route != "/a/:id" {
		t.Errorf("got state %s via %q, want unmatched via /a/:id", res.State, res.Route)
	}

	res = r.Resolve("app://b/1")
	if res.State != StateMatched || res.Target.ScreenID != "fallback" {
		t.Errorf("got %s %q, want matched fallback", res.State, res.Target.ScreenID)
	}
}

func TestRouter_NoRoutes(t *testing.T) {
	res := NewRouter().Resolve("app://open?product_id=1&quantity=1")
	if res.State != StateUnmatched || res.Target.ScreenID != domain.ScreenHome {
		t.Errorf("got %+v", res)
	}
}

func TestQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"3", 3},
		{"03", 3},
		{"3.5", 3},
		{"3abc", 3},
		{" \t3", 3},
		{"+4", 4},
		{"-2", -2},
		{"", 0},
		{"abc", 0},
		{"-", 0},
		{".5", 0},
	}

	for _, tt := range tests {
		if got := quantity(tt.in); got != tt.want {
			t.Errorf("quantity(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
