// Package deeplink turns incoming URLs into navigation targets.
package deeplink

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
)

// State is where a single URL ended up in the dispatch state machine.
type State string

const (
	StateIdle         State = "idle"
	StateLinkReceived State = "link_received"
	StateMatched      State = "matched"
	StateUnmatched    State = "unmatched"
)

// CatchAll is a route pattern that matches every well-formed URL. Its
// handler sees only the query values.
const CatchAll = "*"

// Result is the outcome of resolving one URL.
type Result struct {
	URL    string                  `json:"url"`
	State  State                   `json:"state"`
	Route  string                  `json:"route,omitempty"`
	Target domain.NavigationTarget `json:"target"`
	Err    error                   `json:"-"`
}

// Router holds the route table. It is built once and never modified.
type Router struct {
	routes []domain.DeepLinkRoute
}

func NewRouter(routes ...domain.DeepLinkRoute) *Router {
	r := &Router{routes: make([]domain.DeepLinkRoute, len(routes))}
	copy(r.routes, routes)
	return r
}

// DefaultRoutes is the route table of the demo app.
func DefaultRoutes() []domain.DeepLinkRoute {
	return []domain.DeepLinkRoute{
		{Pattern: "/cake/:productId/:quantity", Handler: cakePathHandler},
		{Pattern: CatchAll, Handler: productQueryHandler},
	}
}

// Resolve runs the state machine for rawURL. The first route whose pattern
// matches decides the outcome; anything else, including a malformed URL,
// resolves to home.
func (r *Router) Resolve(rawURL string) Result {
	res := Result{URL: rawURL, State: StateLinkReceived}

	u, err := parse(rawURL)
	if err != nil {
		res.State = StateUnmatched
		res.Target = domain.Home()
		res.Err = err
		return res
	}

	segments := segmentsOf(u)
	query := u.Query()

	for _, route := range r.routes {
		params, ok := match(route.Pattern, segments)
		if !ok {
			continue
		}
		for k, v := range query {
			if _, taken := params[k]; !taken && len(v) > 0 {
				params[k] = v[0]
			}
		}

		res.Route = route.Pattern
		if target, ok := route.Handler(params); ok {
			res.State = StateMatched
			res.Target = target
			return res
		}
		break
	}

	res.State = StateUnmatched
	res.Target = domain.Home()
	return res
}

func parse(rawURL string) (*url.URL, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, &domain.ParseError{URL: rawURL, Err: errors.New("empty url")}
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &domain.ParseError{URL: rawURL, Err: err}
	}
	if u.Scheme == "" {
		return nil, &domain.ParseError{URL: rawURL, Err: errors.New("missing scheme")}
	}
	if u.Opaque != "" {
		return nil, &domain.ParseError{URL: rawURL, Err: errors.New("opaque url")}
	}
	return u, nil
}

// segmentsOf returns the path segments of u. Custom schemes carry the first
// segment in the host position (myapp://cake/1/2).
func segmentsOf(u *url.URL) []string {
	var segs []string
	if u.Scheme != "http" && u.Scheme != "https" && u.Host != "" {
		segs = append(segs, u.Host)
	}
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// match compares a pattern such as /cake/:productId/:quantity with the URL
// segments and returns the captured parameters.
func match(pattern string, segments []string) (map[string]string, bool) {
	params := make(map[string]string)
	if pattern == CatchAll {
		return params, true
	}

	parts := strings.Split(strings.Trim(pattern, "/"), "/")
	if len(parts) != len(segments) {
		return nil, false
	}
	for i, p := range parts {
		if strings.HasPrefix(p, ":") {
			params[p[1:]] = segments[i]
			continue
		}
		if p != segments[i] {
			return nil, false
		}
	}
	return params, true
}

// quantity reads the leading integer of s, after optional whitespace and
// sign, and ignores the rest: "3.5" and "3abc" are 3. No digits means 0.
// Values too large for an int are clamped.
func quantity(s string) int {
	s = strings.TrimLeft(s, " \t\n\r\f\v")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, _ := strconv.ParseInt(s[:end], 10, 64)
	return int(n)
}

func cakePathHandler(params map[string]string) (domain.NavigationTarget, bool) {
	productID := params["productId"]
	qty := quantity(params["quantity"])
	if productID == "" || qty <= 0 {
		return domain.NavigationTarget{}, false
	}

	q := map[string]string{
		"productId": productID,
		"quantity":  strconv.Itoa(qty),
	}
	if v := params["actionData"]; v != "" {
		q["actionData"] = v
	}
	if v := params["dlv"]; v != "" {
		q["dlv"] = v
	}
	return domain.NavigationTarget{ScreenID: domain.ScreenCake, QueryParams: q}, true
}

func productQueryHandler(params map[string]string) (domain.NavigationTarget, bool) {
	productID := params["product_id"]
	qty := quantity(params["quantity"])
	if productID == "" || qty <= 0 {
		return domain.NavigationTarget{}, false
	}
	return domain.NavigationTarget{
		ScreenID: domain.ScreenCake,
		QueryParams: map[string]string{
			"productId": productID,
			"quantity":  strconv.Itoa(qty),
		},
	}, true
}
