package api

import (
	"net/http"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/deeplink"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/screen"
)

type LinkHandler struct {
	screens *screen.Screens
}

func NewLinkHandler(s *screen.Screens) *LinkHandler {
	return &LinkHandler{screens: s}
}

// CreateDynamicLink accepts an optional configuration body; without one the
// demo configuration is used.
func (h *LinkHandler) CreateDynamicLink(w http.ResponseWriter, r *http.Request) {
	var cfg *domain.DynamicLinkConfig
	if !decodeJSON(w, r, &cfg) {
		return
	}
	out, err := h.screens.CreateDynamicLink(r.Context(), cfg)
	if err != nil {
		respondFailure(w, err, out.Notification)
		return
	}
	respondJSON(w, http.StatusCreated, out)
}

type urlRequest struct {
	URL string `json:"url"`
}

func (h *LinkHandler) ResolveDynamicLink(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	out, err := h.screens.ResolveLink(r.Context(), req.URL)
	if err != nil {
		respondFailure(w, err, out.Notification)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

type dispatchResponse struct {
	deeplink.Result
	Error string `json:"error,omitempty"`
}

func newDispatchResponse(res deeplink.Result) dispatchResponse {
	out := dispatchResponse{Result: res}
	if res.Err != nil {
		out.Error = res.Err.Error()
	}
	return out
}

// OpenDeepLink handles an app-open URL. Malformed and unmatched URLs still
// answer 200 with the home target.
func (h *LinkHandler) OpenDeepLink(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.screens.OpenDeepLink(r.Context(), req.URL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "navigation failed")
		return
	}
	respondJSON(w, http.StatusOK, newDispatchResponse(res))
}

type parseResponse struct {
	Parsed   map[string]string `json:"parsed,omitempty"`
	Dispatch dispatchResponse  `json:"dispatch"`
}

func (h *LinkHandler) ParseDeepLink(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	parsed, res, err := h.screens.ParseDeepLink(r.Context(), req.URL)
	if err != nil && res.Err == nil {
		respondFailure(w, err, nil)
		return
	}
	respondJSON(w, http.StatusOK, parseResponse{Parsed: parsed, Dispatch: newDispatchResponse(res)})
}
