package api

import (
	"net/http"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/screen"
)

type NavigationHandler struct {
	screens *screen.Screens
}

func NewNavigationHandler(s *screen.Screens) *NavigationHandler {
	return &NavigationHandler{screens: s}
}

func (h *NavigationHandler) Menu(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, screen.Menu())
}

func (h *NavigationHandler) Current(w http.ResponseWriter, r *http.Request) {
	cur, err := h.screens.Current(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to read current screen")
		return
	}
	respondJSON(w, http.StatusOK, cur)
}

type navigateRequest struct {
	domain.NavigationTarget
	Label string `json:"label,omitempty"`
}

// Navigate moves to screen_id, or to the screen behind a home menu label.
func (h *NavigationHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Label != "" {
		target, err := h.screens.Select(r.Context(), req.Label)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, target)
		return
	}

	if req.ScreenID == "" {
		respondError(w, http.StatusBadRequest, "screen_id is required")
		return
	}
	if err := h.screens.NavigateTo(r.Context(), req.NavigationTarget); err != nil {
		respondError(w, http.StatusInternalServerError, "navigation failed")
		return
	}
	respondJSON(w, http.StatusOK, req.NavigationTarget)
}

func (h *NavigationHandler) Back(w http.ResponseWriter, r *http.Request) {
	target, err := h.screens.Back(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "navigation failed")
		return
	}
	respondJSON(w, http.StatusOK, target)
}
