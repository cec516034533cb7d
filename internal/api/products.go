package api

import (
	"net/http"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/screen"
)

type ProductHandler struct {
	screens *screen.Screens
}

func NewProductHandler(s *screen.Screens) *ProductHandler {
	return &ProductHandler{screens: s}
}

func (h *ProductHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	out, err := h.screens.AddToCart(r.Context())
	if err != nil {
		respondFailure(w, err, out.Notification)
		return
	}
	respondJSON(w, http.StatusAccepted, out)
}

func (h *ProductHandler) OpenCart(w http.ResponseWriter, r *http.Request) {
	out, err := h.screens.OpenCart(r.Context())
	if err != nil {
		respondFailure(w, err, out.Notification)
		return
	}
	respondJSON(w, http.StatusAccepted, out)
}

func (h *ProductHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	out, err := h.screens.Purchase(r.Context())
	if err != nil {
		respondFailure(w, err, out.Notification)
		return
	}
	respondJSON(w, http.StatusAccepted, out)
}

func (h *ProductHandler) Cake(w http.ResponseWriter, r *http.Request) {
	view, ok, err := h.screens.Cake(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to read current screen")
		return
	}
	if !ok {
		respondError(w, http.StatusNotFound, "cake screen is not active")
		return
	}
	respondJSON(w, http.StatusOK, view)
}
