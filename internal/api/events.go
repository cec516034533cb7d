package api

import (
	"net/http"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/event"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/screen"
)

type EventHandler struct {
	screens *screen.Screens
}

func NewEventHandler(s *screen.Screens) *EventHandler {
	return &EventHandler{screens: s}
}

type catalogResponse struct {
	Events     []event.BuiltinEvent `json:"events"`
	Currencies []string             `json:"currencies"`
	MaxParams  int                  `json:"max_params"`
}

func (h *EventHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, catalogResponse{
		Events:     event.Catalog(),
		Currencies: event.Currencies(),
		MaxParams:  domain.MaxParams,
	})
}

func (h *EventHandler) Builtin(w http.ResponseWriter, r *http.Request) {
	var form event.Form
	if !decodeJSON(w, r, &form) {
		return
	}
	out, err := h.screens.SubmitBuiltin(r.Context(), form)
	if err != nil {
		respondFailure(w, err, out.Notification)
		return
	}
	respondJSON(w, http.StatusAccepted, out)
}

func (h *EventHandler) Custom(w http.ResponseWriter, r *http.Request) {
	var form event.Form
	if !decodeJSON(w, r, &form) {
		return
	}
	out, err := h.screens.SubmitCustom(r.Context(), form)
	if err != nil {
		respondFailure(w, err, out.Notification)
		return
	}
	respondJSON(w, http.StatusAccepted, out)
}

type completeRequest struct {
	event.Form
	User *domain.UserProfile `json:"user,omitempty"`
}

type completeDefaultsResponse struct {
	event.Form
	User domain.UserProfile `json:"user"`
}

// CompleteDefaults returns the prefilled complete event; the reset button
// fetches it again.
func (h *EventHandler) CompleteDefaults(w http.ResponseWriter, r *http.Request) {
	form, profile := event.CompleteDefaults()
	respondJSON(w, http.StatusOK, completeDefaultsResponse{Form: form, User: profile})
}

// Complete tracks the posted event. Fields missing from the body keep their
// defaults; a posted values object replaces the default values.
func (h *EventHandler) Complete(w http.ResponseWriter, r *http.Request) {
	form, profile := event.CompleteDefaults()
	req := completeRequest{Form: form}
	req.Values = nil
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Values == nil {
		req.Values = form.Values
	}
	if req.User != nil {
		profile = *req.User
	}

	out, err := h.screens.SubmitComplete(r.Context(), req.Form, profile)
	if err != nil {
		respondFailure(w, err, out.Notification)
		return
	}
	respondJSON(w, http.StatusAccepted, out)
}

type addParamRequest struct {
	Params []domain.Param `json:"params"`
}

type addParamResponse struct {
	Params []domain.Param `json:"params"`
	screen.Outcome
}

// AddParam appends a labelled empty parameter, or shows the cap toast.
func (h *EventHandler) AddParam(w http.ResponseWriter, r *http.Request) {
	var req addParamRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	params, out := h.screens.AddParam(r.Context(), req.Params)
	respondJSON(w, http.StatusOK, addParamResponse{Params: params, Outcome: out})
}
