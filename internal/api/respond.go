package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/dynamiclink"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/event"
)

type errorResponse struct {
	Error        string               `json:"error"`
	Reason       string               `json:"reason,omitempty"`
	Field        string               `json:"field,omitempty"`
	Notification *domain.Notification `json:"notification,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondFailure maps an action error onto a status code. n is the toast
// the action showed, if any.
func respondFailure(w http.ResponseWriter, err error, n *domain.Notification) {
	resp := errorResponse{Error: err.Error(), Notification: n}
	status := http.StatusInternalServerError

	var ve *domain.ValidationError
	var sce *domain.SdkCallError
	switch {
	case errors.As(err, &ve):
		status = http.StatusUnprocessableEntity
		resp.Error = event.Message(err)
		resp.Reason = string(ve.Reason)
		resp.Field = ve.Field
	case errors.Is(err, domain.ErrNotReady), errors.Is(err, dynamiclink.ErrFacadeUnavailable):
		status = http.StatusServiceUnavailable
	case errors.As(err, &sce):
		status = http.StatusBadGateway
	}
	respondJSON(w, status, resp)
}

// decodeJSON reads an optional JSON body into v. It reports false after
// writing a 400 for a malformed body.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
