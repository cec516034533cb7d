package api

import (
	"context"
	"net/http"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/engine"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/sdk"
)

// SDKStatus is satisfied by *sdk.Client.
type SDKStatus interface {
	State() sdk.State
	Err() error
}

// BreakerStatus is satisfied by *engine.CircuitBreaker.
type BreakerStatus interface {
	State(ctx context.Context, scope string) engine.BreakerState
}

type SDKHandler struct {
	status  SDKStatus
	breaker BreakerStatus
	scope   string
}

func NewSDKHandler(status SDKStatus, breaker BreakerStatus, scope string) *SDKHandler {
	return &SDKHandler{status: status, breaker: breaker, scope: scope}
}

type sdkStatusResponse struct {
	State   sdk.State            `json:"state"`
	Error   string               `json:"error,omitempty"`
	Breaker *engine.BreakerState `json:"circuit_breaker,omitempty"`
}

func (h *SDKHandler) Status(w http.ResponseWriter, r *http.Request) {
	resp := sdkStatusResponse{State: h.status.State()}
	if err := h.status.Err(); err != nil {
		resp.Error = err.Error()
	}
	if h.breaker != nil {
		st := h.breaker.State(r.Context(), h.scope)
		resp.Breaker = &st
	}
	respondJSON(w, http.StatusOK, resp)
}
