package api

import (
	"net/http"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/sdk"
)

type HealthResponse struct {
	Status   string    `json:"status"`
	Version  string    `json:"version"`
	SDKState sdk.State `json:"sdk_state"`
}

// HealthHandler always answers healthy and includes the SDK state.
func HealthHandler(status SDKStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{
			Status:   "healthy",
			Version:  sdk.Version,
			SDKState: status.State(),
		})
	}
}
