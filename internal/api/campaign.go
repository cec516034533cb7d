package api

import (
	"net/http"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/screen"
)

type CampaignHandler struct {
	screens *screen.Screens
}

func NewCampaignHandler(s *screen.Screens) *CampaignHandler {
	return &CampaignHandler{screens: s}
}

// Get always answers 200; fields that could not be read are empty and
// listed in failedFields.
func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.screens.CampaignData(r.Context()))
}

func (h *CampaignHandler) TestEvent(w http.ResponseWriter, r *http.Request) {
	out, err := h.screens.CampaignTestEvent(r.Context())
	if err != nil {
		respondFailure(w, err, out.Notification)
		return
	}
	respondJSON(w, http.StatusAccepted, out)
}
