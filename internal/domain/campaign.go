package domain

import "time"

// CampaignField names one attribution value the SDK exposes through its own getter.
type CampaignField string

const (
	FieldTrackierID    CampaignField = "trackierId"
	FieldAd            CampaignField = "ad"
	FieldAdID          CampaignField = "adId"
	FieldCampaign      CampaignField = "campaign"
	FieldCampaignID    CampaignField = "campaignId"
	FieldAdSet         CampaignField = "adSet"
	FieldAdSetID       CampaignField = "adSetId"
	FieldChannel       CampaignField = "channel"
	FieldP1            CampaignField = "p1"
	FieldP2            CampaignField = "p2"
	FieldP3            CampaignField = "p3"
	FieldP4            CampaignField = "p4"
	FieldP5            CampaignField = "p5"
	FieldClickID       CampaignField = "clickId"
	FieldDlv           CampaignField = "dlv"
	FieldPid           CampaignField = "pid"
	FieldIsRetargeting CampaignField = "isRetargeting"
)

// CampaignFields is the order in which attribution values are queried.
var CampaignFields = []CampaignField{
	FieldTrackierID, FieldAd, FieldAdID, FieldCampaign, FieldCampaignID,
	FieldAdSet, FieldAdSetID, FieldChannel,
	FieldP1, FieldP2, FieldP3, FieldP4, FieldP5,
	FieldClickID, FieldDlv, FieldPid, FieldIsRetargeting,
}

// CampaignAttributes is a read-only snapshot assembled field by field. The
// fields are fetched independently, so the snapshot is not atomic.
type CampaignAttributes struct {
	TrackierID    string          `json:"trackierId"`
	Ad            string          `json:"ad"`
	AdID          string          `json:"adId"`
	Campaign      string          `json:"campaign"`
	CampaignID    string          `json:"campaignId"`
	AdSet         string          `json:"adSet"`
	AdSetID       string          `json:"adSetId"`
	Channel       string          `json:"channel"`
	P1            string          `json:"p1"`
	P2            string          `json:"p2"`
	P3            string          `json:"p3"`
	P4            string          `json:"p4"`
	P5            string          `json:"p5"`
	ClickID       string          `json:"clickId"`
	Dlv           string          `json:"dlv"`
	Pid           string          `json:"pid"`
	IsRetargeting bool            `json:"isRetargeting"`
	FailedFields  []CampaignField `json:"failedFields,omitempty"`
	FetchedAt     time.Time       `json:"fetchedAt"`
}

// Set stores a raw string value into the attribute named by f.
func (c *CampaignAttributes) Set(f CampaignField, v string) {
	switch f {
	case FieldTrackierID:
		c.TrackierID = v
	case FieldAd:
		c.Ad = v
	case FieldAdID:
		c.AdID = v
	case FieldCampaign:
		c.Campaign = v
	case FieldCampaignID:
		c.CampaignID = v
	case FieldAdSet:
		c.AdSet = v
	case FieldAdSetID:
		c.AdSetID = v
	case FieldChannel:
		c.Channel = v
	case FieldP1:
		c.P1 = v
	case FieldP2:
		c.P2 = v
	case FieldP3:
		c.P3 = v
	case FieldP4:
		c.P4 = v
	case FieldP5:
		c.P5 = v
	case FieldClickID:
		c.ClickID = v
	case FieldDlv:
		c.Dlv = v
	case FieldPid:
		c.Pid = v
	case FieldIsRetargeting:
		c.IsRetargeting = v == "true"
	}
}

// ValidCampaignField reports whether s names a known attribution field.
func ValidCampaignField(s string) bool {
	for _, f := range CampaignFields {
		if string(f) == s {
			return true
		}
	}
	return false
}
