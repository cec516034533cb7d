package screen

import (
	"context"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/event"
)

// CampaignData fetches the attribution snapshot. Refreshing is calling it again.
func (s *Screens) CampaignData(ctx context.Context) domain.CampaignAttributes {
	return s.deps.Campaign.Fetch(ctx)
}

// CampaignTestEvent tracks the level achieved event offered on the campaign screen.
func (s *Screens) CampaignTestEvent(ctx context.Context) (Outcome, error) {
	ev := domain.NewTrackableEvent(event.IDLevelAchieved)
	if err := s.deps.Submitter.Track(ctx, event.KindCampaign, ev, nil); err != nil {
		return Outcome{Notification: s.toast(ctx, event.FailureMessage(err), durationBase, domain.SeverityDanger)}, err
	}
	return Outcome{Notification: s.toast(ctx, event.MsgSubmitted, durationBase, domain.SeveritySuccess)}, nil
}
