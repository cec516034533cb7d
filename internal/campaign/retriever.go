// Package campaign assembles attribution snapshots from the SDK.
package campaign

import (
	"context"
	"log/slog"
	"time"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/metrics"
)

// Source answers one attribution field per call.
type Source interface {
	CampaignField(ctx context.Context, f domain.CampaignField) (string, error)
}

// Retriever queries every campaign field in order. A failing field is
// recorded as empty and the sequence continues.
type Retriever struct {
	source Source
	logger *slog.Logger
	now    func() time.Time
}

func NewRetriever(source Source, logger *slog.Logger) *Retriever {
	return &Retriever{source: source, logger: logger, now: time.Now}
}

// Fetch returns a fresh snapshot. Fields are read one after another, so the
// snapshot can mix values from before and after an attribution update.
func (r *Retriever) Fetch(ctx context.Context) domain.CampaignAttributes {
	var attrs domain.CampaignAttributes

	for _, f := range domain.CampaignFields {
		v, err := r.source.CampaignField(ctx, f)
		if err != nil {
			r.logger.Warn("campaign field unavailable", "field", f, "error", err)
			metrics.IncCampaignFieldFailure(string(f))
			attrs.FailedFields = append(attrs.FailedFields, f)
			v = ""
		}
		attrs.Set(f, v)
	}

	attrs.FetchedAt = r.now()
	if len(attrs.FailedFields) > 0 {
		r.logger.Info("campaign data retrieved with gaps", "failed_fields", len(attrs.FailedFields))
	}
	return attrs
}

// Refresh re-runs the whole sequence.
func (r *Retriever) Refresh(ctx context.Context) domain.CampaignAttributes {
	return r.Fetch(ctx)
}
