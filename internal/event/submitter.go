package event

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/metrics"
)

// ProfileSetter pushes user details to the SDK.
type ProfileSetter interface {
	SetUserID(ctx context.Context, v string) error
	SetUserName(ctx context.Context, v string) error
	SetUserPhone(ctx context.Context, v string) error
	SetUserEmail(ctx context.Context, v string) error
	SetDOB(ctx context.Context, v string) error
	SetGender(ctx context.Context, v string) error
}

// SDK is the part of the SDK client the submitter needs.
type SDK interface {
	ProfileSetter
	TrackEvent(ctx context.Context, ev domain.TrackableEvent) error
}

// Submitter validates forms and hands the resulting events to the SDK. A
// submission is attempted once; resubmitting is the caller's decision.
type Submitter struct {
	sdk    SDK
	logger *slog.Logger
}

func NewSubmitter(sdk SDK, logger *slog.Logger) *Submitter {
	return &Submitter{sdk: sdk, logger: logger}
}

// Submit builds the event described by form and tracks it. Validation
// failures return before anything reaches the SDK.
func (s *Submitter) Submit(ctx context.Context, form Form, profile *domain.UserProfile) (domain.TrackableEvent, error) {
	ev, err := form.Build()
	if err != nil {
		metrics.IncEventSubmission(string(form.Kind), "rejected")
		s.logger.Info("event rejected", "kind", form.Kind, "error", err)
		return domain.TrackableEvent{}, err
	}
	if err := s.Track(ctx, form.Kind, ev, profile); err != nil {
		return ev, err
	}
	return ev, nil
}

// Track sends a prebuilt event. Only the parameter cap is enforced here.
func (s *Submitter) Track(ctx context.Context, kind Kind, ev domain.TrackableEvent, profile *domain.UserProfile) error {
	if len(ev.Params) > domain.MaxParams {
		metrics.IncEventSubmission(string(kind), "rejected")
		return &domain.ValidationError{Reason: domain.ReasonTooManyParameters, Field: "params"}
	}

	if profile != nil {
		s.applyProfile(ctx, *profile)
	}

	if err := s.sdk.TrackEvent(ctx, ev); err != nil {
		metrics.IncEventSubmission(string(kind), "failed")
		s.logger.Warn("event tracking failed",
			"kind", kind,
			"event_id", ev.ID,
			"error", err,
		)
		var sce *domain.SdkCallError
		if !errors.As(err, &sce) {
			err = &domain.SdkCallError{Op: "track_event", Err: err}
		}
		return err
	}

	metrics.IncEventSubmission(string(kind), "tracked")
	s.logger.Info("event tracked",
		"kind", kind,
		"event_id", ev.ID,
		"params", len(ev.Params),
	)
	return nil
}

// applyProfile pushes every non-empty profile field. Setter failures are
// logged and do not stop the event.
func (s *Submitter) applyProfile(ctx context.Context, p domain.UserProfile) {
	setters := []struct {
		field string
		value string
		set   func(context.Context, string) error
	}{
		{"user_id", p.UserID, s.sdk.SetUserID},
		{"email", p.Email, s.sdk.SetUserEmail},
		{"name", p.Name, s.sdk.SetUserName},
		{"phone", p.Phone, s.sdk.SetUserPhone},
		{"dob", p.DOB, s.sdk.SetDOB},
		{"gender", p.Gender, s.sdk.SetGender},
	}
	for _, st := range setters {
		if st.value == "" {
			continue
		}
		if err := st.set(ctx, st.value); err != nil {
			s.logger.Warn("setting user profile field failed", "field", st.field, "error", err)
		}
	}
}
