package screen

import (
	"context"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/event"
)

// SubmitBuiltin tracks an event picked from the built-in catalog.
func (s *Screens) SubmitBuiltin(ctx context.Context, form event.Form) (Outcome, error) {
	form.Kind = event.KindBuiltin
	form.CouponCode = event.FormCouponCode
	profile := event.FormProfile()
	return s.submitForm(ctx, form, &profile)
}

// SubmitCustom tracks an event with a free-form id.
func (s *Screens) SubmitCustom(ctx context.Context, form event.Form) (Outcome, error) {
	form.Kind = event.KindCustom
	form.CouponCode = event.FormCouponCode
	profile := event.FormProfile()
	return s.submitForm(ctx, form, &profile)
}

// SubmitComplete tracks the fully populated event of the complete event screen.
func (s *Screens) SubmitComplete(ctx context.Context, form event.Form, profile domain.UserProfile) (Outcome, error) {
	form.Kind = event.KindComplete
	return s.submitForm(ctx, form, &profile)
}

func (s *Screens) submitForm(ctx context.Context, form event.Form, profile *domain.UserProfile) (Outcome, error) {
	_, err := s.deps.Submitter.Submit(ctx, form, profile)
	if err != nil {
		if msg := event.Message(err); msg != "" {
			return Outcome{Notification: s.toast(ctx, msg, durationShort, domain.SeverityDanger)}, err
		}
		return Outcome{Notification: s.toast(ctx, event.FailureMessage(err), durationBase, domain.SeverityDanger)}, err
	}
	return Outcome{Notification: s.toast(ctx, event.MsgSubmitted, durationBase, domain.SeveritySuccess)}, nil
}

// AddParam is the "add parameter" button; past the cap it only shows a toast.
func (s *Screens) AddParam(ctx context.Context, params []domain.Param) ([]domain.Param, Outcome) {
	out, err := event.AddParam(params)
	if err != nil {
		return out, Outcome{Notification: s.toast(ctx, event.Message(err), durationShort, domain.SeverityDanger)}
	}
	return out, Outcome{}
}
