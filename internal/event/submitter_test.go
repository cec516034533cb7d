package event

import (
	"context"
	"errors"
	"testing"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/sdk/sdktest"
)

func TestSubmitter_ValidationFailureMakesNoSDKCall(t *testing.T) {
	fake := sdktest.New()
	s := NewSubmitter(fake, sdktest.Logger())
	profile := FormProfile()

	forms := []Form{
		{Kind: KindBuiltin, Currency: "USD", Revenue: 10},
		{Kind: KindCustom, EventID: "abc", Currency: "USD", Revenue: 1, Params: []domain.Param{{Key: "x"}}},
		{Kind: KindCustom, EventID: "abc", Currency: "USD", Revenue: 1, Params: params(11)},
	}
	for _, f := range forms {
		if _, err := s.Submit(context.Background(), f, &profile); err == nil {
			t.Errorf("Submit(%+v) expected error", f)
		}
	}

	if n := len(fake.TrackedEvents()); n != 0 {
		t.Errorf("facade received %d events, want 0", n)
	}
	if fake.UserField("user_id") != "" {
		t.Error("profile should not be pushed for a rejected form")
	}
}

func TestSubmitter_Success(t *testing.T) {
	fake := sdktest.New()
	s := NewSubmitter(fake, sdktest.Logger())
	profile := FormProfile()

	form := Form{Kind: KindBuiltin, EventName: "ADD_TO_CART", Currency: "USD", Revenue: 5, CouponCode: FormCouponCode}
	ev, err := s.Submit(context.Background(), form, &profile)
	if err != nil {
		t.Fatalf("Submit() error: %v", err)
	}

	events := fake.TrackedEvents()
	if len(events) != 1 || events[0].ID != "Fy4uC1_FlN" {
		t.Fatalf("tracked = %+v", events)
	}
	if ev.CouponCode != FormCouponCode {
		t.Errorf("CouponCode = %q", ev.CouponCode)
	}
	if fake.UserField("email") != "Satyam@gmail.com" {
		t.Errorf("email = %q", fake.UserField("email"))
	}
}

func TestSubmitter_SDKErrorSurfaced(t *testing.T) {
	fake := sdktest.New()
	fake.Fail("TrackEvent", errors.New("backend unavailable"))
	s := NewSubmitter(fake, sdktest.Logger())

	form := Form{Kind: KindCustom, EventID: "abc", Currency: "EUR", Revenue: 1}
	_, err := s.Submit(context.Background(), form, nil)

	var sce *domain.SdkCallError
	if !errors.As(err, &sce) {
		t.Fatalf("expected *SdkCallError, got %v", err)
	}
	if FailureMessage(err) != "Failed to submit event: backend unavailable" {
		t.Errorf("FailureMessage() = %q", FailureMessage(err))
	}
}

func TestSubmitter_ProfileFailureIsNotFatal(t *testing.T) {
	fake := sdktest.New()
	fake.Fail("SetUserPhone", errors.New("bad phone"))
	s := NewSubmitter(fake, sdktest.Logger())
	profile := ProductProfile()

	if err := s.Track(context.Background(), KindProduct, CartEvent(IDAddToCart), &profile); err != nil {
		t.Fatalf("Track() error: %v", err)
	}
	if len(fake.TrackedEvents()) != 1 {
		t.Error("event should be tracked despite a failed profile setter")
	}
	if fake.UserField("name") != "SatyamKr" {
		t.Errorf("name = %q", fake.UserField("name"))
	}
}

func TestSubmitter_TrackRejectsOversizedEvent(t *testing.T) {
	fake := sdktest.New()
	s := NewSubmitter(fake, sdktest.Logger())

	ev := domain.NewTrackableEvent("abc")
	ev.Params = params(11)

	err := s.Track(context.Background(), KindProduct, ev, nil)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Reason != domain.ReasonTooManyParameters {
		t.Fatalf("expected too many parameters, got %v", err)
	}
	if len(fake.TrackedEvents()) != 0 {
		t.Error("oversized event reached the facade")
	}
}

func TestCartEvent(t *testing.T) {
	ev := CartEvent(IDPurchase)

	if ev.ID != IDPurchase || ev.CouponCode != ProductCouponCode {
		t.Errorf("event = %+v", ev)
	}
	wire := ev.WireParams()
	if wire["param1"] != "Ionic Product Added to cart" || wire["param4"] != "Param 4" {
		t.Errorf("WireParams() = %v", wire)
	}
}
