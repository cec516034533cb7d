package sdk_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/sdk"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/sdk/sdktest"
)

func newClient(f *sdktest.Fake) *sdk.Client {
	return sdk.NewClient(f, sdk.Config{AppKey: "k", Environment: sdk.EnvDevelopment}, sdktest.Logger())
}

func TestClient_CallsBeforeReadyFail(t *testing.T) {
	fake := sdktest.New()
	c := newClient(fake)

	if c.State() != sdk.StateUninitialized {
		t.Fatalf("State() = %s", c.State())
	}

	err := c.TrackEvent(context.Background(), domain.NewTrackableEvent("x"))
	if !errors.Is(err, domain.ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	var sce *domain.SdkCallError
	if !errors.As(err, &sce) {
		t.Fatalf("expected *SdkCallError, got %T", err)
	}
	if len(fake.TrackedEvents()) != 0 {
		t.Error("facade should not be called before Ready")
	}
}

func TestClient_InitializeFailureThenRetry(t *testing.T) {
	fake := sdktest.New()
	fake.Fail("Initialize", errors.New("no network"))
	c := newClient(fake)

	err := c.Initialize(context.Background())
	var sce *domain.SdkCallError
	if !errors.As(err, &sce) {
		t.Fatalf("expected *SdkCallError, got %v", err)
	}
	if c.State() != sdk.StateFailed {
		t.Errorf("State() = %s, want failed", c.State())
	}
	select {
	case <-c.Settled():
	default:
		t.Error("Settled() should be closed after the first attempt")
	}

	fake.Fail("Initialize", nil)
	if err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("retry error: %v", err)
	}
	if !c.Available() {
		t.Error("client should be available after a successful retry")
	}
	if c.Err() != nil {
		t.Errorf("Err() = %v after success", c.Err())
	}
}

func TestClient_InitializeIsIdempotentWhenReady(t *testing.T) {
	fake := sdktest.New()
	c := newClient(fake)

	for i := 0; i < 3; i++ {
		if err := c.Initialize(context.Background()); err != nil {
			t.Fatalf("Initialize() error: %v", err)
		}
	}
	if fake.Inits != 1 {
		t.Errorf("facade initialized %d times, want 1", fake.Inits)
	}
}

func TestClient_WrapsPlainFacadeErrors(t *testing.T) {
	fake := sdktest.New()
	c := sdktest.ReadyClient(fake)
	fake.Fail("SetUserEmail", errors.New("rejected"))

	err := c.SetUserEmail(context.Background(), "a@b.c")
	var sce *domain.SdkCallError
	if !errors.As(err, &sce) {
		t.Fatalf("expected *SdkCallError, got %v", err)
	}
	if sce.Op != "set_email" {
		t.Errorf("Op = %q", sce.Op)
	}
}

func TestClient_PassesThroughResults(t *testing.T) {
	fake := sdktest.New()
	fake.Link = "https://trackier59.u9ilnk.me/d/abc"
	fake.Attribution[domain.FieldCampaign] = "summer_sale"
	c := sdktest.ReadyClient(fake)

	link, err := c.CreateDynamicLink(context.Background(), domain.DynamicLinkConfig{TemplateID: "M5Osa2"})
	if err != nil || link != fake.Link {
		t.Errorf("CreateDynamicLink() = %q, %v", link, err)
	}
	v, err := c.CampaignField(context.Background(), domain.FieldCampaign)
	if err != nil || v != "summer_sale" {
		t.Errorf("CampaignField() = %q, %v", v, err)
	}
}
