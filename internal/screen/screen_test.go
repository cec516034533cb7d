package screen

import (
	"context"
	"errors"
	"testing"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/campaign"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/deeplink"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/dynamiclink"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/event"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/navigation"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/notify"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/sdk"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/sdk/sdktest"
)

type fixture struct {
	screens *Screens
	fake    *sdktest.Fake
	client  *sdk.Client
	nav     *navigation.Memory
	toasts  *notify.Recorder
}

func newFixture(t *testing.T, ready bool) *fixture {
	t.Helper()
	logger := sdktest.Logger()
	fake := sdktest.New()
	client := sdktest.NewClient(fake)
	if ready {
		if err := client.Initialize(context.Background()); err != nil {
			t.Fatalf("Initialize() error: %v", err)
		}
	}
	nav := navigation.NewMemory(nil)
	toasts := &notify.Recorder{}

	s := New(Deps{
		Submitter:  event.NewSubmitter(client, logger),
		Campaign:   campaign.NewRetriever(client, logger),
		Links:      dynamiclink.NewService(client, logger),
		Dispatcher: deeplink.NewDispatcher(deeplink.NewRouter(deeplink.DefaultRoutes()...), nav, logger),
		Parser:     client,
		Navigator:  nav,
		Notifier:   toasts,
		Logger:     logger,
	})
	return &fixture{screens: s, fake: fake, client: client, nav: nav, toasts: toasts}
}

func TestSubmitBuiltin_NoSelectionRejected(t *testing.T) {
	f := newFixture(t, true)

	out, err := f.screens.SubmitBuiltin(context.Background(), event.Form{Currency: "USD", Revenue: 10})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if out.Notification == nil || out.Notification.Message != event.MsgRequiredFields {
		t.Fatalf("notification = %+v", out.Notification)
	}
	if out.Notification.DurationMs != 1000 || out.Notification.Severity != domain.SeverityDanger {
		t.Errorf("toast = %+v", out.Notification)
	}
	if len(f.fake.TrackedEvents()) != 0 {
		t.Error("SDK called for an invalid form")
	}
}

func TestSubmitCustom_Success(t *testing.T) {
	f := newFixture(t, true)

	form := event.Form{
		EventID:  "sEQWVHGThl",
		Currency: "GBP",
		Revenue:  12,
		Params:   []domain.Param{{Key: "Param 1", Value: "x"}},
	}
	out, err := f.screens.SubmitCustom(context.Background(), form)
	if err != nil {
		t.Fatalf("SubmitCustom() error: %v", err)
	}
	if out.Notification.Message != event.MsgSubmitted || out.Notification.Severity != domain.SeveritySuccess {
		t.Errorf("toast = %+v", out.Notification)
	}
	events := f.fake.TrackedEvents()
	if len(events) != 1 || events[0].CouponCode != event.FormCouponCode {
		t.Errorf("events = %+v", events)
	}
	if f.fake.UserField(sdk.UserFieldName) != "Satyam" {
		t.Errorf("name = %q", f.fake.UserField(sdk.UserFieldName))
	}
}

func TestSubmitCustom_SDKNotReady(t *testing.T) {
	f := newFixture(t, false)

	out, err := f.screens.SubmitCustom(context.Background(), event.Form{EventID: "x", Currency: "USD", Revenue: 1})
	if !errors.Is(err, domain.ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	if out.Notification.Severity != domain.SeverityDanger {
		t.Errorf("toast = %+v", out.Notification)
	}
}

func TestSubmitComplete_Defaults(t *testing.T) {
	f := newFixture(t, true)
	form, profile := event.CompleteDefaults()

	if _, err := f.screens.SubmitComplete(context.Background(), form, profile); err != nil {
		t.Fatalf("SubmitComplete() error: %v", err)
	}
	events := f.fake.TrackedEvents()
	if len(events) != 1 || events[0].ID != "B4N_In4cIP" || len(events[0].Params) != 10 {
		t.Fatalf("events = %+v", events)
	}
	if f.fake.UserField(sdk.UserFieldDOB) != "1990-01-01" {
		t.Errorf("dob = %q", f.fake.UserField(sdk.UserFieldDOB))
	}
}

func TestAddToCart_NavigatesToCart(t *testing.T) {
	f := newFixture(t, true)

	out, err := f.screens.AddToCart(context.Background())
	if err != nil {
		t.Fatalf("AddToCart() error: %v", err)
	}
	if out.Navigated == nil || out.Navigated.ScreenID != domain.ScreenAddToCart {
		t.Errorf("Navigated = %+v", out.Navigated)
	}
	cur, _ := f.nav.Current(context.Background())
	if cur.ScreenID != domain.ScreenAddToCart {
		t.Errorf("Current() = %q", cur.ScreenID)
	}
	ev := f.fake.TrackedEvents()[0]
	if ev.ID != event.IDAddToCart || ev.CouponCode != event.ProductCouponCode {
		t.Errorf("event = %+v", ev)
	}
}

func TestPurchase_FailureStaysPut(t *testing.T) {
	f := newFixture(t, true)
	f.fake.Fail("TrackEvent", errors.New("rejected"))

	out, err := f.screens.Purchase(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if out.Navigated != nil {
		t.Error("failed purchase should not navigate")
	}
	if out.Notification.Message != "Failed to submit event: rejected" {
		t.Errorf("message = %q", out.Notification.Message)
	}
}

func TestOpenCart_TracksProductViewed(t *testing.T) {
	f := newFixture(t, true)

	out, err := f.screens.OpenCart(context.Background())
	if err != nil {
		t.Fatalf("OpenCart() error: %v", err)
	}
	if out.Notification != nil {
		t.Error("opening the cart should be silent")
	}
	if ev := f.fake.TrackedEvents(); len(ev) != 1 || ev[0].ID != event.IDProductViewed {
		t.Errorf("events = %+v", ev)
	}
}

func TestAddParam_CapShowsToast(t *testing.T) {
	f := newFixture(t, true)
	params := make([]domain.Param, domain.MaxParams)

	got, out := f.screens.AddParam(context.Background(), params)
	if len(got) != domain.MaxParams {
		t.Errorf("len = %d", len(got))
	}
	if out.Notification == nil || out.Notification.Message != event.MsgTooManyParams {
		t.Errorf("toast = %+v", out.Notification)
	}
}

func TestDynamicLink_Unavailable(t *testing.T) {
	f := newFixture(t, false)

	out, err := f.screens.CreateDynamicLink(context.Background(), nil)
	if !errors.Is(err, dynamiclink.ErrFacadeUnavailable) {
		t.Fatalf("expected ErrFacadeUnavailable, got %v", err)
	}
	if out.Notification.Message != msgSDKUnavailable {
		t.Errorf("message = %q", out.Notification.Message)
	}
}

func TestDynamicLink_CreateAndResolve(t *testing.T) {
	f := newFixture(t, true)
	f.fake.Link = "https://trackier59.u9ilnk.me/d/abc"

	created, err := f.screens.CreateDynamicLink(context.Background(), nil)
	if err != nil {
		t.Fatalf("CreateDynamicLink() error: %v", err)
	}
	if created.Link != f.fake.Link || created.Notification.DurationMs != 3000 {
		t.Errorf("created = %+v", created)
	}

	resolved, err := f.screens.ResolveLink(context.Background(), "")
	if err != nil {
		t.Fatalf("ResolveLink() error: %v", err)
	}
	if resolved.Notification.Message != msgNoResolvedURL || resolved.Notification.Severity != domain.SeverityWarning {
		t.Errorf("toast = %+v", resolved.Notification)
	}

	f.fake.Resolved = domain.ResolvedLink{URL: "myapp://open?product_id=1&quantity=1"}
	resolved, _ = f.screens.ResolveLink(context.Background(), "")
	if resolved.Notification.Message != msgLinkResolved {
		t.Errorf("toast = %+v", resolved.Notification)
	}
}

func TestOpenDeepLink_ShowsCake(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	if _, err := f.screens.OpenDeepLink(ctx, "myapp://cake/12/4?dlv=summer"); err != nil {
		t.Fatalf("OpenDeepLink() error: %v", err)
	}
	view, ok, err := f.screens.Cake(ctx)
	if err != nil || !ok {
		t.Fatalf("Cake() = %v, %v", ok, err)
	}
	if view.ProductID != "12" || view.Quantity != "4" || view.Dlv != "summer" {
		t.Errorf("view = %+v", view)
	}

	if _, err := f.screens.Back(ctx); err != nil {
		t.Fatalf("Back() error: %v", err)
	}
	if _, ok, _ := f.screens.Cake(ctx); ok {
		t.Error("cake view should be gone after navigating back")
	}
}

func TestSelect(t *testing.T) {
	f := newFixture(t, true)

	target, err := f.screens.Select(context.Background(), "Campaign Data")
	if err != nil || target.ScreenID != domain.ScreenCampaignData {
		t.Errorf("Select() = %+v, %v", target, err)
	}
	if _, err := f.screens.Select(context.Background(), "Settings"); !errors.Is(err, ErrUnknownMenuItem) {
		t.Errorf("expected ErrUnknownMenuItem, got %v", err)
	}
	if len(Menu()) != 7 {
		t.Errorf("menu has %d items", len(Menu()))
	}
}

func TestCampaignTestEvent(t *testing.T) {
	f := newFixture(t, true)

	if _, err := f.screens.CampaignTestEvent(context.Background()); err != nil {
		t.Fatalf("CampaignTestEvent() error: %v", err)
	}
	if ev := f.fake.TrackedEvents(); len(ev) != 1 || ev[0].ID != "1CFfUn3xEY" {
		t.Errorf("events = %+v", ev)
	}
}
