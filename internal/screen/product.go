package screen

import (
	"context"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/event"
)

const (
	msgAddedToCart = "Product has been added to cart"
	msgPurchased   = "Product purchased successfully"
)

// AddToCart tracks the add to cart event and moves to the cart screen.
func (s *Screens) AddToCart(ctx context.Context) (Outcome, error) {
	return s.trackCartEvent(ctx, event.IDAddToCart, msgAddedToCart)
}

// Purchase tracks the purchase event from the cart screen.
func (s *Screens) Purchase(ctx context.Context) (Outcome, error) {
	return s.trackCartEvent(ctx, event.IDPurchase, msgPurchased)
}

func (s *Screens) trackCartEvent(ctx context.Context, id, successMsg string) (Outcome, error) {
	profile := event.ProductProfile()
	if err := s.deps.Submitter.Track(ctx, event.KindProduct, event.CartEvent(id), &profile); err != nil {
		return Outcome{Notification: s.toast(ctx, event.FailureMessage(err), durationBase, domain.SeverityDanger)}, err
	}
	return Outcome{
		Notification: s.toast(ctx, successMsg, durationBase, domain.SeveritySuccess),
		Navigated:    s.navigate(ctx, domain.NavigationTarget{ScreenID: domain.ScreenAddToCart}),
	}, nil
}

// OpenCart tracks the product viewed event the cart screen sends when shown.
// Failures are logged only.
func (s *Screens) OpenCart(ctx context.Context) (Outcome, error) {
	if err := s.deps.Submitter.Track(ctx, event.KindProduct, event.ProductViewedEvent(), nil); err != nil {
		s.deps.Logger.Warn("product viewed event failed", "error", err)
		return Outcome{}, err
	}
	return Outcome{}, nil
}

// CakeView is what the cake screen shows.
type CakeView struct {
	ProductID  string `json:"product_id"`
	Quantity   string `json:"quantity"`
	ActionData string `json:"action_data,omitempty"`
	Dlv        string `json:"dlv,omitempty"`
}

// Cake reads the deep link parameters of the active cake screen. ok is false
// when another screen is active.
func (s *Screens) Cake(ctx context.Context) (CakeView, bool, error) {
	cur, err := s.deps.Navigator.Current(ctx)
	if err != nil {
		return CakeView{}, false, err
	}
	if cur.ScreenID != domain.ScreenCake {
		return CakeView{}, false, nil
	}
	q := cur.QueryParams
	return CakeView{
		ProductID:  q["productId"],
		Quantity:   q["quantity"],
		ActionData: q["actionData"],
		Dlv:        q["dlv"],
	}, true, nil
}
