package sdk

import "github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"

// Headers sent with every backend request.
const (
	HeaderKey       = "X-SDK-Key"
	HeaderVersion   = "X-SDK-Version"
	HeaderInstallID = "X-SDK-Install-ID"
	HeaderSignature = "X-SDK-Signature"
)

// Version is reported in HeaderVersion.
const Version = "1.0.0"

// Backend routes.
const (
	PathInit         = "/v1/sdk/init"
	PathEvents       = "/v1/sdk/events"
	PathUser         = "/v1/sdk/user"
	PathAttribution  = "/v1/sdk/attribution"
	PathDynamicLinks = "/v1/sdk/dynamic-links"
	PathResolve      = "/v1/sdk/deeplinks/resolve"
)

// User profile fields accepted by PathUser.
const (
	UserFieldID     = "user_id"
	UserFieldName   = "name"
	UserFieldPhone  = "phone"
	UserFieldEmail  = "email"
	UserFieldDOB    = "dob"
	UserFieldGender = "gender"
)

type InitRequest struct {
	AppKey      string `json:"app_key"`
	Environment string `json:"environment"`
	InstallID   string `json:"install_id,omitempty"`
}

type InitResponse struct {
	InstallID        string `json:"install_id"`
	DeferredDeepLink string `json:"deferred_deeplink,omitempty"`
}

type EventRequest struct {
	InstallID  string            `json:"install_id"`
	EventID    string            `json:"event_id"`
	Params     map[string]string `json:"params,omitempty"`
	Revenue    float64           `json:"revenue,omitempty"`
	Currency   string            `json:"currency,omitempty"`
	CouponCode string            `json:"coupon_code,omitempty"`
	OrderID    string            `json:"order_id,omitempty"`
	ProductID  string            `json:"product_id,omitempty"`
	Discount   float64           `json:"discount,omitempty"`
	Values     map[string]string `json:"values,omitempty"`
}

// NewEventRequest flattens ev into its wire form.
func NewEventRequest(installID string, ev domain.TrackableEvent) EventRequest {
	return EventRequest{
		InstallID:  installID,
		EventID:    ev.ID,
		Params:     ev.WireParams(),
		Revenue:    ev.Revenue,
		Currency:   ev.Currency,
		CouponCode: ev.CouponCode,
		OrderID:    ev.OrderID,
		ProductID:  ev.ProductID,
		Discount:   ev.Discount,
		Values:     ev.Values,
	}
}

type UserFieldRequest struct {
	InstallID string `json:"install_id"`
	Field     string `json:"field"`
	Value     string `json:"value"`
}

type AttributionResponse struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type DynamicLinkResponse struct {
	Link string `json:"link"`
}

type ResolveRequest struct {
	InstallID string `json:"install_id,omitempty"`
	URL       string `json:"url"`
}

// ErrorResponse is the body of every non-2xx backend reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
