package event

import (
	"errors"
	"strconv"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
)

// Form is the user-entered state of an event screen.
type Form struct {
	Kind       Kind              `json:"-"`
	EventName  string            `json:"event_name,omitempty"`
	EventID    string            `json:"event_id,omitempty"`
	Currency   string            `json:"currency"`
	Revenue    float64           `json:"revenue"`
	Params     []domain.Param    `json:"params,omitempty"`
	CouponCode string            `json:"coupon_code,omitempty"`
	OrderID    string            `json:"order_id,omitempty"`
	ProductID  string            `json:"product_id,omitempty"`
	Discount   float64           `json:"discount,omitempty"`
	Values     map[string]string `json:"values,omitempty"`
}

// Build validates the form and turns it into a TrackableEvent. Any failure
// is a *domain.ValidationError.
func (f Form) Build() (domain.TrackableEvent, error) {
	id, err := f.eventID()
	if err != nil {
		return domain.TrackableEvent{}, err
	}

	if f.Currency == "" {
		return domain.TrackableEvent{}, &domain.ValidationError{Reason: domain.ReasonMissingField, Field: "currency"}
	}
	if f.Revenue <= 0 {
		return domain.TrackableEvent{}, &domain.ValidationError{Reason: domain.ReasonMissingField, Field: "revenue"}
	}
	if !supportedCurrency(f.Currency) {
		return domain.TrackableEvent{}, &domain.ValidationError{Reason: domain.ReasonInvalidParameter, Field: "currency"}
	}

	if f.Kind == KindBuiltin {
		if _, ok := LookupBuiltin(f.EventName); !ok {
			return domain.TrackableEvent{}, &domain.ValidationError{Reason: domain.ReasonInvalidParameter, Field: "event_name"}
		}
	}

	if len(f.Params) > domain.MaxParams {
		return domain.TrackableEvent{}, &domain.ValidationError{Reason: domain.ReasonTooManyParameters, Field: "params"}
	}
	if f.Kind == KindCustom {
		for _, p := range f.Params {
			if p.Key == "" || p.Value == "" {
				return domain.TrackableEvent{}, &domain.ValidationError{Reason: domain.ReasonInvalidParameter, Field: "params"}
			}
		}
	}

	ev, err := domain.NewTrackableEvent(id).WithParams(f.Params...)
	if err != nil {
		return domain.TrackableEvent{}, &domain.ValidationError{Reason: domain.ReasonTooManyParameters, Field: "params"}
	}
	ev.Revenue = f.Revenue
	ev.Currency = f.Currency
	ev.CouponCode = f.CouponCode
	ev.OrderID = f.OrderID
	ev.ProductID = f.ProductID
	ev.Discount = f.Discount
	for k, v := range f.Values {
		ev = ev.WithValue(k, v)
	}
	return ev, nil
}

func (f Form) eventID() (string, error) {
	if f.Kind == KindBuiltin {
		if f.EventName == "" {
			return "", &domain.ValidationError{Reason: domain.ReasonMissingField, Field: "event_name"}
		}
		// An unknown name is reported after the required fields are checked.
		id, _ := LookupBuiltin(f.EventName)
		return id, nil
	}
	if f.EventID == "" {
		return "", &domain.ValidationError{Reason: domain.ReasonMissingField, Field: "event_id"}
	}
	return f.EventID, nil
}

// Messages shown for rejected forms.
const (
	MsgRequiredFields  = "Please fill in all required fields."
	MsgParamKeyValue   = "All parameters must have a key and value."
	MsgTooManyParams   = "You can only add up to 10 parameters."
	MsgInvalidEvent    = "Invalid event selected."
	MsgInvalidCurrency = "Invalid currency selected."
	MsgSubmitted       = "Event submitted successfully!"
)

// FailureMessage is shown when the SDK rejects a submitted event.
func FailureMessage(err error) string {
	var sce *domain.SdkCallError
	if errors.As(err, &sce) && sce.Err != nil {
		return "Failed to submit event: " + sce.Err.Error()
	}
	return "Failed to submit event: " + err.Error()
}

// Message maps a validation error to the text shown to the user. It returns
// an empty string for other errors.
func Message(err error) string {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return ""
	}
	switch ve.Reason {
	case domain.ReasonMissingField:
		return MsgRequiredFields
	case domain.ReasonTooManyParameters:
		return MsgTooManyParams
	}
	switch ve.Field {
	case "event_name":
		return MsgInvalidEvent
	case "currency":
		return MsgInvalidCurrency
	}
	return MsgParamKeyValue
}

// AddParam appends an empty, auto-labelled parameter the way the add button
// on the event screens does.
func AddParam(params []domain.Param) ([]domain.Param, error) {
	if len(params) >= domain.MaxParams {
		return params, &domain.ValidationError{Reason: domain.ReasonTooManyParameters, Field: "params"}
	}
	label := "Param " + strconv.Itoa(len(params)+1)
	return append(params, domain.Param{Key: label}), nil
}

// RemoveParam drops the parameter at index i. Out of range indexes are ignored.
func RemoveParam(params []domain.Param, i int) []domain.Param {
	if i < 0 || i >= len(params) {
		return params
	}
	out := make([]domain.Param, 0, len(params)-1)
	out = append(out, params[:i]...)
	return append(out, params[i+1:]...)
}
