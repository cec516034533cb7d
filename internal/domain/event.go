package domain

import (
	"errors"
	"fmt"
)

// MaxParams is the number of positional parameters an event can carry (param1..param10).
const MaxParams = 10

// ErrTooManyParameters is returned when more than MaxParams parameters are attached to an event.
var ErrTooManyParameters = errors.New("too many parameters")

// Param is a single key/value pair entered on an event form. Only the value
// travels to the SDK; the key labels the positional slot on screen.
type Param struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// TrackableEvent is a request-scoped value handed to the SDK facade. It is
// passed by value so a submitted event cannot be mutated afterwards.
type TrackableEvent struct {
	ID         string            `json:"id"`
	Params     []Param           `json:"params,omitempty"`
	Revenue    float64           `json:"revenue,omitempty"`
	Currency   string            `json:"currency,omitempty"`
	CouponCode string            `json:"coupon_code,omitempty"`
	OrderID    string            `json:"order_id,omitempty"`
	ProductID  string            `json:"product_id,omitempty"`
	Discount   float64           `json:"discount,omitempty"`
	Values     map[string]string `json:"values,omitempty"`
}

func NewTrackableEvent(id string) TrackableEvent {
	return TrackableEvent{ID: id}
}

// WithParams returns a copy of the event with the given parameters appended
// positionally. The event is left untouched when the cap would be exceeded.
func (e TrackableEvent) WithParams(params ...Param) (TrackableEvent, error) {
	if len(e.Params)+len(params) > MaxParams {
		return e, fmt.Errorf("%w: %d > %d", ErrTooManyParameters, len(e.Params)+len(params), MaxParams)
	}
	out := e
	out.Params = make([]Param, 0, len(e.Params)+len(params))
	out.Params = append(out.Params, e.Params...)
	out.Params = append(out.Params, params...)
	return out, nil
}

// WithParamValues is WithParams for callers that only have values, such as
// the hardcoded product events.
func (e TrackableEvent) WithParamValues(values ...string) (TrackableEvent, error) {
	params := make([]Param, len(values))
	for i, v := range values {
		params[i] = Param{Key: fmt.Sprintf("Param %d", len(e.Params)+i+1), Value: v}
	}
	return e.WithParams(params...)
}

// WithValue returns a copy of the event carrying an additional free-form event value.
func (e TrackableEvent) WithValue(key, value string) TrackableEvent {
	out := e
	out.Values = make(map[string]string, len(e.Values)+1)
	for k, v := range e.Values {
		out.Values[k] = v
	}
	out.Values[key] = value
	return out
}

// WireParams renders the positional parameters as param1..paramN.
func (e TrackableEvent) WireParams() map[string]string {
	if len(e.Params) == 0 {
		return nil
	}
	n := len(e.Params)
	if n > MaxParams {
		n = MaxParams
	}
	out := make(map[string]string, n)
	for i := 0; i < n; i++ {
		out[fmt.Sprintf("param%d", i+1)] = e.Params[i].Value
	}
	return out
}

// UserProfile holds the user details pushed through the SDK's user setters
// before an event is tracked.
type UserProfile struct {
	UserID string `json:"user_id,omitempty"`
	Name   string `json:"name,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Email  string `json:"email,omitempty"`
	DOB    string `json:"dob,omitempty"`
	Gender string `json:"gender,omitempty"`
}
