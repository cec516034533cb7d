package event

import (
	"fmt"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
)

// CompleteDefaults returns the prefilled form of the complete event screen.
// Reset restores exactly these values.
func CompleteDefaults() (Form, domain.UserProfile) {
	params := make([]domain.Param, domain.MaxParams)
	for i := range params {
		params[i] = domain.Param{
			Key:   fmt.Sprintf("Param%d", i+1),
			Value: fmt.Sprintf("Test%d", i+1),
		}
	}

	form := Form{
		Kind:       KindComplete,
		EventID:    "B4N_In4cIP",
		OrderID:    "REG_001",
		ProductID:  "FREE_PLAN",
		Currency:   "USD",
		CouponCode: "343434234",
		Discount:   3.1415,
		Revenue:    34234234.32423,
		Params:     params,
		Values: map[string]string{
			"signup_time":  "1631234567890",
			"device":       "Cordova",
			"Plan":         "FREE_PLAN",
			"SignupMethod": "Email",
			"AppVersion":   "1.0.0",
		},
	}
	profile := domain.UserProfile{
		UserID: "USER123",
		Email:  "user@example.com",
		Name:   "Jane Doe",
		Phone:  "+1234567890",
		DOB:    "1990-01-01",
		Gender: "Male",
	}
	return form, profile
}

// FormProfile is pushed before built-in and custom events.
func FormProfile() domain.UserProfile {
	return domain.UserProfile{
		UserID: "Satyan!232",
		Name:   "Satyam",
		Phone:  "82528978393",
		Email:  "Satyam@gmail.com",
		DOB:    "12/1/2022",
		Gender: "Male",
	}
}

// FormCouponCode is attached to built-in and custom events.
const FormCouponCode = "SatyamTest10233"

// ProductProfile is pushed before the product page and cart events.
func ProductProfile() domain.UserProfile {
	return domain.UserProfile{
		UserID: "Satya7893@",
		Name:   "SatyamKr",
		Phone:  "3i23u4ueuwruew",
		Email:  "Satyam@Trackier.com",
	}
}

// ProductCouponCode is attached to the add to cart and purchase events.
const ProductCouponCode = "*SDJ(#JKKSH"

// CartEvent builds the add to cart or purchase event of the product flow.
func CartEvent(id string) domain.TrackableEvent {
	ev, _ := domain.NewTrackableEvent(id).WithParamValues(
		"Ionic Product Added to cart", "Param 2", "Param 3", "Param 4",
	)
	ev.CouponCode = ProductCouponCode
	return ev
}

// ProductViewedEvent is tracked when the cart screen opens.
func ProductViewedEvent() domain.TrackableEvent {
	ev, _ := domain.NewTrackableEvent(IDProductViewed).WithParamValues("Ionic Product Viewed")
	return ev
}
