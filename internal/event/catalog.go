package event

// Kind identifies which screen produced an event.
type Kind string

const (
	KindBuiltin  Kind = "builtin"
	KindCustom   Kind = "custom"
	KindComplete Kind = "complete"
	KindProduct  Kind = "product"
	KindCampaign Kind = "campaign"
)

// BuiltinEvent pairs a selectable event name with the SDK event id it maps to.
type BuiltinEvent struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

var builtinEvents = []BuiltinEvent{
	{"ADD_TO_CART", "Fy4uC1_FlN"},
	{"LEVEL_ACHIEVED", "1CFfUn3xEY"},
	{"ADD_TO_WISHLIST", "AOisVC76YG"},
	{"COMPLETE_REGISTRATION", "mEqP4aD8dU"},
	{"TUTORIAL_COMPLETION", "99VEGvXjN7"},
	{"PURCHASE", "Q4YsqBKnzZ"},
	{"SUBSCRIBE", "B4N_In4cIP"},
	{"START_TRIAL", "jYHcuyxWUW"},
	{"ACHIEVEMENT_UNLOCKED", "xTPvxWuNqm"},
	{"CONTENT_VIEW", "Jwzois1ays"},
	{"TRAVEL_BOOKING", "yP1-ipVtHV"},
	{"SHARE", "dxZXGG1qqL"},
	{"INVITE", "7lnE3OclNT"},
	{"LOGIN", "o91gt1Q0PK"},
	{"UPDATE", "sEQWVHGThl"},
}

// Event ids used outside the built-in catalog.
const (
	IDAddToCart     = "Fy4uC1_FlN"
	IDProductViewed = "jKw8qPF50u"
	IDPurchase      = "Q4YsqBKnzZ"
	IDLevelAchieved = "1CFfUn3xEY"
)

var currencies = []string{"USD", "EUR", "GBP", "INR", "AUD", "CAD", "SGD", "CHF", "MYR", "JPY"}

// Catalog returns the built-in events in display order.
func Catalog() []BuiltinEvent {
	out := make([]BuiltinEvent, len(builtinEvents))
	copy(out, builtinEvents)
	return out
}

// LookupBuiltin returns the SDK id for a built-in event name.
func LookupBuiltin(name string) (string, bool) {
	for _, e := range builtinEvents {
		if e.Name == name {
			return e.ID, true
		}
	}
	return "", false
}

// Currencies returns the currencies a form may select.
func Currencies() []string {
	out := make([]string, len(currencies))
	copy(out, currencies)
	return out
}

func supportedCurrency(c string) bool {
	for _, s := range currencies {
		if s == c {
			return true
		}
	}
	return false
}
