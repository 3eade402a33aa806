package domain

// Intent is the coarse category a user utterance is classified into. It is
// derived fresh per request and never persisted.
type Intent string

const (
	IntentCooking Intent = "COOKING_QUERY"
	IntentProduct Intent = "PRODUCT_QUERY"
	IntentSupport Intent = "SUPPORT_QUERY"
	IntentOther   Intent = "OTHER"
)

// String returns the wire token for the intent.
func (i Intent) String() string {
	return string(i)
}
