// Package checkout implements the payment form: field validation with
// network-aware rules, the simulated payment step, and purchase/order
// persistence.
package checkout

// Field names match the form inputs on the checkout page.
const (
	FieldFirstName  = "firstName"
	FieldLastName   = "lastName"
	FieldEmail      = "email"
	FieldCardNumber = "cardNumber"
	FieldCardHolder = "cardHolder"
	FieldExpiryDate = "expiryDate"
	FieldCVV        = "cvv"
	FieldZipCode    = "zipCode"
)

// FieldOrder is the fixed left-to-right sweep order used at submit
// time; the first invalid field in this order receives focus.
var FieldOrder = []string{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldCardNumber,
	FieldCardHolder,
	FieldExpiryDate,
	FieldCVV,
	FieldZipCode,
}

// Form carries the raw field values of one checkout submission.
type Form struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	CardNumber string `json:"cardNumber"`
	CardHolder string `json:"cardHolder"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
	ZipCode    string `json:"zipCode"`
}

// Value returns the raw value for a field name, or "" for unknown names.
func (f *Form) Value(field string) string {
	switch field {
	case FieldFirstName:
		return f.FirstName
	case FieldLastName:
		return f.LastName
	case FieldEmail:
		return f.Email
	case FieldCardNumber:
		return f.CardNumber
	case FieldCardHolder:
		return f.CardHolder
	case FieldExpiryDate:
		return f.ExpiryDate
	case FieldCVV:
		return f.CVV
	case FieldZipCode:
		return f.ZipCode
	default:
		return ""
	}
}

// FieldResult is the outcome of validating a single field.
type FieldResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}
