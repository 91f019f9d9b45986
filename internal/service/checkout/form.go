package checkout

import "strings"

// Field names a checkout form input; values match the JSON keys the storefront sends.
type Field string

const (
	FieldEmail      Field = "email"
	FieldFirstName  Field = "firstName"
	FieldLastName   Field = "lastName"
	FieldPhone      Field = "phone"
	FieldAddress    Field = "address"
	FieldCity       Field = "city"
	FieldState      Field = "state"
	FieldZipCode    Field = "zipCode"
	FieldCountry    Field = "country"
	FieldCardNumber Field = "cardNumber"
	FieldCardName   Field = "cardName"
	FieldExpiryDate Field = "expiryDate"
	FieldCVV        Field = "cvv"
)

// Fields lists every form field in display order.
var Fields = []Field{
	FieldEmail, FieldFirstName, FieldLastName, FieldPhone,
	FieldAddress, FieldCity, FieldState, FieldZipCode, FieldCountry,
	FieldCardNumber, FieldCardName, FieldExpiryDate, FieldCVV,
}

// Form carries the contact, shipping and payment inputs of a checkout.
type Form struct {
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zipCode"`
	Country    string `json:"country"`
	CardNumber string `json:"cardNumber"`
	CardName   string `json:"cardName"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
}

// Value returns the raw input for f.
func (f Form) Value(field Field) string {
	switch field {
	case FieldEmail:
		return f.Email
	case FieldFirstName:
		return f.FirstName
	case FieldLastName:
		return f.LastName
	case FieldPhone:
		return f.Phone
	case FieldAddress:
		return f.Address
	case FieldCity:
		return f.City
	case FieldState:
		return f.State
	case FieldZipCode:
		return f.ZipCode
	case FieldCountry:
		return f.Country
	case FieldCardNumber:
		return f.CardNumber
	case FieldCardName:
		return f.CardName
	case FieldExpiryDate:
		return f.ExpiryDate
	case FieldCVV:
		return f.CVV
	default:
		return ""
	}
}

// CardLast4 returns the last four digits of the card number.
func (f Form) CardLast4() string {
	digits := stripSpaces(f.CardNumber)
	if len(digits) < 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}
