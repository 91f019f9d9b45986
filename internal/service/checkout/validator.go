package checkout

import (
	"regexp"
	"sort"
	"strings"
)

// FormErrors maps each invalid field to a message; valid fields are absent.
type FormErrors map[Field]string

// ValidationError is returned by Submit when the form has invalid fields.
type ValidationError struct {
	Errors FormErrors
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)
	return "invalid checkout form: " + strings.Join(fields, ", ")
}

type rule struct {
	field    Field
	required string
	valid    func(string) bool
	invalid  string
}

var (
	emailPattern  = regexp.MustCompile(`\S+@\S+\.\S+`)
	phonePattern  = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)
	zipPattern    = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	cardPattern   = regexp.MustCompile(`^\d{16}$`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvPattern    = regexp.MustCompile(`^\d{3,4}$`)
)

var rules = []rule{
	{field: FieldEmail, required: "Email is required", valid: emailPattern.MatchString, invalid: "Please enter a valid email address"},
	{field: FieldFirstName, required: "First name is required"},
	{field: FieldLastName, required: "Last name is required"},
	{field: FieldPhone, required: "Phone number is required", valid: phonePattern.MatchString, invalid: "Please enter a valid phone number"},
	{field: FieldAddress, required: "Address is required"},
	{field: FieldCity, required: "City is required"},
	{field: FieldState, required: "State is required"},
	{field: FieldZipCode, required: "ZIP code is required", valid: zipPattern.MatchString, invalid: "Please enter a valid ZIP code"},
	{field: FieldCountry, required: "Country is required"},
	{field: FieldCardNumber, required: "Card number is required", valid: func(v string) bool { return cardPattern.MatchString(stripSpaces(v)) }, invalid: "Please enter a valid card number"},
	{field: FieldCardName, required: "Cardholder name is required"},
	{field: FieldExpiryDate, required: "Expiry date is required", valid: expiryPattern.MatchString, invalid: "Please enter a valid expiry date (MM/YY)"},
	{field: FieldCVV, required: "CVV is required", valid: cvvPattern.MatchString, invalid: "Please enter a valid CVV"},
}

// Validate checks every field of f and reports all failures. It has no side effects.
func Validate(f Form) FormErrors {
	errs := FormErrors{}
	for _, r := range rules {
		v := f.Value(r.field)
		if strings.TrimSpace(v) == "" {
			errs[r.field] = r.required
			continue
		}
		if r.valid != nil && !r.valid(v) {
			errs[r.field] = r.invalid
		}
	}
	return errs
}
