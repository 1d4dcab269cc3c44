package order

import (
	"net/url"
	"regexp"

	"github.com/masknetdesign/mercado-online/internal/model"
)

// DefaultWhatsAppNumber is used until the merchant saves a contact number.
const DefaultWhatsAppNumber = "5511999999999"

// numberPattern accepts digits only, 10 to 15 of them (country code plus
// area code plus subscriber number).
var numberPattern = regexp.MustCompile(`^\d{10,15}$`)

// ValidNumber reports whether s is an acceptable WhatsApp contact number.
// Checked before a number is ever saved as a setting.
func ValidNumber(s string) bool {
	return numberPattern.MatchString(s)
}

// ValidateNumber returns a validation error for an unacceptable number.
func ValidateNumber(s string) error {
	if !ValidNumber(s) {
		return model.ErrInvalidWhatsApp
	}
	return nil
}

// Link builds the wa.me deep link that opens a chat with number and the
// composed message pre-filled. URL encoding of the message happens here and
// nowhere else.
func Link(number, message string) string {
	u := url.URL{
		Scheme:   "https",
		Host:     "wa.me",
		Path:     "/" + number,
		RawQuery: url.Values{"text": {message}}.Encode(),
	}
	return u.String()
}
