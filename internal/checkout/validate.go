package checkout

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/championmethod/funnel-platform/internal/cards"
)

// RequiredError is attached to empty fields at submit time.
const RequiredError = "This field is required"

var (
	nameRe   = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s'-]+$`)
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitsRe = regexp.MustCompile(`^\d+$`)
	expiryRe = regexp.MustCompile(`^\d{2}/\d{2}$`)
	zipRe    = regexp.MustCompile(`^[a-zA-Z0-9\s-]+$`)
)

// Validate reports whether a field value passes its rule. The CVV rule
// depends on the currently detected network (4 digits for Amex, 3
// otherwise) and must be re-evaluated whenever the card number changes.
// Expiry validity is judged against the supplied reference time.
func Validate(field, value string, network cards.Network, now time.Time) bool {
	switch field {
	case FieldFirstName, FieldLastName:
		return utf8.RuneCountInString(value) >= 2 && nameRe.MatchString(value)
	case FieldEmail:
		return emailRe.MatchString(value)
	case FieldCardNumber:
		return validCardNumber(value)
	case FieldCardHolder:
		return utf8.RuneCountInString(value) >= 3 && nameRe.MatchString(value) && strings.Contains(strings.TrimSpace(value), " ")
	case FieldExpiryDate:
		return validExpiry(value, now)
	case FieldCVV:
		return len(value) == network.CVVLength() && digitsRe.MatchString(value)
	case FieldZipCode:
		return len(value) >= 3 && zipRe.MatchString(value)
	default:
		return true
	}
}

// ErrorFor returns the inline error for an invalid field. Rules are
// checked in a fixed precedence order and the first failing one names
// the error. Callers treat empty values separately (RequiredError at
// submit time only).
func ErrorFor(field, value string, network cards.Network, now time.Time) string {
	if value == "" {
		return RequiredError
	}

	switch field {
	case FieldFirstName, FieldLastName:
		// Rune count, not byte length: nameRe admits accented letters.
		if utf8.RuneCountInString(value) < 2 {
			return "Must be at least 2 characters"
		}
		if !nameRe.MatchString(value) {
			return "Only letters allowed"
		}
	case FieldEmail:
		if !emailRe.MatchString(value) {
			return "Invalid email address"
		}
	case FieldCardNumber:
		cleaned := strings.ReplaceAll(value, " ", "")
		if len(cleaned) < 13 {
			return "Card number too short"
		}
		if !digitsRe.MatchString(cleaned) {
			return "Only numbers allowed"
		}
	case FieldCardHolder:
		if utf8.RuneCountInString(value) < 3 {
			return "Name too short"
		}
		if !nameRe.MatchString(value) {
			return "Only letters allowed"
		}
		if !strings.Contains(strings.TrimSpace(value), " ") {
			return "Enter full name (first and last)"
		}
	case FieldExpiryDate:
		if !expiryRe.MatchString(value) {
			return "Use MM/YY format"
		}
		month, year := splitExpiry(value)
		if month < 1 || month > 12 {
			return "Invalid month"
		}
		if expired(month, year, now) {
			return "Card expired"
		}
	case FieldCVV:
		expected := network.CVVLength()
		if len(value) != expected {
			return fmt.Sprintf("Must be %d digits", expected)
		}
		if !digitsRe.MatchString(value) {
			return "Only numbers allowed"
		}
	case FieldZipCode:
		if len(value) < 3 {
			return "Too short"
		}
		if !zipRe.MatchString(value) {
			return "Invalid format"
		}
	}
	return ""
}

// ValidateAll re-validates every field in FieldOrder. Empty fields get
// RequiredError; non-empty invalid fields get their specific error.
// firstInvalid names the field the UI should scroll to and focus, or
// "" when the form is clean.
func ValidateAll(f *Form, network cards.Network, now time.Time) (results map[string]FieldResult, firstInvalid string) {
	results = make(map[string]FieldResult, len(FieldOrder))
	for _, field := range FieldOrder {
		value := f.Value(field)
		valid := value != "" && Validate(field, value, network, now)
		res := FieldResult{Valid: valid}
		if !valid {
			res.Error = ErrorFor(field, value, network, now)
			if firstInvalid == "" {
				firstInvalid = field
			}
		}
		results[field] = res
	}
	return results, firstInvalid
}

func validCardNumber(value string) bool {
	cleaned := strings.ReplaceAll(value, " ", "")
	return len(cleaned) >= 13 && len(cleaned) <= 19 && digitsRe.MatchString(cleaned)
}

func validExpiry(value string, now time.Time) bool {
	if !expiryRe.MatchString(value) {
		return false
	}
	month, year := splitExpiry(value)
	if month < 1 || month > 12 {
		return false
	}
	return !expired(month, year, now)
}

// expired compares (year, month) against the reference time truncated
// to a two-digit year.
func expired(month, year int, now time.Time) bool {
	currentYear := now.Year() % 100
	currentMonth := int(now.Month())
	return year < currentYear || (year == currentYear && month < currentMonth)
}

func splitExpiry(value string) (month, year int) {
	parts := strings.SplitN(value, "/", 2)
	month, _ = strconv.Atoi(parts[0])
	year, _ = strconv.Atoi(parts[1])
	return month, year
}
