// Package cards classifies payment card numbers by issuer network and
// formats card input for display.
package cards

import "strings"

// Network identifies the issuing payment scheme inferred from a card
// number's leading digits.
type Network string

const (
	NetworkVisa       Network = "visa"
	NetworkMastercard Network = "mastercard"
	NetworkAmex       Network = "amex"
	NetworkDiscover   Network = "discover"
	NetworkDiners     Network = "diners"
	NetworkJCB        Network = "jcb"
	// NetworkUnknown means no prefix rule matched yet.
	NetworkUnknown Network = ""
)

// CVVLength returns the expected security-code length for the network.
func (n Network) CVVLength() int {
	if n == NetworkAmex {
		return 4
	}
	return 3
}

// DisplayName returns the human-readable scheme name.
func (n Network) DisplayName() string {
	switch n {
	case NetworkVisa:
		return "Visa"
	case NetworkMastercard:
		return "Mastercard"
	case NetworkAmex:
		return "American Express"
	case NetworkDiscover:
		return "Discover"
	case NetworkDiners:
		return "Diners Club"
	case NetworkJCB:
		return "JCB"
	default:
		return ""
	}
}

// Detect classifies a card number by its numeric prefix. Spaces are
// ignored; rules are evaluated in precedence order and the first match
// wins. Unmatched input yields NetworkUnknown. Detection is recomputed
// on every keystroke, so partial prefixes shorter than a rule's width
// stay undetermined until enough digits arrive.
func Detect(number string) Network {
	d := strings.ReplaceAll(number, " ", "")
	if d == "" {
		return NetworkUnknown
	}

	switch {
	case strings.HasPrefix(d, "4"):
		return NetworkVisa

	// Mastercard: 51-55 or 2221-2720.
	case prefixInRange(d, "51", "55"),
		prefixInRange(d, "2221", "2229"),
		prefixInRange(d, "223", "229"),
		prefixInRange(d, "23", "26"),
		prefixInRange(d, "270", "271"),
		strings.HasPrefix(d, "2720"):
		return NetworkMastercard

	case strings.HasPrefix(d, "34"), strings.HasPrefix(d, "37"):
		return NetworkAmex

	// Discover: 6011, 622126-622925, 644-649, 65.
	case strings.HasPrefix(d, "6011"),
		prefixInRange(d, "622126", "622129"),
		prefixInRange(d, "62213", "62219"),
		prefixInRange(d, "6222", "6228"),
		prefixInRange(d, "62290", "62291"),
		prefixInRange(d, "622920", "622925"),
		prefixInRange(d, "644", "649"),
		strings.HasPrefix(d, "65"):
		return NetworkDiscover

	// Diners Club: 300-305, 36, 38.
	case prefixInRange(d, "300", "305"),
		strings.HasPrefix(d, "36"),
		strings.HasPrefix(d, "38"):
		return NetworkDiners

	// JCB: 3528-3589.
	case prefixInRange(d, "3528", "3529"),
		prefixInRange(d, "353", "358"):
		return NetworkJCB
	}

	return NetworkUnknown
}

// prefixInRange reports whether the leading len(lo) digits of d fall in
// [lo, hi]. lo and hi must have equal width, so a lexicographic compare
// is a numeric compare.
func prefixInRange(d, lo, hi string) bool {
	w := len(lo)
	if len(d) < w {
		return false
	}
	p := d[:w]
	return p >= lo && p <= hi
}
