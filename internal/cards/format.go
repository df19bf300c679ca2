package cards

import "strings"

// FormatNumber groups a card number's digits with single spaces for
// display. Amex uses the printed 4-6-5 grouping (capped at 15 digits);
// every other network groups in blocks of four regardless of length.
// Reformatting a previously formatted value yields the same string.
func FormatNumber(raw string, network Network) string {
	d := digitsOnly(raw)
	if d == "" {
		return ""
	}

	if network == NetworkAmex {
		if len(d) > 15 {
			d = d[:15]
		}
		groups := make([]string, 0, 3)
		groups = append(groups, take(d, 0, 4))
		if g := take(d, 4, 10); g != "" {
			groups = append(groups, g)
		}
		if g := take(d, 10, 15); g != "" {
			groups = append(groups, g)
		}
		return strings.Join(groups, " ")
	}

	var b strings.Builder
	for i := 0; i < len(d); i += 4 {
		if i > 0 {
			b.WriteByte(' ')
		}
		end := i + 4
		if end > len(d) {
			end = len(d)
		}
		b.WriteString(d[i:end])
	}
	return b.String()
}

// FormatExpiry normalizes expiry input toward MM/YY. Two or more digits
// get a slash after the month; anything beyond four digits is dropped.
// Below two digits the input is returned as-is.
func FormatExpiry(raw string) string {
	d := digitsOnly(raw)
	if len(d) < 2 {
		return d
	}
	if len(d) > 4 {
		d = d[:4]
	}
	return d[:2] + "/" + d[2:]
}

func take(s string, from, to int) string {
	if from >= len(s) {
		return ""
	}
	if to > len(s) {
		to = len(s)
	}
	return s[from:to]
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
