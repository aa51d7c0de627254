// internal/app/phone.go
package app

import (
	"strings"

	"guardian_notifier/internal/domain/notification"
)

const countryCode = "20"

// Domestic mobile prefixes that are rewritten to international form.
var localPrefixes = []string{"012", "011", "010", "015"}

// NormalizePhone turns a raw guardian phone into the digit-only form the channel addresses.
// Numbers that are neither domestic nor already prefixed with the country code are rejected.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) < 3 {
		return "", notification.ErrInvalidPhone
	}

	if strings.HasPrefix(digits, countryCode) {
		return digits, nil
	}
	for _, p := range localPrefixes {
		if strings.HasPrefix(digits, p) {
			return countryCode + digits[1:], nil
		}
	}
	return "", notification.ErrMissingCountryCode
}
