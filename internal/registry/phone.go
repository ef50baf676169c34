package registry

import (
	"strings"
)

// NormalizePhone strips formatting from a raw phone number, keeping only
// digits and a single leading plus sign when the original starts with one.
// Normalization is idempotent: normalizing an already-normalized number
// returns it unchanged.
func NormalizePhone(raw string) string {
	trimmed := strings.TrimSpace(raw)

	var b strings.Builder
	b.Grow(len(trimmed))

	if strings.HasPrefix(trimmed, "+") {
		b.WriteByte('+')
	}

	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// digitCount returns the number of digit characters in a phone number
func digitCount(phone string) int {
	count := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			count++
		}
	}
	return count
}
