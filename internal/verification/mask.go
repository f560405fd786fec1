package verification

import "strings"

// MaskPhone keeps the first two and last two characters of phone and
// replaces the rest with '*'. Values of four characters or fewer are fully masked.
func MaskPhone(phone string) string {
	runes := []rune(phone)
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:2]) + strings.Repeat("*", len(runes)-4) + string(runes[len(runes)-2:])
}
