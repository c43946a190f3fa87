package ui

import (
	"unicode"
	"unicode/utf8"
)

// QuickCharInString is used for finding the "quick char" in a string. The rune
// is always made lowercase. A rune of value zero is returned if the index was
// less than zero, or greater or equal to, the number of runes in s.
func QuickCharInString(s string, idx int) rune {
	if idx < 0 {
		return 0
	}

	var runeIdx int
	for i := 0; i < len(s); runeIdx++ { // i is a byte index
		r, size := utf8.DecodeRuneInString(s[i:])
		if runeIdx == idx {
			return unicode.ToLower(r)
		}
		i += size
	}
	return 0
}

// Clamp keeps `v` within `a` and `b` numerically. `a` must be smaller than `b`.
// Returns clamped `v`.
func Clamp(v, a, b int) int {
	return max(a, min(v, b))
}
