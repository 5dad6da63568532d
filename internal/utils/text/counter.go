// Package text provides rune-aware helpers for measuring and trimming text.
package text

import "unicode/utf8"

// CountRunes counts the Unicode characters in s rather than its bytes, so
// accented and non-Latin text is measured the way a reader sees it.
//
//	CountRunes("hello")  // 5
//	CountRunes("niño")   // 4
//	CountRunes("")       // 0
func CountRunes(s string) int {
	return utf8.RuneCountInString(s)
}

// Truncate shortens s to at most max runes, appending an ellipsis when
// anything was cut. The result never splits a multi-byte character.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "..."
}
