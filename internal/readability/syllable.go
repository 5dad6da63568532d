package readability

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// silentEndingPattern strips one trailing silent-e style ending.
	// The excluded class includes 'l', so "tables" keeps its "es".
	silentEndingPattern = regexp.MustCompile(`(?:[^laeiouy]es|ed|[^laeiouy]e)$`)

	leadingYPattern = regexp.MustCompile(`^y`)

	// vowelGroupPattern counts runs of one or two vowel-like letters.
	vowelGroupPattern = regexp.MustCompile(`[aeiouy]{1,2}`)
)

// CountSyllables estimates the number of syllables in a single word.
//
// The estimate is a heuristic with no dictionary or exception list:
//  1. lowercase and trim the word
//  2. words of at most three letters count as one syllable
//  3. strip one trailing "es", "ed" or "e" ending (single pass)
//  4. strip one leading "y", which acts as a consonant there
//  5. count vowel groups of one or two letters
//
// Every non-empty word has at least one syllable.
func CountSyllables(word string) int {
	word = strings.ToLower(trim(word))

	n := utf8.RuneCountInString(word)
	if n == 0 {
		return 0
	}
	if n <= 3 {
		return 1
	}

	word = silentEndingPattern.ReplaceAllString(word, "")
	word = leadingYPattern.ReplaceAllString(word, "")

	count := len(vowelGroupPattern.FindAllString(word, -1))
	if count == 0 {
		return 1
	}
	return max(1, count)
}
