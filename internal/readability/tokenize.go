package readability

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// sentencePattern matches a run of non-terminators closed by one or more
	// of '.', '!' or '?'.
	sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+`)

	// wordPattern matches ASCII letter runs, optionally joined once by an
	// ASCII apostrophe so contractions and possessives stay one token.
	// A typographic apostrophe (U+2019) splits the word.
	wordPattern = regexp.MustCompile(`\b[a-zA-Z]+(?:'[a-zA-Z]+)?\b`)
)

// trim strips the ECMAScript white space and line terminator set: every Zs
// character, tab, vertical tab, form feed, BOM, LF, CR, U+2028 and U+2029.
// Unlike strings.TrimSpace it keeps U+0085 and strips U+FEFF.
func trim(text string) string {
	return strings.TrimFunc(text, isBlank)
}

func isBlank(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\ufeff':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// SplitSentences segments text into sentence fragments.
//
// The heuristic does not know about abbreviations, decimal numbers or quoted
// punctuation. When the trimmed text contains no terminated fragment at all,
// the whole trimmed text is returned as a single sentence. Blank text yields nil.
func SplitSentences(text string) []string {
	trimmed := trim(text)
	if trimmed == "" {
		return nil
	}

	sentences := sentencePattern.FindAllString(trimmed, -1)
	if len(sentences) == 0 {
		return []string{trimmed}
	}
	return sentences
}

// Words extracts the ordered word tokens of text.
// Digits, punctuation and standalone symbols never form words.
func Words(text string) []string {
	return wordPattern.FindAllString(trim(text), -1)
}
