// Package readability provides a deterministic English readability analyzer.
// It computes sentence, word and syllable statistics for raw text and derives
// the Flesch-Kincaid Grade Level and the Flesch Reading Ease score.
//
// Every function in this package is pure: no I/O, no shared mutable state.
// Analyze can be called concurrently from any number of goroutines.
//
// Example usage:
//
//	m := readability.Analyze("Cats sit. Dogs run.")
//	fmt.Println(m.SentenceCount, m.WordCount)        // 2 4
//	fmt.Println(readability.GradeLabel(m.FleschKincaidGrade)) // N/A
package readability

import (
	"math"
	"strconv"
)

// Formula coefficients.
const (
	gradeSentenceWeight = 0.39
	gradeSyllableWeight = 11.8
	gradeOffset         = 15.59

	easeBase           = 206.835
	easeSentenceWeight = 1.015
	easeSyllableWeight = 84.6

	// ComplexWordSyllables is the syllable count at which a word is complex.
	ComplexWordSyllables = 3

	minEase = 0.0
	maxEase = 100.0
)

// Metrics is an immutable snapshot of the readability statistics of a text.
// The JSON field names match the record consumed by the presentation layer.
type Metrics struct {
	// FleschKincaidGrade is the estimated U.S. school grade level, floored at 0.
	FleschKincaidGrade float64 `json:"fleschKincaidGrade"`

	// FleschReadingEase is the 0-100 reading ease score (higher is easier).
	FleschReadingEase float64 `json:"fleschReadingEase"`

	WordCount     int `json:"wordCount"`
	SentenceCount int `json:"sentenceCount"`

	// AvgSentenceLength is words per sentence rounded to one decimal.
	AvgSentenceLength float64 `json:"avgSentenceLength"`

	// ComplexWordCount is the number of words with three or more syllables.
	ComplexWordCount int `json:"complexWordCount"`
}

// IsZero reports whether m is the all-zero record returned for blank input.
func (m Metrics) IsZero() bool {
	return m == Metrics{}
}

// HasWords reports whether any word contributed to the scores.
func (m Metrics) HasWords() bool {
	return m.WordCount > 0
}

// MeetsTarget reports whether the text reaches the patient-education targets:
// grade TargetGrade or lower and reading ease TargetEase or higher.
// Text without words never meets the target.
func (m Metrics) MeetsTarget() bool {
	if !m.HasWords() {
		return false
	}
	return m.FleschKincaidGrade <= TargetGrade && m.FleschReadingEase >= TargetEase
}

// Analyze computes the readability metrics of text.
//
// Analyze is total: empty or whitespace-only input yields the zero Metrics,
// text without words keeps only its sentence count, and every ratio is
// guarded by the word count so no division by zero can happen.
func Analyze(text string) Metrics {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return Metrics{}
	}
	sentenceCount := len(sentences)

	words := Words(text)
	wordCount := len(words)
	if wordCount == 0 {
		return Metrics{SentenceCount: sentenceCount}
	}

	syllableCount := 0
	complexWordCount := 0
	for _, w := range words {
		s := CountSyllables(w)
		syllableCount += s
		if s >= ComplexWordSyllables {
			complexWordCount++
		}
	}

	avgSentenceLength := float64(wordCount) / float64(sentenceCount)
	avgSyllablesPerWord := float64(syllableCount) / float64(wordCount)

	grade := gradeSentenceWeight*avgSentenceLength +
		gradeSyllableWeight*avgSyllablesPerWord -
		gradeOffset

	ease := easeBase -
		easeSentenceWeight*avgSentenceLength -
		easeSyllableWeight*avgSyllablesPerWord

	return Metrics{
		// grade has a floor only; ease is clamped on both sides before rounding
		FleschKincaidGrade: math.Max(0, round1(grade)),
		FleschReadingEase:  round1(clamp(ease, minEase, maxEase)),
		WordCount:          wordCount,
		SentenceCount:      sentenceCount,
		AvgSentenceLength:  round1(avgSentenceLength),
		ComplexWordCount:   complexWordCount,
	}
}

// round1 rounds the exact binary value of v to one decimal place. A value
// stored as 2.0499999 rounds to 2.0 even though 2.05 was intended. Exact
// ties (odd multiples of 0.25) round away from zero.
func round1(v float64) float64 {
	if q := v * 4; q == math.Trunc(q) && math.Mod(q, 2) != 0 {
		// |v| = j/4 with j odd; the result is ceil(10j/4)/10.
		j := math.Abs(q)
		return math.Copysign(math.Ceil(j*10/4)/10, v)
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return r
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
