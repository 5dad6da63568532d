package entity

import "strings"

const (
	// LanguageOriginal keeps the rewrite in the language of the input.
	LanguageOriginal = "Original"
	// LanguageEnglish is treated like LanguageOriginal: no translation step.
	LanguageEnglish = "English"
)

// SupportedLanguages lists the translation targets offered to users.
var SupportedLanguages = []string{
	"French",
	"Spanish",
	"Chinese (Simplified)",
	"Chinese (Traditional)",
	"Vietnamese",
	"Tagalog",
	"Arabic",
	"Portuguese (Brazil)",
	"Portuguese (Portugal)",
	"German",
	"Italian",
	"Japanese",
	"Korean",
	"Russian",
	"Hindi",
	"Bengali",
	"Turkish",
	"Polish",
	"Dutch",
	"Greek",
	"Hebrew",
	"Swedish",
	"Norwegian",
	"Danish",
	"Finnish",
	"Thai",
	"Indonesian",
}

// NormalizeLanguage trims lang and maps "" to LanguageOriginal.
func NormalizeLanguage(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return LanguageOriginal
	}
	return lang
}

// IsTranslation reports whether a rewrite into lang must also translate.
func IsTranslation(lang string) bool {
	lang = NormalizeLanguage(lang)
	return lang != LanguageOriginal && lang != LanguageEnglish
}

// IsSupportedLanguage reports whether lang is Original, English or one of
// the given targets. Matching ignores case.
func IsSupportedLanguage(lang string, targets []string) bool {
	lang = NormalizeLanguage(lang)
	if !IsTranslation(lang) {
		return true
	}
	for _, l := range targets {
		if strings.EqualFold(l, lang) {
			return true
		}
	}
	return false
}

// DetectedLanguage is the language identified in a text.
type DetectedLanguage struct {
	Name       string  `json:"name"`
	ISOCode    string  `json:"isoCode,omitempty"`
	Confidence float64 `json:"confidence"`
	English    bool    `json:"english"`
}

// UnknownLanguage is reported when detection has no reliable answer.
var UnknownLanguage = DetectedLanguage{Name: "Unknown"}
