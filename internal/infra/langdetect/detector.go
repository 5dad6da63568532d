// Package langdetect identifies the language of a text with
// github.com/pemistahl/lingua-go. Readability formulas are calibrated for
// English, so callers use the result to warn about other languages.
package langdetect

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pemistahl/lingua-go"

	"healthinfo-simplifier/internal/domain/entity"
	envconfig "healthinfo-simplifier/pkg/config"
)

// candidates are English plus the translation targets users can pick.
var candidates = []lingua.Language{
	lingua.English,
	lingua.Arabic,
	lingua.Bengali,
	lingua.Bokmal,
	lingua.Chinese,
	lingua.Danish,
	lingua.Dutch,
	lingua.Finnish,
	lingua.French,
	lingua.German,
	lingua.Greek,
	lingua.Hebrew,
	lingua.Hindi,
	lingua.Indonesian,
	lingua.Italian,
	lingua.Japanese,
	lingua.Korean,
	lingua.Polish,
	lingua.Portuguese,
	lingua.Russian,
	lingua.Spanish,
	lingua.Swedish,
	lingua.Tagalog,
	lingua.Thai,
	lingua.Turkish,
	lingua.Vietnamese,
}

// Config controls the detector.
type Config struct {
	// MinLetters is the number of letters below which detection is skipped
	// and UnknownLanguage is returned. Default: 12.
	MinLetters int

	// MinConfidence is the confidence below which the result is reported
	// as UnknownLanguage. Default: 0.5.
	MinConfidence float64

	// Preload loads all language models at construction instead of on
	// first use. Default: false.
	Preload bool
}

// DefaultConfig returns the default detector configuration.
func DefaultConfig() Config {
	return Config{MinLetters: 12, MinConfidence: 0.5}
}

// LoadConfigFromEnv reads LANGDETECT_MIN_LETTERS, LANGDETECT_MIN_CONFIDENCE
// and LANGDETECT_PRELOAD.
func LoadConfigFromEnv() (Config, error) {
	def := DefaultConfig()
	cfg := Config{
		MinLetters:    envconfig.GetEnvInt("LANGDETECT_MIN_LETTERS", def.MinLetters),
		MinConfidence: envconfig.GetEnvFloat("LANGDETECT_MIN_CONFIDENCE", def.MinConfidence),
		Preload:       envconfig.GetEnvBool("LANGDETECT_PRELOAD", def.Preload),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks configuration correctness.
func (c Config) Validate() error {
	if c.MinLetters < 0 {
		return fmt.Errorf("LANGDETECT_MIN_LETTERS must be non-negative, got %d", c.MinLetters)
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("LANGDETECT_MIN_CONFIDENCE must be between 0 and 1, got %v", c.MinConfidence)
	}
	return nil
}

// Detector is safe for concurrent use.
type Detector struct {
	detector lingua.LanguageDetector
	cfg      Config
}

// NewDetector builds a detector for English and the supported translation
// languages.
func NewDetector(cfg Config) *Detector {
	builder := lingua.NewLanguageDetectorBuilder().FromLanguages(candidates...)
	if cfg.Preload {
		builder = builder.WithPreloadedLanguageModels()
	}
	return &Detector{detector: builder.Build(), cfg: cfg}
}

// Detect returns the most likely language of text, or UnknownLanguage when
// the text is too short or no language is confident enough.
func (d *Detector) Detect(text string) entity.DetectedLanguage {
	if countLetters(text) < d.cfg.MinLetters {
		return entity.UnknownLanguage
	}

	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return entity.UnknownLanguage
	}

	confidence := d.detector.ComputeLanguageConfidence(text, lang)
	if confidence < d.cfg.MinConfidence {
		return entity.UnknownLanguage
	}

	return entity.DetectedLanguage{
		Name:       displayName(lang),
		ISOCode:    strings.ToLower(lang.IsoCode639_1().String()),
		Confidence: confidence,
		English:    lang == lingua.English,
	}
}

// displayName maps lingua names onto the names used for translation targets.
func displayName(lang lingua.Language) string {
	switch lang {
	case lingua.Bokmal:
		return "Norwegian"
	default:
		name := strings.ToLower(lang.String())
		return strings.ToUpper(name[:1]) + name[1:]
	}
}

func countLetters(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}
