package simplify

import (
	"strings"

	"healthinfo-simplifier/internal/config"
)

// Built-in preset names.
const (
	PresetSimplify  = "simplify"
	PresetSimpler   = "simpler"
	PresetComplex   = "complex"
	PresetTranslate = "translate"

	// PresetCustom labels rewrites driven by a caller-supplied instruction.
	PresetCustom = "custom"
)

const grade6Instruction = "Simplify this text to a Grade 6 reading level. Use simple vocabulary and short sentences."

// Preset is a named rewrite instruction.
type Preset struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Instruction string  `json:"instruction"`
	TargetGrade float64 `json:"targetGrade,omitempty"`
	// Chain presets rework a previous result and keep its language.
	Chain bool `json:"chain,omitempty"`
	// Translate presets require a translation target.
	Translate bool `json:"translate,omitempty"`
}

// DefaultPresets returns the built-in presets.
func DefaultPresets() []Preset {
	return []Preset{
		{
			Name:        PresetSimplify,
			Description: "Rewrite at a Grade 6 reading level",
			Instruction: grade6Instruction,
			TargetGrade: 6,
		},
		{
			Name:        PresetSimpler,
			Description: "Simplify a previous result further, to Grade 4",
			Instruction: "Simplify this text further to a Grade 4 reading level. Use very basic vocabulary and very short sentences. Explain complex terms simply.",
			TargetGrade: 4,
			Chain:       true,
		},
		{
			Name:        PresetComplex,
			Description: "Rework a previous result at a Grade 9-10 level with more detail",
			Instruction: "Rewrite this text to a Grade 9-10 level. Maintain professional medical terminology but ensure it is clearly explained. Provide more detail.",
			TargetGrade: 10,
			Chain:       true,
		},
		{
			Name:        PresetTranslate,
			Description: "Rewrite at a Grade 6 reading level and translate",
			Instruction: grade6Instruction,
			TargetGrade: 6,
			Translate:   true,
		},
	}
}

// PresetsFromSpecs converts presets loaded from a YAML file.
func PresetsFromSpecs(specs []config.PresetSpec) []Preset {
	out := make([]Preset, 0, len(specs))
	for _, s := range specs {
		out = append(out, Preset{
			Name:        strings.TrimSpace(s.Name),
			Description: s.Description,
			Instruction: strings.TrimSpace(s.Instruction),
			TargetGrade: s.TargetGrade,
			Chain:       s.Chain,
			Translate:   s.Translate,
		})
	}
	return out
}

// MergePresets returns base with overrides applied. An override replaces
// the base preset of the same name; new names are appended in order.
func MergePresets(base, overrides []Preset) []Preset {
	out := make([]Preset, len(base), len(base)+len(overrides))
	copy(out, base)

	index := make(map[string]int, len(out))
	for i, p := range out {
		index[p.Name] = i
	}
	for _, p := range overrides {
		if i, ok := index[p.Name]; ok {
			out[i] = p
			continue
		}
		index[p.Name] = len(out)
		out = append(out, p)
	}
	return out
}
