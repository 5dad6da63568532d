package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// PresetFile is the YAML document read from PRESETS_FILE.
//
//	presets:
//	  - name: simplify
//	    description: Grade 6 rewrite
//	    instruction: Simplify this text to a Grade 6 reading level.
//	    target_grade: 6
//	  - name: simpler
//	    instruction: Simplify this text further to a Grade 4 reading level.
//	    target_grade: 4
//	    chain: true
type PresetFile struct {
	Presets []PresetSpec `yaml:"presets"`
}

// PresetSpec describes one instruction preset.
type PresetSpec struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Instruction string  `yaml:"instruction"`
	TargetGrade float64 `yaml:"target_grade"`
	// Chain marks presets that rework the previous result and keep its language.
	Chain bool `yaml:"chain"`
	// Translate marks presets that require a target language.
	Translate bool `yaml:"translate"`
}

// LoadPresets reads and validates a preset file.
// The path comes from deployment configuration, not from requests.
func LoadPresets(path string) ([]PresetSpec, error) {
	// #nosec G304 -- path is provided by trusted configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}

	var file PresetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse presets file: %w", err)
	}

	if err := validatePresets(file.Presets); err != nil {
		return nil, fmt.Errorf("presets validation failed: %w", err)
	}
	return file.Presets, nil
}

func validatePresets(presets []PresetSpec) error {
	seen := make(map[string]bool, len(presets))
	for i, p := range presets {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return fmt.Errorf("preset %d: name is required", i)
		}
		if seen[name] {
			return fmt.Errorf("preset %q is defined twice", name)
		}
		seen[name] = true

		if strings.TrimSpace(p.Instruction) == "" {
			return fmt.Errorf("preset %q: instruction is required", name)
		}
		if p.TargetGrade < 0 || p.TargetGrade > 20 {
			return fmt.Errorf("preset %q: target_grade must be between 0 and 20", name)
		}
		if p.Chain && p.Translate {
			return fmt.Errorf("preset %q: chain and translate cannot both be set", name)
		}
	}
	return nil
}
