// Package entity defines the domain records of the simplifier: rewrites kept
// in history, target languages and the language detected in a text.
package entity

import (
	"strings"
	"time"

	"healthinfo-simplifier/internal/readability"
)

// Transformation is one completed rewrite: the text that was sent, what came
// back, and the readability of both.
type Transformation struct {
	ID            string              `json:"id"`
	Original      string              `json:"original"`
	Result        string              `json:"result"`
	InputMetrics  readability.Metrics `json:"inputMetrics"`
	OutputMetrics readability.Metrics `json:"outputMetrics"`
	Language      string              `json:"language"`
	Preset        string              `json:"preset,omitempty"`
	Instruction   string              `json:"instruction"`
	Provider      string              `json:"provider"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// Validate checks the fields every stored transformation must have.
func (t *Transformation) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return &ValidationError{Field: "id", Message: "id is required"}
	}
	if strings.TrimSpace(t.Original) == "" {
		return &ValidationError{Field: "original", Message: "original text is required"}
	}
	if strings.TrimSpace(t.Instruction) == "" {
		return &ValidationError{Field: "instruction", Message: "instruction is required"}
	}
	if t.CreatedAt.IsZero() {
		return &ValidationError{Field: "createdAt", Message: "creation time is required"}
	}
	return nil
}

// Comparison returns how the rewrite changed readability.
func (t *Transformation) Comparison() readability.Comparison {
	return readability.Compare(t.InputMetrics, t.OutputMetrics)
}
