// Package simplify provides the HTTP handlers for rewriting text, listing
// presets and languages, and browsing rewrite history.
package simplify

import (
	"time"

	"healthinfo-simplifier/internal/readability"
	simplifyUC "healthinfo-simplifier/internal/usecase/simplify"
)

// Request is the body of POST /simplify.
type Request struct {
	Text        string `json:"text" validate:"max=100000"`
	Preset      string `json:"preset" validate:"max=64"`
	Instruction string `json:"instruction" validate:"max=2000"`
	UseBullets  bool   `json:"use_bullets"`
	Language    string `json:"language" validate:"max=64"`
	PreviousID  string `json:"previous_id" validate:"omitempty,uuid"`
}

func (r Request) input() simplifyUC.Input {
	return simplifyUC.Input{
		Text:        r.Text,
		Preset:      r.Preset,
		Instruction: r.Instruction,
		UseBullets:  r.UseBullets,
		Language:    r.Language,
		PreviousID:  r.PreviousID,
	}
}

// DTO is a completed rewrite.
type DTO struct {
	ID          string                 `json:"id"`
	Preset      string                 `json:"preset"`
	Instruction string                 `json:"instruction"`
	Language    string                 `json:"language"`
	Provider    string                 `json:"provider"`
	Original    string                 `json:"original"`
	Result      string                 `json:"result"`
	Before      readability.Report     `json:"before"`
	After       readability.Report     `json:"after"`
	Comparison  readability.Comparison `json:"comparison"`
	Warnings    []string               `json:"warnings,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
}

func toDTO(o *simplifyUC.Output) DTO {
	return DTO{
		ID:          o.ID,
		Preset:      o.Preset,
		Instruction: o.Instruction,
		Language:    o.Language,
		Provider:    o.Provider,
		Original:    o.Original,
		Result:      o.Result,
		Before:      o.Before,
		After:       o.After,
		Comparison:  o.Comparison,
		Warnings:    o.Warnings,
		CreatedAt:   o.CreatedAt,
	}
}

// HistoryResponse is the body of GET /history, newest first.
type HistoryResponse struct {
	Items []DTO `json:"items"`
	Count int   `json:"count"`
}

// PresetsResponse is the body of GET /presets.
type PresetsResponse struct {
	Provider string              `json:"provider"`
	Presets  []simplifyUC.Preset `json:"presets"`
}

// LanguagesResponse is the body of GET /languages.
type LanguagesResponse struct {
	Default   string   `json:"default"`
	Languages []string `json:"languages"`
}
