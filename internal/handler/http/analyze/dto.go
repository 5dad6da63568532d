// Package analyze provides the HTTP handlers for readability analysis:
// single documents, batches and label lookup.
package analyze

import (
	"healthinfo-simplifier/internal/domain/entity"
	"healthinfo-simplifier/internal/readability"
	analyzeUC "healthinfo-simplifier/internal/usecase/analyze"
)

// Request is the body of POST /analyze. At most one of Text, HTML and URL
// may be set; an empty body field set analyzes blank text.
type Request struct {
	Text string `json:"text"`
	HTML string `json:"html" validate:"omitempty,excluded_with=URL"`
	URL  string `json:"url" validate:"omitempty,http_url,max=2048,excluded_with=Text"`
}

func (r Request) input() analyzeUC.Input {
	return analyzeUC.Input{Text: r.Text, HTML: r.HTML, URL: r.URL}
}

// BatchDocument is one entry of a batch request.
type BatchDocument struct {
	ID   string `json:"id" validate:"max=128"`
	Text string `json:"text"`
	HTML string `json:"html" validate:"omitempty,excluded_with=URL"`
	URL  string `json:"url" validate:"omitempty,http_url,max=2048,excluded_with=Text"`
}

func (d BatchDocument) input() analyzeUC.Input {
	return analyzeUC.Input{Text: d.Text, HTML: d.HTML, URL: d.URL}
}

// BatchRequest is the body of POST /analyze/batch.
type BatchRequest struct {
	Documents []BatchDocument `json:"documents" validate:"required,min=1,dive"`
}

// DTO is the readability report of one document.
type DTO struct {
	Source      string                   `json:"source"`
	URL         string                   `json:"url,omitempty"`
	Title       string                   `json:"title,omitempty"`
	Excerpt     string                   `json:"excerpt"`
	Metrics     readability.Metrics      `json:"metrics"`
	GradeLabel  string                   `json:"gradeLabel"`
	EaseLabel   string                   `json:"easeLabel"`
	MeetsTarget bool                     `json:"meetsTarget"`
	Language    *entity.DetectedLanguage `json:"language,omitempty"`
	Warnings    []string                 `json:"warnings,omitempty"`
}

func toDTO(res *analyzeUC.Result) DTO {
	return DTO{
		Source:      res.Source,
		URL:         res.URL,
		Title:       res.Title,
		Excerpt:     res.Excerpt,
		Metrics:     res.Report.Metrics,
		GradeLabel:  res.Report.GradeLabel,
		EaseLabel:   res.Report.EaseLabel,
		MeetsTarget: res.Report.MeetsTarget,
		Language:    res.Language,
		Warnings:    res.Warnings,
	}
}

// BatchItemDTO is the outcome for one batch document. Exactly one of
// Result and Error is set.
type BatchItemDTO struct {
	ID     string `json:"id,omitempty"`
	Result *DTO   `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// BatchResponse lists batch outcomes in request order.
type BatchResponse struct {
	Items     []BatchItemDTO `json:"items"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
}

// LabelsResponse is the body of GET /labels. Only the requested scores are
// present.
type LabelsResponse struct {
	Grade      *float64 `json:"grade,omitempty"`
	GradeLabel string   `json:"gradeLabel,omitempty"`
	Ease       *float64 `json:"ease,omitempty"`
	EaseLabel  string   `json:"easeLabel,omitempty"`
}
