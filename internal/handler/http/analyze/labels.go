package analyze

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"healthinfo-simplifier/internal/handler/http/respond"
	"healthinfo-simplifier/internal/readability"
)

// LabelsHandler serves GET /labels?grade=&ease=, mapping scores to their
// display bands. At least one parameter is required.
type LabelsHandler struct{}

func (LabelsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fields := make(map[string]string)
	var out LabelsResponse

	if raw := q.Get("grade"); raw != "" {
		if g, ok := parseScore(raw); ok {
			out.Grade = &g
			out.GradeLabel = readability.GradeLabel(g)
		} else {
			fields["grade"] = "must be a number"
		}
	}
	if raw := q.Get("ease"); raw != "" {
		if e, ok := parseScore(raw); ok {
			out.Ease = &e
			out.EaseLabel = readability.EaseLabel(e)
		} else {
			fields["ease"] = "must be a number"
		}
	}

	if len(fields) > 0 {
		respond.ValidationFailed(w, fields)
		return
	}
	if out.Grade == nil && out.Ease == nil {
		respond.Error(w, http.StatusBadRequest, errors.New("grade or ease is required"))
		return
	}
	respond.JSON(w, http.StatusOK, out)
}

func parseScore(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
