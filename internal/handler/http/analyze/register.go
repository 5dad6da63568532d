package analyze

import (
	"net/http"

	analyzeUC "healthinfo-simplifier/internal/usecase/analyze"
)

// Register adds the analysis routes to mux.
func Register(mux *http.ServeMux, svc *analyzeUC.Service) {
	mux.Handle("POST /analyze", Handler{svc})
	mux.Handle("POST /analyze/batch", BatchHandler{svc})
	mux.Handle("GET /labels", LabelsHandler{})
}
