package analyze

import (
	"net/http"

	"healthinfo-simplifier/internal/handler/http/bind"
	"healthinfo-simplifier/internal/handler/http/respond"
	analyzeUC "healthinfo-simplifier/internal/usecase/analyze"
)

// Handler serves POST /analyze.
type Handler struct{ Svc *analyzeUC.Service }

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	if !bind.JSON(w, r, &req) {
		return
	}

	res, err := h.Svc.Analyze(r.Context(), req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(res))
}
