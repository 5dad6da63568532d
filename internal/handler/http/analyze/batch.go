package analyze

import (
	"net/http"

	"healthinfo-simplifier/internal/handler/http/bind"
	"healthinfo-simplifier/internal/handler/http/respond"
	analyzeUC "healthinfo-simplifier/internal/usecase/analyze"
)

// BatchHandler serves POST /analyze/batch. A failing document is reported
// in its item; the response is 200 unless the batch itself is rejected.
type BatchHandler struct{ Svc *analyzeUC.Service }

func (h BatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if !bind.JSON(w, r, &req) {
		return
	}

	docs := make([]analyzeUC.Document, len(req.Documents))
	for i, d := range req.Documents {
		docs[i] = analyzeUC.Document{ID: d.ID, Input: d.input()}
	}

	items, err := h.Svc.AnalyzeBatch(r.Context(), docs)
	if err != nil {
		writeError(w, err)
		return
	}

	out := BatchResponse{Items: make([]BatchItemDTO, len(items))}
	for i, it := range items {
		out.Items[i].ID = it.ID
		if it.Err != nil {
			out.Items[i].Error = publicMessage(it.Err)
			out.Failed++
			continue
		}
		dto := toDTO(it.Result)
		out.Items[i].Result = &dto
		out.Succeeded++
	}
	respond.JSON(w, http.StatusOK, out)
}
