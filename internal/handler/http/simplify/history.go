package simplify

import (
	"net/http"
	"strconv"

	"healthinfo-simplifier/internal/handler/http/pathutil"
	"healthinfo-simplifier/internal/handler/http/respond"
	simplifyUC "healthinfo-simplifier/internal/usecase/simplify"
)

// ListHistoryHandler serves GET /history?limit=n. A missing or zero limit
// returns every entry.
type ListHistoryHandler struct{ Svc *simplifyUC.Service }

func (h ListHistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respond.ValidationFailed(w, map[string]string{"limit": "must be a non-negative integer"})
			return
		}
		limit = n
	}

	items, err := h.Svc.History(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	out := HistoryResponse{Items: make([]DTO, 0, len(items)), Count: len(items)}
	for _, it := range items {
		out.Items = append(out.Items, toDTO(it))
	}
	respond.JSON(w, http.StatusOK, out)
}

// GetHistoryHandler serves GET /history/{id}.
type GetHistoryHandler struct{ Svc *simplifyUC.Service }

func (h GetHistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.ValidationFailed(w, map[string]string{"id": "must be a valid UUID"})
		return
	}

	out, err := h.Svc.Restore(r.Context(), id.String())
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(out))
}

// ClearHistoryHandler serves DELETE /history.
type ClearHistoryHandler struct{ Svc *simplifyUC.Service }

func (h ClearHistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.ClearHistory(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
