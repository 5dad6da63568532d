package simplify

import (
	"net/http"

	simplifyUC "healthinfo-simplifier/internal/usecase/simplify"
)

// Register adds the rewrite and history routes to mux. limit, when not nil,
// wraps POST /simplify, the only route that calls the LLM provider.
func Register(mux *http.ServeMux, svc *simplifyUC.Service, limit func(http.Handler) http.Handler) {
	var process http.Handler = Handler{svc}
	if limit != nil {
		process = limit(process)
	}
	mux.Handle("POST /simplify", process)
	mux.Handle("GET /presets", PresetsHandler{svc})
	mux.Handle("GET /languages", LanguagesHandler{})
	mux.Handle("GET /history", ListHistoryHandler{svc})
	mux.Handle("GET /history/{id}", GetHistoryHandler{svc})
	mux.Handle("DELETE /history", ClearHistoryHandler{svc})
}
