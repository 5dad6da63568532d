package simplify

import (
	"net/http"

	"healthinfo-simplifier/internal/handler/http/bind"
	"healthinfo-simplifier/internal/handler/http/respond"
	simplifyUC "healthinfo-simplifier/internal/usecase/simplify"
)

// Handler serves POST /simplify.
type Handler struct{ Svc *simplifyUC.Service }

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	if !bind.JSON(w, r, &req) {
		return
	}

	out, err := h.Svc.Process(r.Context(), req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(out))
}
