package simplify

import (
	"net/http"

	"healthinfo-simplifier/internal/domain/entity"
	"healthinfo-simplifier/internal/handler/http/respond"
	simplifyUC "healthinfo-simplifier/internal/usecase/simplify"
)

// PresetsHandler serves GET /presets.
type PresetsHandler struct{ Svc *simplifyUC.Service }

func (h PresetsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, PresetsResponse{
		Provider: h.Svc.Provider(),
		Presets:  h.Svc.Presets(),
	})
}

// LanguagesHandler serves GET /languages.
type LanguagesHandler struct{}

func (LanguagesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	langs := make([]string, 0, len(entity.SupportedLanguages)+2)
	langs = append(langs, entity.LanguageOriginal, entity.LanguageEnglish)
	langs = append(langs, entity.SupportedLanguages...)
	respond.JSON(w, http.StatusOK, LanguagesResponse{
		Default:   entity.LanguageOriginal,
		Languages: langs,
	})
}
