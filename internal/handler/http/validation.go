package http

import (
	"errors"
	"mime"
	"net/http"

	"healthinfo-simplifier/internal/handler/http/respond"
)

const maxPathLength = 2048

// InputValidation rejects overlong paths and, for requests that carry a
// body, any media type other than application/json.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Path) > maxPathLength {
				respond.Error(w, http.StatusRequestURITooLong, errors.New("URI too long"))
				return
			}

			if hasBody(r) {
				mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
				if err != nil || mt != "application/json" {
					respond.Error(w, http.StatusUnsupportedMediaType, errors.New("content type must be application/json"))
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func hasBody(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return r.ContentLength != 0
	}
	return false
}
