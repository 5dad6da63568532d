// Package middleware holds HTTP middleware that needs its own configuration:
// CORS for the browser front end, security response headers, client IP
// extraction and per-client rate limiting of the rewrite endpoint.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"healthinfo-simplifier/pkg/config"
)

// CORSConfig holds the CORS policy.
type CORSConfig struct {
	// AllowedOrigins is the origin whitelist. "*" allows any origin.
	AllowedOrigins []string

	// AllowedMethods are returned on preflight requests.
	AllowedMethods []string

	// AllowedHeaders are returned on preflight requests.
	AllowedHeaders []string

	// MaxAge is how long browsers may cache a preflight result, in seconds.
	MaxAge int
}

// DefaultCORSConfig allows the local development front end.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}
}

// LoadCORSConfig reads CORS_ALLOWED_ORIGINS, CORS_ALLOWED_METHODS,
// CORS_ALLOWED_HEADERS and CORS_MAX_AGE on top of the defaults.
func LoadCORSConfig() (CORSConfig, error) {
	def := DefaultCORSConfig()
	cfg := CORSConfig{
		AllowedOrigins: config.GetEnvStringList("CORS_ALLOWED_ORIGINS", def.AllowedOrigins),
		AllowedMethods: config.GetEnvStringList("CORS_ALLOWED_METHODS", def.AllowedMethods),
		AllowedHeaders: config.GetEnvStringList("CORS_ALLOWED_HEADERS", def.AllowedHeaders),
		MaxAge:         config.GetEnvInt("CORS_MAX_AGE", def.MaxAge),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("cors config: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration correctness.
func (c CORSConfig) Validate() error {
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			continue
		}
		if !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("origin %q must start with http:// or https://", o)
		}
	}
	if len(c.AllowedMethods) == 0 {
		return fmt.Errorf("at least one allowed method is required")
	}
	if c.MaxAge < 0 || c.MaxAge > 86400 {
		return fmt.Errorf("max age must be between 0 and 86400, got %d", c.MaxAge)
	}
	return nil
}

func normalizeOrigin(o string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(o)), "/")
}

// CORS sets CORS headers for whitelisted origins and answers preflight
// requests with 204. Requests from other origins pass through without CORS
// headers, so browsers block the response.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	allowAny := false
	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			allowAny = true
			continue
		}
		allowed[normalizeOrigin(o)] = true
	}
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Origin")
			if !allowAny && !allowed[normalizeOrigin(origin)] {
				slog.WarnContext(r.Context(), "CORS: origin not allowed",
					slog.String("origin", origin),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
