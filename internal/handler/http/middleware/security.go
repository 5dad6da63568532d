package middleware

import (
	"net/http"

	"healthinfo-simplifier/pkg/config"
	"healthinfo-simplifier/pkg/security/csp"
)

// SecurityHeadersConfig controls the response hardening headers.
type SecurityHeadersConfig struct {
	// CSPEnabled sends a Content-Security-Policy header. Default: true.
	CSPEnabled bool

	// CSPReportOnly sends the policy as Content-Security-Policy-Report-Only.
	CSPReportOnly bool
}

// LoadSecurityHeadersConfig reads CSP_ENABLED and CSP_REPORT_ONLY.
func LoadSecurityHeadersConfig() SecurityHeadersConfig {
	return SecurityHeadersConfig{
		CSPEnabled:    config.GetEnvBool("CSP_ENABLED", true),
		CSPReportOnly: config.GetEnvBool("CSP_REPORT_ONLY", false),
	}
}

// SecurityHeaders marks every response as non-sniffable, non-frameable JSON
// and, when enabled, attaches the API content security policy.
func SecurityHeaders(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	var header, policy string
	if cfg.CSPEnabled {
		p := csp.APIPolicy().ReportOnly(cfg.CSPReportOnly)
		header, policy = p.HeaderName(), p.Build()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "no-referrer")
			if policy != "" {
				h.Set(header, policy)
			}
			next.ServeHTTP(w, r)
		})
	}
}
