package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"healthinfo-simplifier/pkg/security/csp"
)

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		name       string
		cfg        SecurityHeadersConfig
		wantHeader string
	}{
		{"enforced", SecurityHeadersConfig{CSPEnabled: true}, csp.HeaderEnforce},
		{"report only", SecurityHeadersConfig{CSPEnabled: true, CSPReportOnly: true}, csp.HeaderReportOnly},
		{"disabled", SecurityHeadersConfig{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			SecurityHeaders(tt.cfg)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/labels", nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
			assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
			assert.Equal(t, "no-referrer", rec.Header().Get("Referrer-Policy"))

			if tt.wantHeader == "" {
				assert.Empty(t, rec.Header().Get(csp.HeaderEnforce))
				assert.Empty(t, rec.Header().Get(csp.HeaderReportOnly))
				return
			}
			assert.Equal(t, csp.APIPolicy().Build(), rec.Header().Get(tt.wantHeader))
		})
	}
}

func TestLoadSecurityHeadersConfig(t *testing.T) {
	cfg := LoadSecurityHeadersConfig()
	assert.True(t, cfg.CSPEnabled)
	assert.False(t, cfg.CSPReportOnly)

	t.Setenv("CSP_ENABLED", "false")
	t.Setenv("CSP_REPORT_ONLY", "true")
	cfg = LoadSecurityHeadersConfig()
	assert.False(t, cfg.CSPEnabled)
	assert.True(t, cfg.CSPReportOnly)
}
