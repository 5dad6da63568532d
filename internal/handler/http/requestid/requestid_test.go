package requestid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	assert.Equal(t, "abc", FromContext(WithRequestID(context.Background(), "abc")))
	assert.Empty(t, FromContext(context.Background()))
	assert.Empty(t, FromContext(context.WithValue(context.Background(), RequestIDKey, 42)))
}

func TestMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		keepsID bool
	}{
		{"propagates caller id", "existing-request-id-456", true},
		{"generates when missing", "", false},
		{"replaces id with spaces", "bad id", false},
		{"replaces id with newline", "id\nlevel=ERROR", false},
		{"replaces oversized id", strings.Repeat("a", 129), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured string
			h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				captured = FromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
			if tt.header != "" {
				req.Header.Set(RequestIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, captured, rec.Header().Get(RequestIDHeader))
			if tt.keepsID {
				assert.Equal(t, tt.header, captured)
				return
			}
			_, err := uuid.Parse(captured)
			require.NoError(t, err, "generated id should be a UUID")
		})
	}
}
