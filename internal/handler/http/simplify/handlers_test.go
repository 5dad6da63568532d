package simplify_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthinfo-simplifier/internal/domain/entity"
	"healthinfo-simplifier/internal/handler/http/simplify"
	"healthinfo-simplifier/internal/infra/history"
	"healthinfo-simplifier/internal/infra/rewriter"
	simplifyUC "healthinfo-simplifier/internal/usecase/simplify"
)

const (
	hardText = "Hypertension is a serious condition."
	easyText = "High blood pressure is bad. See your doctor."
)

type fakeRewriter struct {
	mu     sync.Mutex
	result string
	err    error
	last   rewriter.Request
}

func (f *fakeRewriter) Name() string { return "fake" }

func (f *fakeRewriter) Rewrite(_ context.Context, req rewriter.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = req
	if f.err != nil {
		return "", f.err
	}
	return f.result, nil
}

func newMux(rw rewriter.Rewriter, limit func(http.Handler) http.Handler) *http.ServeMux {
	svc := simplifyUC.NewService(rw, history.NewMemoryStore(10), nil)
	mux := http.NewServeMux()
	simplify.Register(mux, svc, limit)
	return mux
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHandler_Simplify(t *testing.T) {
	rw := &fakeRewriter{result: easyText}
	mux := newMux(rw, nil)

	rec := do(t, mux, http.MethodPost, "/simplify", `{"text":"`+hardText+`","use_bullets":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[simplify.DTO](t, rec)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, simplifyUC.PresetSimplify, got.Preset)
	assert.Equal(t, "fake", got.Provider)
	assert.Equal(t, easyText, got.Result)
	assert.True(t, got.Comparison.Improved)
	assert.True(t, rw.last.UseBullets)
}

func TestHandler_SimplifyErrors(t *testing.T) {
	tests := []struct {
		name     string
		rw       *fakeRewriter
		body     string
		wantCode int
		wantBody string
	}{
		{
			name:     "blank text",
			rw:       &fakeRewriter{result: easyText},
			body:     `{"text":"   "}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"invalid input: please enter some text first"}`,
		},
		{
			name:     "unknown preset",
			rw:       &fakeRewriter{result: easyText},
			body:     `{"text":"hi","preset":"pirate"}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"invalid input: unknown preset \"pirate\""}`,
		},
		{
			name:     "bad previous id",
			rw:       &fakeRewriter{result: easyText},
			body:     `{"preset":"simpler","previous_id":"nope"}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"invalid request","fields":{"previous_id":"must be a valid UUID"}}`,
		},
		{
			name:     "unknown previous entry",
			rw:       &fakeRewriter{result: easyText},
			body:     `{"preset":"simpler","previous_id":"0b0d5d4e-1f3a-4c54-9d7e-2b8a4f6c1e11"}`,
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"history entry not found"}`,
		},
		{
			name:     "circuit open",
			rw:       &fakeRewriter{err: rewriter.ErrUnavailable},
			body:     `{"text":"hi"}`,
			wantCode: http.StatusServiceUnavailable,
			wantBody: `{"error":"rewriting service temporarily unavailable"}`,
		},
		{
			name:     "provider rate limited",
			rw:       &fakeRewriter{err: rewriter.ErrRateLimited},
			body:     `{"text":"hi"}`,
			wantCode: http.StatusTooManyRequests,
			wantBody: `{"error":"rewriting service is busy, try again later"}`,
		},
		{
			name:     "provider failure hides details",
			rw:       &fakeRewriter{err: fmt.Errorf("openai: 500 secret-key-xyz")},
			body:     `{"text":"hi"}`,
			wantCode: http.StatusBadGateway,
			wantBody: `{"error":"rewriting service unavailable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newMux(tt.rw, nil), http.MethodPost, "/simplify", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestHandler_RateLimitWrapsOnlySimplify(t *testing.T) {
	blocked := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}
	mux := newMux(&fakeRewriter{result: easyText}, blocked)

	assert.Equal(t, http.StatusTooManyRequests, do(t, mux, http.MethodPost, "/simplify", `{"text":"hi"}`).Code)
	assert.Equal(t, http.StatusOK, do(t, mux, http.MethodGet, "/presets", "").Code)
	assert.Equal(t, http.StatusOK, do(t, mux, http.MethodGet, "/history", "").Code)
}

func TestHistoryHandlers(t *testing.T) {
	mux := newMux(&fakeRewriter{result: easyText}, nil)

	var ids []string
	for i := 0; i < 3; i++ {
		rec := do(t, mux, http.MethodPost, "/simplify", fmt.Sprintf(`{"text":"%s Part %d."}`, hardText, i))
		require.Equal(t, http.StatusOK, rec.Code)
		ids = append(ids, decode[simplify.DTO](t, rec).ID)
	}

	t.Run("list newest first", func(t *testing.T) {
		got := decode[simplify.HistoryResponse](t, do(t, mux, http.MethodGet, "/history", ""))
		require.Equal(t, 3, got.Count)
		assert.Equal(t, ids[2], got.Items[0].ID)
		assert.Equal(t, ids[0], got.Items[2].ID)
	})

	t.Run("list with limit", func(t *testing.T) {
		got := decode[simplify.HistoryResponse](t, do(t, mux, http.MethodGet, "/history?limit=1", ""))
		assert.Equal(t, 1, got.Count)
		assert.Equal(t, http.StatusBadRequest, do(t, mux, http.MethodGet, "/history?limit=-1", "").Code)
	})

	t.Run("get one", func(t *testing.T) {
		rec := do(t, mux, http.MethodGet, "/history/"+ids[1], "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, hardText+" Part 1.", decode[simplify.DTO](t, rec).Original)

		assert.Equal(t, http.StatusBadRequest, do(t, mux, http.MethodGet, "/history/not-a-uuid", "").Code)
		assert.Equal(t, http.StatusNotFound, do(t, mux, http.MethodGet, "/history/0b0d5d4e-1f3a-4c54-9d7e-2b8a4f6c1e11", "").Code)
	})

	t.Run("chain from history", func(t *testing.T) {
		rec := do(t, mux, http.MethodPost, "/simplify", `{"preset":"simpler","previous_id":"`+ids[0]+`"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, easyText, decode[simplify.DTO](t, rec).Original)
	})

	t.Run("clear", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, do(t, mux, http.MethodDelete, "/history", "").Code)
		got := decode[simplify.HistoryResponse](t, do(t, mux, http.MethodGet, "/history", ""))
		assert.Zero(t, got.Count)
		assert.NotNil(t, got.Items)
	})
}

func TestCatalogHandlers(t *testing.T) {
	mux := newMux(rewriter.NewNoOp(1000), nil)

	presets := decode[simplify.PresetsResponse](t, do(t, mux, http.MethodGet, "/presets", ""))
	assert.Equal(t, "noop", presets.Provider)
	names := make([]string, 0, len(presets.Presets))
	for _, p := range presets.Presets {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"simplify", "simpler", "complex", "translate"}, names)

	langs := decode[simplify.LanguagesResponse](t, do(t, mux, http.MethodGet, "/languages", ""))
	assert.Equal(t, entity.LanguageOriginal, langs.Default)
	assert.Equal(t, []string{"Original", "English"}, langs.Languages[:2])
	assert.Contains(t, langs.Languages, "Spanish")
}
