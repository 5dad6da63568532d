package bind_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthinfo-simplifier/internal/handler/http/bind"
	"healthinfo-simplifier/internal/handler/http/respond"
)

type item struct {
	URL string `json:"url" validate:"omitempty,http_url"`
}

type payload struct {
	Text  string  `json:"text" validate:"required,max=20"`
	Mode  string  `json:"mode" validate:"omitempty,oneof=fast slow"`
	Items []item  `json:"items" validate:"omitempty,max=2,dive"`
	Score float64 `json:"score" validate:"gte=0,lte=10"`
}

func decode(t *testing.T, body string) (*httptest.ResponseRecorder, payload, bool) {
	t.Helper()
	var p payload
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	ok := bind.JSON(rec, req, &p)
	return rec, p, ok
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) respond.ErrorBody {
	t.Helper()
	var body respond.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestJSON_Valid(t *testing.T) {
	rec, p, ok := decode(t, `{"text":"hello","mode":"fast","items":[{"url":"https://example.org"}],"score":3}`)
	require.True(t, ok)
	assert.Equal(t, "hello", p.Text)
	assert.Len(t, p.Items, 1)
	assert.Equal(t, http.StatusOK, rec.Code, "nothing written on success")
}

func TestJSON_DecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty body", "", "request body is required"},
		{"malformed", `{"text":`, "invalid JSON request body"},
		{"unknown field", `{"text":"a","extra":1}`, "invalid JSON request body"},
		{"wrong type", `{"text":5}`, "invalid JSON request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _, ok := decode(t, tt.body)
			assert.False(t, ok)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, errorBody(t, rec).Error)
		})
	}
}

func TestJSON_BodyTooLarge(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"`+strings.Repeat("a", 100)+`"}`))
	req.Body = http.MaxBytesReader(rec, req.Body, 16)

	var p payload
	assert.False(t, bind.JSON(rec, req, &p))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "request body must not exceed 16 bytes", errorBody(t, rec).Error)
}

func TestJSON_ValidationFields(t *testing.T) {
	rec, _, ok := decode(t, `{"text":"","mode":"medium","items":[{"url":"ftp:/x"}],"score":11}`)
	require.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := errorBody(t, rec)
	assert.Equal(t, "invalid request", body.Error)
	assert.Equal(t, map[string]string{
		"text":         "is required",
		"mode":         "must be one of: fast slow",
		"items[0].url": "must be a valid http(s) URL",
		"score":        "must be less than or equal to 10",
	}, body.Fields)
}

func TestJSON_MaxLength(t *testing.T) {
	rec, _, ok := decode(t, `{"text":"`+strings.Repeat("a", 21)+`"}`)
	require.False(t, ok)
	assert.Equal(t, "must be at most 20", errorBody(t, rec).Fields["text"])
}

func TestFieldErrors_NonValidationError(t *testing.T) {
	assert.Equal(t, map[string]string{"request": "invalid request"}, bind.FieldErrors(assert.AnError))
}
