package text_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"healthinfo-simplifier/internal/utils/text"
)

func TestCountRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"empty", "", 0},
		{"ASCII", "hello world", 11},
		{"accented", "niño", 4},
		{"Chinese", "高血压", 3},
		{"Arabic", "ضغط الدم", 8},
		{"emoji", "ok👋", 3},
		{"newlines", "a\nb\r\n", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, text.CountRunes(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"short enough", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"cut", "hello world", 5, "hello..."},
		{"multibyte cut", "presión arterial", 7, "presión..."},
		{"zero max", "hello", 0, ""},
		{"negative max", "hello", -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, text.Truncate(tt.input, tt.max))
		})
	}
}
