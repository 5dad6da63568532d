package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("TEST_HTTP_ADDR", ":9090")
	assert.Equal(t, ":9090", GetEnvString("TEST_HTTP_ADDR", ":8080"))
	assert.Equal(t, ":8080", GetEnvString("TEST_UNSET_ADDR", ":8080"))
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"unset", "", 50},
		{"valid", "25", 25},
		{"padded", " 10 ", 10},
		{"negative", "-1", -1},
		{"not a number", "fifty", 50},
		{"trailing junk", "12abc", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_CAPACITY", tt.value)
			assert.Equal(t, tt.want, GetEnvInt("TEST_CAPACITY", 50))
		})
	}
}

func TestGetEnvFloat(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  float64
	}{
		{"unset", "", 1.0},
		{"valid", "0.5", 0.5},
		{"integer", "3", 3},
		{"invalid", "fast", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_RPS", tt.value)
			assert.Equal(t, tt.want, GetEnvFloat("TEST_RPS", 1.0))
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{"", true, true},
		{"true", false, true},
		{"1", false, true},
		{"T", false, true},
		{"false", true, false},
		{"0", true, false},
		{"yes", true, true},
		{"yes", false, false},
	}

	for _, tt := range tests {
		t.Setenv("TEST_ENABLED", tt.value)
		assert.Equal(t, tt.want, GetEnvBool("TEST_ENABLED", tt.def), "value %q default %v", tt.value, tt.def)
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_TIMEOUT", "90s")
	assert.Equal(t, 90*time.Second, GetEnvDuration("TEST_TIMEOUT", time.Minute))

	t.Setenv("TEST_TIMEOUT", "ninety")
	assert.Equal(t, time.Minute, GetEnvDuration("TEST_TIMEOUT", time.Minute))

	assert.Equal(t, time.Minute, GetEnvDuration("TEST_UNSET_TIMEOUT", time.Minute))
}

func TestGetEnvStringList(t *testing.T) {
	def := []string{"Spanish"}

	t.Setenv("TEST_LANGS", "Spanish, French,,German ")
	assert.Equal(t, []string{"Spanish", "French", "German"}, GetEnvStringList("TEST_LANGS", def))

	t.Setenv("TEST_LANGS", " , ,")
	assert.Equal(t, def, GetEnvStringList("TEST_LANGS", def))

	assert.Equal(t, def, GetEnvStringList("TEST_UNSET_LANGS", def))
}

func TestRangeChecks(t *testing.T) {
	assert.NoError(t, InRange("REWRITER_TIMEOUT", time.Minute, time.Second, time.Hour))
	assert.EqualError(t, InRange("REWRITER_TIMEOUT", time.Millisecond, time.Second, time.Hour),
		"REWRITER_TIMEOUT must be between 1s and 1h0m0s, got 1ms")
	assert.EqualError(t, InRange("HISTORY_CAPACITY", 0, 1, 10000),
		"HISTORY_CAPACITY must be between 1 and 10000, got 0")

	assert.NoError(t, AtLeast("REWRITER_RATE_BURST", 1, 1))
	assert.EqualError(t, AtLeast("REWRITER_RATE_BURST", 0, 1), "REWRITER_RATE_BURST must be at least 1, got 0")
	assert.NoError(t, AtLeast("HISTORY_RETENTION", time.Duration(0), 0))

	assert.NoError(t, Positive("REWRITER_RATE_LIMIT", 0.5))
	assert.EqualError(t, Positive("REWRITER_RATE_LIMIT", 0.0), "REWRITER_RATE_LIMIT must be positive, got 0")
	assert.Error(t, Positive("HTTP_IDLE_TIMEOUT", -time.Second))
}
