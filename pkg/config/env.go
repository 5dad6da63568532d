// Package config reads typed settings from environment variables.
//
// Unset or blank variables yield the caller's default. A value that does
// not parse also yields the default and logs a warning, so a typo in a
// deployment is visible without stopping the process. Settings that must
// not fall back (API keys, provider names) are checked by the component
// config that reads them.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// lookup returns the trimmed value of key and whether it is non-blank.
func lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

// parsed reads key with parse, falling back to def when the variable is
// blank or malformed.
func parsed[T any](key string, def T, kind string, parse func(string) (T, error)) T {
	raw, ok := lookup(key)
	if !ok {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		slog.Warn("ignoring malformed "+kind+" in environment",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Any("default", def),
			slog.Any("error", err))
		return def
	}
	return v
}

// GetEnvString returns the value of key, or def when unset or empty.
// Surrounding whitespace is kept.
func GetEnvString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// GetEnvInt returns key as a base-10 integer.
//
//	capacity := GetEnvInt("HISTORY_CAPACITY", 50)
func GetEnvInt(key string, def int) int {
	return parsed(key, def, "integer", strconv.Atoi)
}

// GetEnvFloat returns key as a float64.
func GetEnvFloat(key string, def float64) float64 {
	return parsed(key, def, "number", func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// GetEnvBool accepts whatever strconv.ParseBool does ("1", "t", "true",
// "0", "f", "false" and their capitalized forms).
func GetEnvBool(key string, def bool) bool {
	return parsed(key, def, "boolean", strconv.ParseBool)
}

// GetEnvDuration returns key parsed by time.ParseDuration, e.g. "30s" or
// "1h30m".
func GetEnvDuration(key string, def time.Duration) time.Duration {
	return parsed(key, def, "duration", time.ParseDuration)
}

// GetEnvStringList splits key on commas, trimming each item and dropping
// blanks. A value with no items left yields def.
//
//	// SUPPORTED_LANGUAGES="Spanish, French,German"
//	GetEnvStringList("SUPPORTED_LANGUAGES", nil) // [Spanish French German]
func GetEnvStringList(key string, def []string) []string {
	raw, ok := lookup(key)
	if !ok {
		return def
	}
	var items []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	if len(items) == 0 {
		return def
	}
	return items
}
