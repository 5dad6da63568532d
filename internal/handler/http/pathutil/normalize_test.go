package pathutil

import (
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"analyze", "/analyze", "/analyze"},
		{"analyze batch", "/analyze/batch", "/analyze/batch"},
		{"trailing slash", "/simplify/", "/simplify"},
		{"query params", "/labels?grade=6&ease=70", "/labels"},
		{"root", "/", "/"},
		{"history list", "/history", "/history"},
		{"history entry", "/history/3f1c2a9e-8d4b-4c1e-9a53-0e7d2b6f4a10", "/history/:id"},
		{"history entry upper case", "/history/3F1C2A9E-8D4B-4C1E-9A53-0E7D2B6F4A10", "/history/:id"},
		{"history malformed id", "/history/not-a-uuid", "/history/:id"},
		{"history entry with slash", "/history/3f1c2a9e-8d4b-4c1e-9a53-0e7d2b6f4a10/", "/history/:id"},
		{"health", "/health", "/health"},
		{"metrics", "/metrics", "/metrics"},
		{"unknown", "/wp-admin/login.php", UnmatchedRoute},
		{"nested history", "/history/a/b", UnmatchedRoute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePath(tt.path); got != tt.expected {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestNormalizePath_BoundedCardinality(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range []string{
		"/analyze", "/history/1", "/history/2", "/x", "/y/z", "/metrics", "/.env", "/history",
	} {
		seen[NormalizePath(p)] = true
	}
	if len(seen) > GetExpectedCardinality() {
		t.Errorf("got %d labels, expected at most %d", len(seen), GetExpectedCardinality())
	}
	if len(seen) != 5 {
		t.Errorf("got %d distinct labels, want 5: %v", len(seen), seen)
	}
}
