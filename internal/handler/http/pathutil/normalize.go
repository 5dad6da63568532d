// Package pathutil maps request paths to bounded route labels for metrics
// and span names, and parses path IDs.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern maps paths matching Pattern to Template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

const uuidPattern = `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`

var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/history/` + uuidPattern + `$`), Template: "/history/:id"},
	// Malformed IDs still collapse to one label.
	{Pattern: regexp.MustCompile(`^/history/[^/]+$`), Template: "/history/:id"},
}

// knownRoutes are served as-is. Anything else becomes UnmatchedRoute.
var knownRoutes = map[string]bool{
	"/":              true,
	"/analyze":       true,
	"/analyze/batch": true,
	"/labels":        true,
	"/languages":     true,
	"/presets":       true,
	"/simplify":      true,
	"/history":       true,
	"/health":        true,
	"/ready":         true,
	"/live":          true,
	"/metrics":       true,
}

// UnmatchedRoute labels paths that match no route, so scanners probing
// random URLs cannot grow label cardinality.
const UnmatchedRoute = "/:unmatched"

// NormalizePath strips the query string and trailing slash, then maps the
// path to its route template.
//
//	NormalizePath("/history/3f1c2a9e-8d4b-4c1e-9a53-0e7d2b6f4a10") // "/history/:id"
//	NormalizePath("/analyze?x=1")                                  // "/analyze"
//	NormalizePath("/wp-admin")                                     // "/:unmatched"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if knownRoutes[path] {
		return path
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	return UnmatchedRoute
}

// GetExpectedCardinality returns the number of distinct labels
// NormalizePath can produce.
func GetExpectedCardinality() int {
	templates := make(map[string]bool)
	for _, p := range pathPatterns {
		templates[p.Template] = true
	}
	return len(knownRoutes) + len(templates) + 1
}
