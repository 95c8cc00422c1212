package pathutil

import (
	"regexp"
	"strings"
)

// UnmatchedRoute is the label value recorded for any request path that does
// not resolve to a known route. Collapsing unknown paths into a single value
// keeps the metric label set bounded even under scanner traffic.
const UnmatchedRoute = "unmatched"

// staticRoutes lists the fixed endpoints served by the router. Paths are
// matched after query-parameter and trailing-slash stripping.
var staticRoutes = map[string]struct{}{
	"/":        {},
	"/data":    {},
	"/health":  {},
	"/ready":   {},
	"/live":    {},
	"/metrics": {},
}

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Pre-compiled at initialization so normalization stays cheap on the hot path.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/data/\d+$`), Template: "/data/:id"},
}

// NormalizePath maps a request path to a bounded metric label value.
// Known static endpoints pass through unchanged, item routes with IDs
// collapse to their template (e.g. /data/123 -> /data/:id), and anything
// else becomes UnmatchedRoute.
//
// Examples:
//
//	NormalizePath("/data/123")        // "/data/:id"
//	NormalizePath("/data/123?x=1")    // "/data/:id"
//	NormalizePath("/data/456/")       // "/data/:id"
//	NormalizePath("/health")          // "/health"
//	NormalizePath("/admin/secret")    // "unmatched"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if _, ok := staticRoutes[path]; ok {
		return path
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	return UnmatchedRoute
}

// ExpectedCardinality returns the number of unique path label values the
// service can emit after normalization. Useful for capacity planning.
func ExpectedCardinality() int {
	// Static routes + dynamic templates + the unmatched sentinel.
	return len(staticRoutes) + len(pathPatterns) + 1
}
