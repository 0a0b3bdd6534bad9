package ratelimit

import (
	"strings"
)

// Matches reports whether a request path and method fall under one of the
// limited endpoints. Prefix matching applies to paths ending with "/".
func Matches(path string, method string, endpoints []Endpoint) bool {
	// health checks are never limited
	if path == "/health" {
		return false
	}

	for _, e := range endpoints {
		if e.Method != method {
			continue
		}
		if e.Path == path {
			return true
		}
		if strings.HasSuffix(e.Path, "/") && strings.HasPrefix(path, e.Path) {
			return true
		}
	}
	return false
}
