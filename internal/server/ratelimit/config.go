package ratelimit

import (
	"net/http"
	"strings"
	"time"
)

// Endpoint names a route the limiter applies to.
type Endpoint struct {
	Path   string // Exact path, or a prefix when it ends with "/"
	Method string
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled bool
	// Limit requests per Window refill the bucket; Burst is its capacity.
	Limit           int
	Window          time.Duration
	Burst           int
	CleanupInterval time.Duration
	// IdleTTL is how long an unused client bucket is kept.
	IdleTTL   time.Duration
	Whitelist map[string]bool
	Endpoints []Endpoint
}

// DefaultEndpoints returns the routes that render documents.
func DefaultEndpoints() []Endpoint {
	return []Endpoint{
		{Path: "/generate", Method: http.MethodPost},
		{Path: "/generate/stream", Method: http.MethodPost},
	}
}

// NewConfig builds a Config for the document endpoints. whitelist is a
// comma-separated list of exempt client IPs.
func NewConfig(enabled bool, limit int, window time.Duration, burst int, whitelist string) *Config {
	return &Config{
		Enabled:         enabled,
		Limit:           limit,
		Window:          window,
		Burst:           burst,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       parseIPList(whitelist),
		Endpoints:       DefaultEndpoints(),
	}
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
