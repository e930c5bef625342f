package ratelimit

import (
	"strings"
	"time"

	"github.com/jonathan/resume-fit/internal/config"
)

// DefaultCleanupInterval is how often idle client limiters are swept.
const DefaultCleanupInterval = 5 * time.Minute

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// FromConfig builds the limiter configuration from the application config.
func FromConfig(cfg config.RateLimitConfig) *Config {
	if !cfg.Enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    cfg.DefaultLimit,
		DefaultWindow:   cfg.DefaultWindow,
		CleanupInterval: DefaultCleanupInterval,
		Whitelist:       parseIPList(cfg.Whitelist),
		Blacklist:       parseIPList(cfg.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: analyses that may fetch URLs, parse uploads or call the embedding API
		{Path: "/analyze", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/analyze/stream", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/analyze/upload", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},

		// Tier 2: similarity only
		{Path: "/match", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},

		// Tier 3: catalog reads - handled by default limit
		// Tier 4: health check (unlimited) - handled by special case in matcher
	}
}

// parseIPList turns a list of addresses into a lookup set, skipping blanks.
func parseIPList(list []string) map[string]bool {
	result := make(map[string]bool, len(list))
	for _, entry := range list {
		// Env values arrive as one comma-separated string
		for _, ip := range strings.Split(entry, ",") {
			ip = strings.TrimSpace(ip)
			if ip != "" {
				result[ip] = true
			}
		}
	}
	return result
}
