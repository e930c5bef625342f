package ratelimit

import (
	"net/http"
	"strings"
)

// unlimited is returned for exempt endpoints; a zero Limit disables limiting.
var unlimited = EndpointConfig{}

// exemptPaths are never rate limited for GET requests.
var exemptPaths = map[string]bool{
	"/health": true,
}

// MatchEndpoint returns the configuration governing a request, or nil when the default applies.
// An exact path match wins; otherwise the longest configured path ending in "/" that prefixes
// path is used, so "/roadmaps/" covers "/roadmaps/{role}". An empty Method matches any method.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if method == http.MethodGet && exemptPaths[path] {
		e := unlimited
		return &e
	}

	var best *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != "" && c.Method != method {
			continue
		}
		if c.Path == path {
			return c
		}
		if strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			if best == nil || len(c.Path) > len(best.Path) {
				best = c
			}
		}
	}
	return best
}
