package ratelimit

import (
	"strings"
)

// unlimitedPaths are never rate limited
var unlimitedPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Exact paths win over prefix rules. Returns nil when no rule matches.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if method == "GET" && unlimitedPaths[path] {
		return &EndpointConfig{Limit: 0}
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == path && methodMatches(config.Method, method) {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) && methodMatches(config.Method, method) {
			return config
		}
	}

	return nil
}

func methodMatches(configMethod, method string) bool {
	return configMethod == "" || configMethod == method
}
