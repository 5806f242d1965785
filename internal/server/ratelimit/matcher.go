package ratelimit

import "strings"

// unlimited is returned for routes that are never limited
var unlimited = &EndpointConfig{}

// MatchEndpoint returns the configuration for a request, or nil when no
// route-specific limit applies. Health checks are unlimited.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return unlimited
	}

	for i := range configs {
		if configs[i].Method == method && pathMatches(configs[i].Path, path) {
			return &configs[i]
		}
	}
	return nil
}

// pathMatches compares pattern and path segment by segment
func pathMatches(pattern, path string) bool {
	want := strings.Split(strings.Trim(pattern, "/"), "/")
	got := strings.Split(strings.Trim(path, "/"), "/")
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if want[i] != "*" && want[i] != got[i] {
			return false
		}
	}
	return true
}

// routeKey collapses wildcard segments so every id on a route shares a bucket
func routeKey(config *EndpointConfig, path string) string {
	if config != nil && config.Path != "" {
		return config.Path
	}
	return path
}
