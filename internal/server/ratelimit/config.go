package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by LoadConfig
const (
	EnvEnabled         = "RATE_LIMIT_ENABLED"
	EnvDefaultLimit    = "RATE_LIMIT_DEFAULT_LIMIT"
	EnvDefaultWindow   = "RATE_LIMIT_DEFAULT_WINDOW"
	EnvAnalyzeLimit    = "RATE_LIMIT_ANALYZE_LIMIT"
	EnvCleanupInterval = "RATE_LIMIT_CLEANUP_INTERVAL"
	EnvWhitelist       = "RATE_LIMIT_WHITELIST"
	EnvBlacklist       = "RATE_LIMIT_BLACKLIST"
)

// EndpointConfig is the limit applied to one route. Path segments equal to
// "*" match any single segment.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // requests per window
	Window time.Duration
	Burst  int // defaults to Limit when 0
}

// Config holds rate limiting configuration
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultConfig returns the limits used when nothing is configured
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(120),
	}
}

// LoadConfig builds the configuration from RATE_LIMIT_* environment variables
func LoadConfig() *Config {
	cfg := DefaultConfig()
	cfg.Enabled = getEnvBool(EnvEnabled, cfg.Enabled)
	if !cfg.Enabled {
		return &Config{Enabled: false}
	}

	cfg.DefaultLimit = getEnvInt(EnvDefaultLimit, cfg.DefaultLimit)
	cfg.DefaultWindow = getEnvDuration(EnvDefaultWindow, cfg.DefaultWindow)
	cfg.CleanupInterval = getEnvDuration(EnvCleanupInterval, cfg.CleanupInterval)
	cfg.Whitelist = parseIPList(os.Getenv(EnvWhitelist))
	cfg.Blacklist = parseIPList(os.Getenv(EnvBlacklist))
	cfg.EndpointConfigs = DefaultEndpointConfigs(getEnvInt(EnvAnalyzeLimit, 120))
	return cfg
}

// DefaultEndpointConfigs returns the per-route limits. Analysis endpoints
// share analyzeLimit per minute; reads fall back to the default limit.
func DefaultEndpointConfigs(analyzeLimit int) []EndpointConfig {
	burst := max(1, analyzeLimit/10)
	return []EndpointConfig{
		{Path: "/analyze", Method: "POST", Limit: analyzeLimit, Window: time.Minute, Burst: burst},
		{Path: "/resumes/*/analyses", Method: "POST", Limit: analyzeLimit, Window: time.Minute, Burst: burst},
		{Path: "/suggest", Method: "POST", Limit: analyzeLimit, Window: time.Minute, Burst: burst},
		{Path: "/analyses/*", Method: "DELETE", Limit: 60, Window: time.Minute, Burst: 10},
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of client addresses
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
