package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestLimiter(cfg *Config, clock *fakeClock) *Limiter {
	l := NewLimiter(cfg)
	l.now = clock.Now
	return l
}

func TestTokenBucket_BurstThenDeny(t *testing.T) {
	clock := newFakeClock()
	bucket := newTokenBucket(3, 1, clock.Now)

	for i := 0; i < 3; i++ {
		allowed, _, _ := bucket.take()
		assert.True(t, allowed, "request %d", i+1)
	}
	allowed, remaining, reset := bucket.take()
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
	assert.True(t, reset.After(clock.Now()))
}

func TestTokenBucket_Refill(t *testing.T) {
	clock := newFakeClock()
	bucket := newTokenBucket(2, 1, clock.Now)
	bucket.take()
	bucket.take()

	clock.Advance(time.Second)
	allowed, _, _ := bucket.take()
	assert.True(t, allowed)

	allowed, _, _ = bucket.take()
	assert.False(t, allowed)

	clock.Advance(time.Hour)
	_, remaining, reset := bucket.take()
	assert.Equal(t, 1, remaining)
	assert.True(t, reset.After(clock.Now()))
}

func TestLimiter_DefaultLimit(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(&Config{Enabled: true, DefaultLimit: 5, DefaultWindow: time.Minute}, clock)
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("10.0.0.1", "/analyses/abc", "GET")
		require.True(t, allowed)
		assert.Equal(t, 5, info.Limit)
		assert.Equal(t, 4-i, info.Remaining)
	}

	allowed, info := l.Allow("10.0.0.1", "/analyses/abc", "GET")
	assert.False(t, allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))

	allowed, _ = l.Allow("10.0.0.2", "/analyses/abc", "GET")
	assert.True(t, allowed, "other clients have their own bucket")
}

func TestLimiter_Lists(t *testing.T) {
	clock := newFakeClock()
	cfg := &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"10.0.0.1": true},
		Blacklist:     map[string]bool{"10.0.0.9": true},
	}
	l := newTestLimiter(cfg, clock)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/analyze", "POST")
		assert.True(t, allowed)
	}
	allowed, _ := l.Allow("10.0.0.9", "/health", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := l.Allow("10.0.0.1", "/analyze", "POST")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}
}

func TestLimiter_RouteWildcardSharesBucket(t *testing.T) {
	clock := newFakeClock()
	cfg := &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/resumes/*/analyses", Method: "POST", Limit: 2, Window: time.Minute},
		},
	}
	l := newTestLimiter(cfg, clock)
	defer l.Stop()

	allowed, _ := l.Allow("c", "/resumes/a/analyses", "POST")
	assert.True(t, allowed)
	allowed, _ = l.Allow("c", "/resumes/b/analyses", "POST")
	assert.True(t, allowed)
	allowed, _ = l.Allow("c", "/resumes/c/analyses", "POST")
	assert.False(t, allowed)

	allowed, _ = l.Allow("c", "/resumes/a/analyses", "GET")
	assert.True(t, allowed, "reads use the default limit")
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute}, clock)
	defer l.Stop()

	for i := 0; i < 20; i++ {
		allowed, _ := l.Allow("c", "/health", "GET")
		assert.True(t, allowed)
	}
}

func TestLimiter_Cleanup(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute}, clock)
	defer l.Stop()

	l.Allow("old", "/x", "GET")
	clock.Advance(2 * time.Hour)
	l.Allow("new", "/x", "GET")

	l.cleanup()
	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.buckets, 1)
	assert.Contains(t, l.buckets, "new:GET:/x")
}

func TestLimiter_Concurrent(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, DefaultLimit: 50, DefaultWindow: time.Hour})
	defer l.Stop()

	var allowedCount atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("c", "/x", "GET"); ok {
				allowedCount.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(50), allowedCount.Load())
}

func TestLimiter_StopTwice(t *testing.T) {
	l := NewLimiter(nil)
	l.Stop()
	assert.NotPanics(t, l.Stop)
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs(120)

	tests := []struct {
		name     string
		path     string
		method   string
		expected string
	}{
		{"analyze", "/analyze", "POST", "/analyze"},
		{"create analysis", "/resumes/123/analyses", "POST", "/resumes/*/analyses"},
		{"delete analysis", "/analyses/abc", "DELETE", "/analyses/*"},
		{"list analyses uses default", "/resumes/123/analyses", "GET", ""},
		{"extra segment", "/resumes/1/analyses/2", "POST", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.expected == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.expected, got.Path)
		})
	}

	health := MatchEndpoint("/health", "GET", configs)
	require.NotNil(t, health)
	assert.Equal(t, 0, health.Limit)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(EnvDefaultLimit, "42")
	t.Setenv(EnvAnalyzeLimit, "7")
	t.Setenv(EnvWhitelist, " 1.1.1.1, ,2.2.2.2")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, 7, cfg.EndpointConfigs[0].Limit)
	assert.Equal(t, map[string]bool{"1.1.1.1": true, "2.2.2.2": true}, cfg.Whitelist)

	t.Setenv(EnvEnabled, "false")
	assert.False(t, LoadConfig().Enabled)
}
