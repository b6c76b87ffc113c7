package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestTokenBucket_Take(t *testing.T) {
	bucket := newTokenBucket(10, 1.0) // 10 tokens, 1 token per second

	// Should allow 10 requests immediately (burst)
	for i := 0; i < 10; i++ {
		allowed, remaining, _ := bucket.take()
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if remaining != 9-i {
			t.Errorf("Expected remaining %d, got %d", 9-i, remaining)
		}
	}

	// 11th request should be denied (no tokens left)
	allowed, _, resetTime := bucket.take()
	if allowed {
		t.Error("Expected 11th request to be denied")
	}
	if !resetTime.After(time.Now()) {
		t.Error("Reset time should be in the future")
	}
}

func TestTokenBucket_Refill(t *testing.T) {
	bucket := newTokenBucket(10, 1.0) // 1 token per second

	// Consume all tokens
	for i := 0; i < 10; i++ {
		bucket.take()
	}

	// Wait for 1 token to refill
	time.Sleep(1100 * time.Millisecond)

	if allowed, _, _ := bucket.take(); !allowed {
		t.Error("Expected request to be allowed after refill")
	}
	if allowed, _, _ := bucket.take(); allowed {
		t.Error("Expected request to be denied after consuming refilled token")
	}
}

func TestLimiter_Allow(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, rateInfo := limiter.Allow("127.0.0.1", "/other", "GET")
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if rateInfo.Limit != 10 {
			t.Errorf("Expected limit 10, got %d", rateInfo.Limit)
		}
		if rateInfo.Remaining != 9-i {
			t.Errorf("Expected remaining %d, got %d", 9-i, rateInfo.Remaining)
		}
	}

	allowed, rateInfo := limiter.Allow("127.0.0.1", "/other", "GET")
	if allowed {
		t.Error("Expected 11th request to be denied")
	}
	if rateInfo.Remaining != 0 {
		t.Errorf("Expected remaining 0, got %d", rateInfo.Remaining)
	}
	if rateInfo.RetryAfter <= 0 {
		t.Error("Expected retry after to be positive")
	}

	// Other clients have their own buckets
	if allowed, _ := limiter.Allow("127.0.0.2", "/other", "GET"); !allowed {
		t.Error("Expected a different client to be allowed")
	}
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
		Blacklist:     map[string]bool{"192.168.1.1": true},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, rateInfo := limiter.Allow("127.0.0.1", "/search", "POST")
		if !allowed {
			t.Fatalf("Expected whitelisted request %d to be allowed", i+1)
		}
		if rateInfo.Limit != 0 {
			t.Errorf("Expected limit 0 for whitelisted, got %d", rateInfo.Limit)
		}
	}

	if allowed, _ := limiter.Allow("192.168.1.1", "/search", "POST"); allowed {
		t.Error("Expected blacklisted request to be denied")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		if allowed, _ := limiter.Allow("127.0.0.1", "/search", "POST"); !allowed {
			t.Fatalf("Expected request %d to be allowed when disabled", i+1)
		}
	}
}

func TestLimiter_SettingsPrefixSharesBucket(t *testing.T) {
	config := &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(600, 2),
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	// Writes share the burst of 5 across every /settings/ path
	paths := []string{"/settings/api-key", "/settings/mode"}
	allowedCount := 0
	for i := 0; i < 10; i++ {
		if allowed, _ := limiter.Allow("127.0.0.1", paths[i%2], "PUT"); allowed {
			allowedCount++
		}
	}
	if allowedCount != 5 {
		t.Errorf("Expected 5 settings writes across both paths, got %d", allowedCount)
	}

	// Search keeps its own budget
	allowed, rateInfo := limiter.Allow("127.0.0.1", "/search", "POST")
	if !allowed {
		t.Error("Expected search to be allowed")
	}
	if rateInfo.Limit != 600 {
		t.Errorf("Expected search limit 600, got %d", rateInfo.Limit)
	}
}

func TestLimiter_UnlimitedEndpoints(t *testing.T) {
	config := &Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Hour}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	for _, path := range []string{"/health", "/metrics"} {
		for i := 0; i < 20; i++ {
			if allowed, _ := limiter.Allow("127.0.0.1", path, "GET"); !allowed {
				t.Fatalf("Expected %s to be unlimited", path)
			}
		}
	}
	if limiter.Len() != 0 {
		t.Errorf("Expected no buckets for unlimited endpoints, got %d", limiter.Len())
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	var wg sync.WaitGroup
	allowedCount := 0
	var mu sync.Mutex

	// Make 200 concurrent requests (should only allow 100)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("127.0.0.1", "/test", "GET"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	if allowedCount != 100 {
		t.Errorf("Expected 100 allowed requests, got %d", allowedCount)
	}
}

func TestLimiter_CleanupRemovesIdleBuckets(t *testing.T) {
	config := &Config{
		Enabled:         true,
		DefaultLimit:    10,
		DefaultWindow:   time.Minute,
		CleanupInterval: 20 * time.Millisecond,
		IdleTimeout:     50 * time.Millisecond,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/test", "GET")
	}
	if limiter.Len() != 10 {
		t.Fatalf("Expected 10 buckets, got %d", limiter.Len())
	}

	deadline := time.Now().Add(2 * time.Second)
	for limiter.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	if limiter.Len() != 0 {
		t.Errorf("Expected idle buckets to be removed, %d left", limiter.Len())
	}
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	limiter := NewLimiter(nil)
	limiter.Stop()
	limiter.Stop()
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, rateInfo := limiter.Allow("127.0.0.1", "/test", "GET")
	if !allowed {
		t.Error("Expected request to be allowed with default config")
	}
	if rateInfo.Limit != 1000 {
		t.Errorf("Expected default limit 1000, got %d", rateInfo.Limit)
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs(600, 30)

	tests := []struct {
		path, method string
		wantLimit    int
		wantNil      bool
	}{
		{path: "/search", method: "POST", wantLimit: 600},
		{path: "/settings", method: "GET", wantLimit: 120},
		{path: "/settings/api-key", method: "DELETE", wantLimit: 30},
		{path: "/settings/mode", method: "PUT", wantLimit: 30},
		{path: "/health", method: "GET", wantLimit: 0},
		{path: "/search", method: "GET", wantNil: true},
		{path: "/unknown", method: "GET", wantNil: true},
	}

	for _, tt := range tests {
		got := MatchEndpoint(tt.path, tt.method, configs)
		if tt.wantNil {
			if got != nil {
				t.Errorf("%s %s: expected no match, got %+v", tt.method, tt.path, got)
			}
			continue
		}
		if got == nil {
			t.Errorf("%s %s: expected a match", tt.method, tt.path)
			continue
		}
		if got.Limit != tt.wantLimit {
			t.Errorf("%s %s: expected limit %d, got %d", tt.method, tt.path, tt.wantLimit, got.Limit)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_SEARCH_LIMIT", "42")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")

	cfg := LoadConfig()
	if !cfg.Enabled {
		t.Fatal("Expected rate limiting to be enabled")
	}
	if !cfg.Whitelist["10.0.0.2"] {
		t.Error("Expected whitelist to be parsed")
	}
	if got := MatchEndpoint("/search", "POST", cfg.EndpointConfigs); got == nil || got.Limit != 42 {
		t.Errorf("Expected search limit from environment, got %+v", got)
	}

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	if LoadConfig().Enabled {
		t.Error("Expected rate limiting to be disabled")
	}
}
