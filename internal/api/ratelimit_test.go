package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestIPRateLimiterAllowsBurst verifies the burst allowance and the cutoff.
func TestIPRateLimiterAllowsBurst(t *testing.T) {
	rl := NewIPRateLimiter(RateLimitConfig{
		RequestsPerSecond: 1,
		Burst:             3,
		CleanupInterval:   time.Minute,
	})
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d within burst rejected", i)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("request beyond burst allowed")
	}

	// A different IP has its own bucket
	if !rl.Allow("10.0.0.2") {
		t.Error("fresh IP rejected")
	}

	stats := rl.GetStats()
	if stats["allowed"] != 4 || stats["rejected"] != 1 {
		t.Errorf("unexpected stats: %v", stats)
	}
}

// TestRateLimitMiddleware verifies the HTTP 429 path.
func TestRateLimitMiddleware(t *testing.T) {
	rl := NewIPRateLimiter(RateLimitConfig{
		RequestsPerSecond: 1,
		Burst:             1,
		CleanupInterval:   time.Minute,
	})
	defer rl.Stop()

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request blocked: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}
}

// TestWebSocketRateLimiter verifies per-IP concurrent connection caps.
func TestWebSocketRateLimiter(t *testing.T) {
	wrl := NewWebSocketRateLimiter(2)

	if !wrl.Allow("10.0.0.1") || !wrl.Allow("10.0.0.1") {
		t.Fatal("connections within limit rejected")
	}
	if wrl.Allow("10.0.0.1") {
		t.Error("connection beyond limit allowed")
	}
	if wrl.GetConnectionCount("10.0.0.1") != 2 {
		t.Errorf("Expected count 2, got %d", wrl.GetConnectionCount("10.0.0.1"))
	}

	wrl.Release("10.0.0.1")
	if !wrl.Allow("10.0.0.1") {
		t.Error("slot not freed after release")
	}
}

// TestGetClientIP covers the proxy header precedence.
func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr only", "10.0.0.1:1234", nil, "10.0.0.1"},
		{"x-forwarded-for single", "127.0.0.1:80", map[string]string{"X-Forwarded-For": "1.2.3.4"}, "1.2.3.4"},
		{"x-forwarded-for chain", "127.0.0.1:80", map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"}, "1.2.3.4"},
		{"x-real-ip", "127.0.0.1:80", map[string]string{"X-Real-IP": "9.9.9.9"}, "9.9.9.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := GetClientIP(req); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

// TestIsAllowedOrigin covers the origin allowlist.
func TestIsAllowedOrigin(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://spiders.example.com, https://play.example.com")

	tests := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"http://localhost:3000", true},
		{"http://127.0.0.1:8080", true},
		{"https://spiders.example.com", true},
		{"https://play.example.com", true},
		{"https://evil.example.com", false},
	}

	for _, tt := range tests {
		if got := IsAllowedOrigin(tt.origin); got != tt.want {
			t.Errorf("IsAllowedOrigin(%q): expected %v, got %v", tt.origin, tt.want, got)
		}
	}
}
