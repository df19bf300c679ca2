package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/championmethod/funnel-platform/internal/visitor"
)

func TestRateLimiterAllowsBurstThenBlocks(t *testing.T) {
	rl := NewRateLimiter(1, 3)

	for i := 0; i < 3; i++ {
		if !rl.Allow("ip:1.2.3.4") {
			t.Fatalf("expected request %d within burst to pass", i)
		}
	}
	if rl.Allow("ip:1.2.3.4") {
		t.Fatalf("expected request beyond burst to be blocked")
	}
	// Other clients have their own bucket.
	if !rl.Allow("ip:5.6.7.8") {
		t.Fatalf("expected fresh client to pass")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mw := RateLimit(1, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/checkout/validate", nil)
	req.Header.Set("X-Real-Ip", "9.9.9.9")

	rec := httptest.NewRecorder()
	mw(handler).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mw(handler).ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be limited, got %d", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "1" {
		t.Fatalf("expected Retry-After hint of 1 second, got %q", got)
	}
}

func TestRateLimitKeysByVisitorSession(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mw := RateLimit(1, 1)

	// Same visitor session stays in one bucket even as the IP changes.
	first := httptest.NewRequest(http.MethodPost, "/api/checkout/submit", nil)
	first.Header.Set("X-Real-Ip", "10.0.0.1")
	first.AddCookie(&http.Cookie{Name: visitor.CookieName, Value: "sess-a"})

	rec := httptest.NewRecorder()
	mw(handler).ServeHTTP(rec, first)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", rec.Code)
	}

	second := httptest.NewRequest(http.MethodPost, "/api/checkout/submit", nil)
	second.Header.Set("X-Real-Ip", "10.0.0.2")
	second.AddCookie(&http.Cookie{Name: visitor.CookieName, Value: "sess-a"})

	rec = httptest.NewRecorder()
	mw(handler).ServeHTTP(rec, second)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected same session from new ip to be limited, got %d", rec.Code)
	}

	// A different visitor session gets its own bucket on the same IP.
	other := httptest.NewRequest(http.MethodPost, "/api/checkout/submit", nil)
	other.Header.Set("X-Real-Ip", "10.0.0.1")
	other.AddCookie(&http.Cookie{Name: visitor.CookieName, Value: "sess-b"})

	rec = httptest.NewRecorder()
	mw(handler).ServeHTTP(rec, other)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected other session to pass, got %d", rec.Code)
	}
}

func TestRetryAfter(t *testing.T) {
	if got := NewRateLimiter(5, 10).RetryAfter(); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := NewRateLimiter(0.25, 2).RetryAfter(); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
	if got := NewRateLimiter(0, 1).RetryAfter(); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}
