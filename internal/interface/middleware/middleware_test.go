package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/planify/internal/application"
)

type stubTokens struct {
	calls int
}

func (s *stubTokens) Validate(_ context.Context, token string) (application.Principal, error) {
	s.calls++
	if token == "good" {
		return application.Principal{UserID: "u1", SessionID: "s1"}, nil
	}
	return application.Principal{}, application.ErrInvalidToken
}

func newEngine(mw ...gin.HandlerFunc) (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)
	hits := 0
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.Use(mw...)
	r.GET("/x", func(c *gin.Context) {
		hits++
		c.String(http.StatusOK, c.GetString(CtxUserIDKey))
	})
	return r, &hits
}

func TestAuthMiddleware(t *testing.T) {
	tokens := &stubTokens{}
	r, hits := newEngine(Auth(tokens))

	cases := []struct {
		header string
		status int
	}{
		{"", http.StatusUnauthorized},
		{"Basic abc", http.StatusUnauthorized},
		{"Bearer ", http.StatusUnauthorized},
		{"Bearer bad", http.StatusUnauthorized},
		{"Bearer good", http.StatusOK},
		{"bearer good", http.StatusOK},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		r.ServeHTTP(w, req)
		if w.Code != tc.status {
			t.Fatalf("%q: want %d got %d", tc.header, tc.status, w.Code)
		}
		if tc.status == http.StatusOK && w.Body.String() != "u1" {
			t.Fatalf("user id not propagated: %q", w.Body.String())
		}
	}
	if *hits != 2 {
		t.Fatalf("handler should only run for valid tokens, ran %d times", *hits)
	}
	// only the well-formed bearer headers reach the validator
	if tokens.calls != 3 {
		t.Fatalf("validator called %d times", tokens.calls)
	}
}

func TestRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r, _ := newEngine(RealIP(), RateLimit(rdb, 2, time.Minute, KeyByIPAndPath(), nil))
	do := func(ip string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("X-Forwarded-For", ip)
		r.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 2; i++ {
		if w := do("203.0.113.7"); w.Code != http.StatusOK {
			t.Fatalf("request %d: want 200 got %d", i, w.Code)
		}
	}
	w := do("203.0.113.7")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("want 429 got %d", w.Code)
	}
	if w.Header().Get("X-RateLimit-Remaining") != "0" || w.Header().Get("Retry-After") == "" {
		t.Fatalf("missing limit headers: %v", w.Header())
	}
	if w := do("198.51.100.1"); w.Code != http.StatusOK {
		t.Fatalf("other client should not be limited, got %d", w.Code)
	}

	mr.FastForward(time.Minute + time.Second)
	if w := do("203.0.113.7"); w.Code != http.StatusOK {
		t.Fatalf("window should reset, got %d", w.Code)
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.SetError("LOADING")

	r, hits := newEngine(RateLimit(rdb, 1, time.Minute, KeyByIPAndPath(), nil))
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("want 200 while redis errors, got %d", w.Code)
		}
	}
	if *hits != 3 {
		t.Fatalf("handler ran %d times", *hits)
	}
}

func TestRequestIDAndPrivateGate(t *testing.T) {
	r, _ := newEngine(RealIP(), RequireAllowed(AllowPrivateIP()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Forwarded-For", "10.1.2.3")
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("private ip: want 200 got %d", w.Code)
	}
	if id := w.Header().Get(RequestIDHeader); id == "" || id == "not-a-uuid" {
		t.Fatalf("request id not regenerated: %q", id)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Forwarded-For", "8.8.8.8")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("public ip: want 403 got %d", w.Code)
	}
}
