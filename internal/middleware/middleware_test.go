package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/ticket-sales/internal/config"
)

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func cacheConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:     true,
		Methods:     map[string]bool{http.MethodGet: true},
		TTL:         time.Minute,
		KeyStrategy: "route_query",
		Prefix:      "test:cache",
	}
}

func TestResponseCacheHitMissAndPurge(t *testing.T) {
	t.Parallel()

	rc := NewResponseCache(cacheConfig(), newRedis(t))
	calls := 0
	e := echo.New()
	e.Use(rc.Middleware())
	e.GET("/events/:id/customers", func(c echo.Context) error {
		calls++
		return c.HTML(http.StatusOK, "<p>event "+c.Param("id")+" v"+strconv.Itoa(calls)+"</p>")
	})

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	first := get("/events/1/customers")
	if first.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("expected MISS, got %q", first.Header().Get("X-Cache"))
	}
	second := get("/events/1/customers")
	if second.Header().Get("X-Cache") != "HIT" || second.Body.String() != first.Body.String() {
		t.Fatalf("expected cached copy, got %q / %q", second.Header().Get("X-Cache"), second.Body.String())
	}
	if !strings.HasPrefix(second.Header().Get(echo.HeaderContentType), "text/html") {
		t.Fatalf("content type not restored: %q", second.Header().Get(echo.HeaderContentType))
	}

	// A different id must not share the entry.
	if other := get("/events/2/customers"); other.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("expected MISS for another event")
	}

	if err := rc.Purge(context.Background()); err != nil {
		t.Fatalf("purge: %v", err)
	}
	third := get("/events/1/customers")
	if third.Header().Get("X-Cache") != "MISS" || !strings.Contains(third.Body.String(), "v3") {
		t.Fatalf("expected fresh render after purge, got %q", third.Body.String())
	}
}

func TestResponseCacheSkipsErrors(t *testing.T) {
	t.Parallel()

	rc := NewResponseCache(cacheConfig(), newRedis(t))
	e := echo.New()
	e.Use(rc.Middleware())
	e.GET("/customers/:id/summary", func(c echo.Context) error {
		return c.HTML(http.StatusNotFound, "missing")
	})

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers/9/summary", nil))
		if rec.Header().Get("X-Cache") != "MISS" {
			t.Fatalf("404 responses must not be cached")
		}
	}
}

func TestResponseCacheDisabledWithoutRedis(t *testing.T) {
	t.Parallel()

	rc := NewResponseCache(cacheConfig(), nil)
	if err := rc.Purge(context.Background()); err != nil {
		t.Fatalf("purge without redis should be a no-op, got %v", err)
	}
	e := echo.New()
	e.Use(rc.Middleware())
	e.GET("/events", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events", nil))
	if rec.Header().Get("X-Cache") != "" {
		t.Fatalf("expected no cache header, got %q", rec.Header().Get("X-Cache"))
	}
}

func TestDecodePayloadRejectsShortInput(t *testing.T) {
	t.Parallel()

	if _, _, _, ok := decodePayload([]byte{0, 0, 0}); ok {
		t.Fatalf("expected short payload to be rejected")
	}
	if _, _, _, ok := decodePayload([]byte{0, 0, 0, 200, 0, 0, 0, 50, '{'}); ok {
		t.Fatalf("expected truncated header to be rejected")
	}
}

func TestTokenBucketLimitsPostsOnly(t *testing.T) {
	t.Parallel()

	cfg := config.RateLimitConfig{
		Enabled:        true,
		Methods:        map[string]bool{http.MethodPost: true},
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            5 * time.Hour,
		KeyStrategy:    "ip_route",
		Prefix:         "test:rl",
	}
	e := echo.New()
	e.Use(NewTokenBucket(cfg, newRedis(t)))
	e.Match([]string{http.MethodGet, http.MethodPost}, "/customers/add", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	do := func(method string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(method, "/customers/add", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		e.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := do(http.MethodPost); rec.Code != http.StatusOK {
			t.Fatalf("post %d: expected 200, got %d", i, rec.Code)
		}
	}
	blocked := do(http.MethodPost)
	if blocked.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", blocked.Code)
	}
	if blocked.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
	if rec := do(http.MethodGet); rec.Code != http.StatusOK {
		t.Fatalf("GET should not be limited, got %d", rec.Code)
	}
}

func TestBuildRateKey(t *testing.T) {
	t.Parallel()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/customers/edit/7", nil)
	req.RemoteAddr = "192.0.2.4:1234"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/customers/edit/:id")

	tests := map[string]string{
		"ip":       "rl:ip:192.0.2.4",
		"route":    "rl:route:POST /customers/edit/:id",
		"ip_route": "rl:ip:192.0.2.4:route:POST /customers/edit/:id",
	}
	for strategy, want := range tests {
		got := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: strategy}, c)
		if got != want {
			t.Fatalf("%s: got %q, want %q", strategy, got, want)
		}
	}
}
