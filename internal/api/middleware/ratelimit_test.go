package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tenantworks/saas-admin/internal/core/domain"
	"github.com/tenantworks/saas-admin/internal/ratelimit"
)

func doRequest(e *echo.Echo, mw echo.MiddlewareFunc, handler echo.HandlerFunc, ident *domain.Identity) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:1234"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if ident != nil {
		c.Set(identityKey, *ident)
	}
	if err := mw(handler)(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestRateLimit_RejectsOverLimit(t *testing.T) {
	e := echo.New()
	lim := ratelimit.New("global", ratelimit.NewMemoryStore(), 3, time.Minute)
	mw := RateLimit(lim, KeyByIP, "too many requests", zerolog.Nop())

	for i := 1; i <= 3; i++ {
		if rec := doRequest(e, mw, okHandler, nil); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}

	rec := doRequest(e, mw, okHandler, nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("429 response missing Retry-After")
	}
	if rec.Header().Get("RateLimit-Remaining") != "0" {
		t.Fatalf("RateLimit-Remaining = %q, want 0", rec.Header().Get("RateLimit-Remaining"))
	}
}

func TestRateLimit_SetsQuotaHeaders(t *testing.T) {
	e := echo.New()
	lim := ratelimit.New("global", ratelimit.NewMemoryStore(), 10, time.Minute)
	mw := RateLimit(lim, KeyByIP, "too many requests", zerolog.Nop())

	rec := doRequest(e, mw, okHandler, nil)
	if rec.Header().Get("RateLimit-Limit") != "10" {
		t.Fatalf("RateLimit-Limit = %q, want 10", rec.Header().Get("RateLimit-Limit"))
	}
	if rec.Header().Get("RateLimit-Remaining") != "9" {
		t.Fatalf("RateLimit-Remaining = %q, want 9", rec.Header().Get("RateLimit-Remaining"))
	}
	if rec.Header().Get("RateLimit-Reset") == "" {
		t.Fatalf("RateLimit-Reset missing")
	}
}

func TestRateLimitFailures_RefundsSuccessfulRequests(t *testing.T) {
	e := echo.New()
	lim := ratelimit.New("auth", ratelimit.NewMemoryStore(), 2, time.Minute)
	mw := RateLimitFailures(lim, KeyByIP, "too many login attempts", zerolog.Nop())

	// Successful requests never consume quota.
	for i := 0; i < 10; i++ {
		if rec := doRequest(e, mw, okHandler, nil); rec.Code != http.StatusOK {
			t.Fatalf("successful request %d throttled: %d", i, rec.Code)
		}
	}

	failHandler := func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	// Failures burn through the limit of 2, then the tier rejects.
	for i := 0; i < 2; i++ {
		if rec := doRequest(e, mw, failHandler, nil); rec.Code != http.StatusUnauthorized {
			t.Fatalf("failed attempt %d: expected 401, got %d", i, rec.Code)
		}
	}
	if rec := doRequest(e, mw, failHandler, nil); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after failures exhausted quota, got %d", rec.Code)
	}
}

func TestKeyByTenant_FallsBackToIP(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:1234"
	c := e.NewContext(req, httptest.NewRecorder())
	if got := KeyByTenant(c); got != "203.0.113.7" {
		t.Fatalf("anonymous key = %q, want client IP", got)
	}

	c.Set(identityKey, domain.Identity{UserID: "u1", TenantID: "acme", Role: domain.RoleUser})
	if got := KeyByTenant(c); got != "acme" {
		t.Fatalf("authenticated key = %q, want tenant id", got)
	}
}

func TestRateLimit_TenantKeysIsolated(t *testing.T) {
	e := echo.New()
	lim := ratelimit.New("tenant", ratelimit.NewMemoryStore(), 1, time.Minute)
	mw := RateLimit(lim, KeyByTenant, "tenant rate limit exceeded", zerolog.Nop())

	acme := &domain.Identity{UserID: "u1", TenantID: "acme", Role: domain.RoleUser}
	globex := &domain.Identity{UserID: "u2", TenantID: "globex", Role: domain.RoleUser}

	if rec := doRequest(e, mw, okHandler, acme); rec.Code != http.StatusOK {
		t.Fatalf("acme first request: %d", rec.Code)
	}
	if rec := doRequest(e, mw, okHandler, acme); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("acme second request: expected 429, got %d", rec.Code)
	}
	// A different tenant's bucket is untouched.
	if rec := doRequest(e, mw, okHandler, globex); rec.Code != http.StatusOK {
		t.Fatalf("globex throttled by acme's bucket: %d", rec.Code)
	}
}
