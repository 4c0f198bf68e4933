package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tenantworks/saas-admin/internal/api/metrics"
	"github.com/tenantworks/saas-admin/internal/ratelimit"
)

// KeyFunc derives the bucket key for a request.
type KeyFunc func(c echo.Context) string

// KeyByIP buckets by the client address.
func KeyByIP(c echo.Context) string {
	return c.RealIP()
}

// KeyByTenant buckets by the authenticated tenant, falling back to the client
// address when no identity has been attached yet.
func KeyByTenant(c echo.Context) string {
	if ident, ok := IdentityFrom(c); ok && ident.TenantID != "" {
		return ident.TenantID
	}
	return c.RealIP()
}

// RateLimit throttles requests through the given limiter. Rejections respond
// 429 with draft RateLimit-* headers and a Retry-After hint. A store failure
// fails open: throttling protects capacity, it must not take the API down.
func RateLimit(lim *ratelimit.Limiter, key KeyFunc, msg string, log zerolog.Logger) echo.MiddlewareFunc {
	return rateLimitFunc(lim, key, msg, log, false)
}

// RateLimitFailures is RateLimit for the auth tier: successful requests are
// refunded after the handler runs, so only failed attempts consume quota.
func RateLimitFailures(lim *ratelimit.Limiter, key KeyFunc, msg string, log zerolog.Logger) echo.MiddlewareFunc {
	return rateLimitFunc(lim, key, msg, log, true)
}

func rateLimitFunc(lim *ratelimit.Limiter, key KeyFunc, msg string, log zerolog.Logger, refundSuccess bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			k := key(c)

			res, err := lim.Allow(c.Request().Context(), k)
			if err != nil {
				log.Error().Err(err).Str("tier", lim.Name()).Msg("rate limit store unavailable, admitting request")
				return next(c)
			}

			setRateLimitHeaders(c, res)

			if !res.Allowed {
				metrics.RateLimitRejectionsTotal.WithLabelValues(lim.Name()).Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, msg)
			}

			err = next(c)
			if refundSuccess && err == nil && c.Response().Status < http.StatusBadRequest {
				if rerr := lim.Refund(c.Request().Context(), k); rerr != nil {
					log.Warn().Err(rerr).Str("tier", lim.Name()).Msg("rate limit refund failed")
				}
			}
			return err
		}
	}
}

func setRateLimitHeaders(c echo.Context, res ratelimit.Result) {
	reset := int64(res.RetryAfter.Seconds())
	if reset < 1 {
		reset = 1
	}
	h := c.Response().Header()
	h.Set("RateLimit-Limit", strconv.FormatInt(res.Limit, 10))
	h.Set("RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
	h.Set("RateLimit-Reset", strconv.FormatInt(reset, 10))
	if !res.Allowed {
		h.Set("Retry-After", strconv.FormatInt(reset, 10))
	}
}
