package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/orgpulse/orgpulse/pkg/infra/prometheus"
	"github.com/orgpulse/orgpulse/pkg/ratelimit"
	"github.com/sirupsen/logrus"
)

type rateLimitMiddleware struct {
	limiter *ratelimit.Limiter
	routes  map[string]*ratelimit.Limiter
	logger  *logrus.Logger
}

func NewRateLimitMiddleware(limiter *ratelimit.Limiter, logger *logrus.Logger) Middleware {
	return &rateLimitMiddleware{
		limiter: limiter,
		logger:  logger,
	}
}

// NewRouteAwareRateLimitMiddleware takes per-path-prefix limiter
// overrides. The longest matching prefix wins; everything else falls back
// to the default limiter. Overridden prefixes count in their own buckets
// so a strict login limit does not starve general traffic.
func NewRouteAwareRateLimitMiddleware(
	limiter *ratelimit.Limiter,
	routes map[string]*ratelimit.Limiter,
	logger *logrus.Logger,
) Middleware {
	return &rateLimitMiddleware{
		limiter: limiter,
		routes:  routes,
		logger:  logger,
	}
}

// Middleware consults the limiter before delegating. Rejected requests
// short-circuit with 429 and never reach the handler; admitted requests
// pass through unchanged, and handler errors are never intercepted.
func (m *rateLimitMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := clientIdentifier(c)
		limiter, scope := m.limiterFor(c.Path())
		if scope != "" {
			identifier = scope + "|" + identifier
		}

		result := limiter.Check(c.Context(), identifier)

		c.Set("X-RateLimit-Limit", strconv.Itoa(limiter.Config().MaxRequests))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

		if !result.Allowed {
			retryAfterMs := result.RetryAfter.Milliseconds()

			prometheus.RateLimitRejections.WithLabelValues(c.Path()).Inc()
			m.logger.WithFields(logrus.Fields{
				"identifier":     identifier,
				"path":           c.Path(),
				"retry_after_ms": retryAfterMs,
			}).Debug("rate limit exceeded")

			c.Set("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())+1))

			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":      "Too many requests",
				"retryAfter": retryAfterMs,
			})
		}

		return c.Next()
	}
}

func (m *rateLimitMiddleware) limiterFor(path string) (*ratelimit.Limiter, string) {
	best := ""
	for prefix := range m.routes {
		if strings.HasPrefix(path, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return m.limiter, ""
	}
	return m.routes[best], best
}

// clientIdentifier derives the limiter key from common proxy headers,
// falling back to the connection address, then to the shared bucket.
// Header and IP values alias fasthttp's request buffer, which is reused
// once the handler returns, so anything kept as a key is copied first.
func clientIdentifier(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return utils.CopyString(ip)
		}
	}

	if ip := strings.TrimSpace(c.Get("X-Real-IP")); ip != "" {
		return utils.CopyString(ip)
	}

	if ip := c.IP(); ip != "" {
		return utils.CopyString(ip)
	}

	return ratelimit.UnknownIdentifier
}
