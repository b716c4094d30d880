package middleware_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/orgpulse/orgpulse/pkg/middleware"
	"github.com/orgpulse/orgpulse/pkg/ratelimit"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newLimiter(maxRequests int) *ratelimit.Limiter {
	return ratelimit.NewLimiter(ratelimit.Config{
		Window:      time.Minute,
		MaxRequests: maxRequests,
	}, ratelimit.NewMemoryStore(), testLogger(), nil)
}

func TestRateLimitMiddleware_HandlerRunsOncePerAdmittedRequest(t *testing.T) {
	logger := testLogger()
	app := fiber.New()

	var handled int32
	app.Get("/ping",
		middleware.NewRateLimitMiddleware(newLimiter(2), logger).Middleware(),
		func(c *fiber.Ctx) error {
			atomic.AddInt32(&handled, 1)
			return c.SendString("pong")
		})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	// The handler never ran for the rejected request.
	assert.Equal(t, int32(2), atomic.LoadInt32(&handled))
}

func TestRateLimitMiddleware_RejectionBodyAndHeaders(t *testing.T) {
	logger := testLogger()
	app := fiber.New()

	app.Get("/ping",
		middleware.NewRateLimitMiddleware(newLimiter(1), logger).Middleware(),
		func(c *fiber.Ctx) error { return c.SendString("pong") })

	first := httptest.NewRequest("GET", "/ping", nil)
	first.Header.Set("X-Forwarded-For", "203.0.113.8")
	resp, err := app.Test(first)
	require.NoError(t, err)
	assert.Equal(t, "1", resp.Header.Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))

	second := httptest.NewRequest("GET", "/ping", nil)
	second.Header.Set("X-Forwarded-For", "203.0.113.8")
	resp, err = app.Test(second)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	var body struct {
		Error      string `json:"error"`
		RetryAfter int64  `json:"retryAfter"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Too many requests", body.Error)
	assert.Greater(t, body.RetryAfter, int64(0))
	assert.LessOrEqual(t, body.RetryAfter, time.Minute.Milliseconds())
}

func TestRateLimitMiddleware_IdentifiersDoNotInterfere(t *testing.T) {
	logger := testLogger()
	app := fiber.New()

	app.Get("/ping",
		middleware.NewRateLimitMiddleware(newLimiter(1), logger).Middleware(),
		func(c *fiber.Ctx) error { return c.SendString("pong") })

	reqA := httptest.NewRequest("GET", "/ping", nil)
	reqA.Header.Set("X-Forwarded-For", "203.0.113.1")
	resp, err := app.Test(reqA)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	reqA2 := httptest.NewRequest("GET", "/ping", nil)
	reqA2.Header.Set("X-Forwarded-For", "203.0.113.1")
	resp, err = app.Test(reqA2)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	reqB := httptest.NewRequest("GET", "/ping", nil)
	reqB.Header.Set("X-Forwarded-For", "203.0.113.2")
	resp, err = app.Test(reqB)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRouteAwareRateLimitMiddleware_OverrideWinsOnPrefix(t *testing.T) {
	logger := testLogger()
	app := fiber.New()

	mw := middleware.NewRouteAwareRateLimitMiddleware(
		newLimiter(100),
		map[string]*ratelimit.Limiter{"/login": newLimiter(1)},
		logger,
	)

	app.Use(mw.Middleware())
	app.Get("/login", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/other", func(c *fiber.Ctx) error { return c.SendString("ok") })

	login := func() int {
		req := httptest.NewRequest("GET", "/login", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.9")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusOK, login())
	assert.Equal(t, fiber.StatusTooManyRequests, login())

	// The strict login limit does not bleed into other routes.
	req := httptest.NewRequest("GET", "/other", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
