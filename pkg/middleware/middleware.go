package middleware

import "github.com/gofiber/fiber/v2"

type Middleware interface {
	Middleware() fiber.Handler
}

type noopMiddleware struct{}

// NewNoopMiddleware passes every request through. Used where a slot in
// the transport must be filled but the feature is disabled.
func NewNoopMiddleware() Middleware {
	return noopMiddleware{}
}

func (noopMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Next()
	}
}

type Transport struct {
	AuthMiddleware      Middleware
	AdminAuthMiddleware Middleware
	RateLimitMiddleware Middleware
	MetricsMiddleware   Middleware
	RecoverMiddleware   Middleware
}
