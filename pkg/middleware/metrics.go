package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/orgpulse/orgpulse/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

type metricsMiddleware struct {
	logger *logrus.Logger
}

func NewMetricsMiddleware(logger *logrus.Logger) Middleware {
	return &metricsMiddleware{logger: logger}
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
		}

		prometheus.RequestTotal.WithLabelValues(c.Method(), strconv.Itoa(status)).Inc()
		return err
	}
}
