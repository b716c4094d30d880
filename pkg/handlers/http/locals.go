package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/orgpulse/orgpulse/pkg/common"
)

func companyIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals(common.CompanyIDContextKey).(string)
	if !ok || raw == "" {
		return uuid.Nil, fmt.Errorf("company not found in request context")
	}
	return uuid.Parse(raw)
}

func userIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals(common.UserIDContextKey).(string)
	if !ok || raw == "" {
		return uuid.Nil, fmt.Errorf("user not found in request context")
	}
	return uuid.Parse(raw)
}
