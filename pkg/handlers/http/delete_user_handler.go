package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/orgpulse/orgpulse/pkg/common"
	"github.com/orgpulse/orgpulse/pkg/domain"
	"github.com/orgpulse/orgpulse/pkg/domain/user"
	"github.com/sirupsen/logrus"
)

type deleteUserHandler struct {
	logger *logrus.Logger
	users  user.Repository
}

func NewDeleteUserHandler(logger *logrus.Logger, users user.Repository) Handler {
	return &deleteUserHandler{
		logger: logger,
		users:  users,
	}
}

func (h *deleteUserHandler) Handle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user_id"})
	}

	entity, err := h.users.FindByID(c.Context(), id)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		h.logger.WithError(err).Error("failed to load user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if role, _ := c.Locals(common.RoleContextKey).(string); role != user.RoleSuperAdmin {
		companyID, err := companyIDFromLocals(c)
		if err != nil || entity.CompanyID != companyID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "user belongs to another company"})
		}
	}

	if err := h.users.Delete(c.Context(), id); err != nil {
		h.logger.WithError(err).Error("failed to delete user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
