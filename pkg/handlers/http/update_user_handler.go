package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/orgpulse/orgpulse/pkg/common"
	"github.com/orgpulse/orgpulse/pkg/domain"
	"github.com/orgpulse/orgpulse/pkg/domain/user"
	"github.com/orgpulse/orgpulse/pkg/handlers/http/request"
	"github.com/sirupsen/logrus"
)

type updateUserHandler struct {
	logger *logrus.Logger
	users  user.Repository
}

func NewUpdateUserHandler(logger *logrus.Logger, users user.Repository) Handler {
	return &updateUserHandler{
		logger: logger,
		users:  users,
	}
}

func (h *updateUserHandler) Handle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user_id"})
	}

	var req request.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
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

	if req.Name != nil {
		entity.Name = *req.Name
	}

	if req.Role != nil {
		if !user.ValidRole(*req.Role) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid role"})
		}
		entity.Role = *req.Role
	}

	if req.DepartmentID != nil {
		if *req.DepartmentID == "" {
			entity.DepartmentID = nil
		} else {
			departmentID, err := uuid.Parse(*req.DepartmentID)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid department_id"})
			}
			entity.DepartmentID = &departmentID
		}
	}

	if req.Active != nil {
		entity.Active = *req.Active
	}

	if req.Password != nil {
		if err := entity.SetPassword(*req.Password); err != nil {
			h.logger.WithError(err).Error("failed to hash password")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "update failed"})
		}
	}

	if err := h.users.Save(c.Context(), entity); err != nil {
		h.logger.WithError(err).Error("failed to update user")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(entity)
}
