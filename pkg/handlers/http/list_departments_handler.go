package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/orgpulse/orgpulse/pkg/common"
	"github.com/orgpulse/orgpulse/pkg/domain/department"
	"github.com/orgpulse/orgpulse/pkg/domain/user"
	"github.com/sirupsen/logrus"
)

type listDepartmentsHandler struct {
	logger      *logrus.Logger
	departments department.Repository
}

func NewListDepartmentsHandler(logger *logrus.Logger, departments department.Repository) Handler {
	return &listDepartmentsHandler{
		logger:      logger,
		departments: departments,
	}
}

func (h *listDepartmentsHandler) Handle(c *fiber.Ctx) error {
	var companyID uuid.UUID

	if role, _ := c.Locals(common.RoleContextKey).(string); role == user.RoleSuperAdmin && c.Query("company_id") != "" {
		parsed, err := uuid.Parse(c.Query("company_id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid company_id"})
		}
		companyID = parsed
	} else {
		parsed, err := companyIDFromLocals(c)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "company scope required"})
		}
		companyID = parsed
	}

	departments, err := h.departments.ListByCompany(c.Context(), companyID)
	if err != nil {
		h.logger.WithError(err).Error("failed to list departments")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"departments": departments})
}
