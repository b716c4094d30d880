package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/orgpulse/orgpulse/pkg/common"
	"github.com/orgpulse/orgpulse/pkg/domain/user"
	"github.com/sirupsen/logrus"
)

type listUsersHandler struct {
	logger *logrus.Logger
	users  user.Repository
}

func NewListUsersHandler(logger *logrus.Logger, users user.Repository) Handler {
	return &listUsersHandler{
		logger: logger,
		users:  users,
	}
}

// Handle lists users with pagination, search, role and department
// filters. Company admins only see their own company.
func (h *listUsersHandler) Handle(c *fiber.Ctx) error {
	filter := user.ListFilter{
		Role:   c.Query("role"),
		Search: c.Query("search"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 20),
	}

	if filter.Role != "" && !user.ValidRole(filter.Role) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid role filter"})
	}

	if raw := c.Query("department_id"); raw != "" {
		departmentID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid department_id"})
		}
		filter.DepartmentID = departmentID
	}

	if role, _ := c.Locals(common.RoleContextKey).(string); role != user.RoleSuperAdmin {
		companyID, err := companyIDFromLocals(c)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "company scope required"})
		}
		filter.CompanyID = companyID
	}

	users, total, err := h.users.List(c.Context(), filter)
	if err != nil {
		h.logger.WithError(err).Error("failed to list users")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"users": users,
		"total": total,
		"page":  filter.Page,
		"limit": filter.Limit,
	})
}
