package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/orgpulse/orgpulse/pkg/common"
	"github.com/orgpulse/orgpulse/pkg/domain"
	"github.com/orgpulse/orgpulse/pkg/domain/company"
	"github.com/orgpulse/orgpulse/pkg/domain/department"
	"github.com/orgpulse/orgpulse/pkg/domain/user"
	"github.com/orgpulse/orgpulse/pkg/handlers/http/request"
	"github.com/sirupsen/logrus"
)

type createDepartmentHandler struct {
	logger      *logrus.Logger
	departments department.Repository
	companies   company.Repository
}

func NewCreateDepartmentHandler(logger *logrus.Logger, departments department.Repository, companies company.Repository) Handler {
	return &createDepartmentHandler{
		logger:      logger,
		departments: departments,
		companies:   companies,
	}
}

func (h *createDepartmentHandler) Handle(c *fiber.Ctx) error {
	var req request.CreateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	entity := department.Department{Name: req.Name}

	if role, _ := c.Locals(common.RoleContextKey).(string); role == user.RoleSuperAdmin && req.CompanyID != "" {
		companyID, err := uuid.Parse(req.CompanyID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid company_id"})
		}
		entity.CompanyID = companyID
	} else {
		companyID, err := companyIDFromLocals(c)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "company scope required"})
		}
		entity.CompanyID = companyID
	}

	if _, err := h.companies.FindByID(c.Context(), entity.CompanyID); err != nil {
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "company not found"})
		}
		h.logger.WithError(err).Error("failed to load company")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.departments.Save(c.Context(), &entity); err != nil {
		h.logger.WithError(err).Error("failed to create department")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(entity)
}
