package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/orgpulse/orgpulse/pkg/common"
	"github.com/orgpulse/orgpulse/pkg/domain"
	"github.com/orgpulse/orgpulse/pkg/domain/user"
	"github.com/orgpulse/orgpulse/pkg/handlers/http/request"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type createUserHandler struct {
	logger *logrus.Logger
	users  user.Repository
}

func NewCreateUserHandler(logger *logrus.Logger, users user.Repository) Handler {
	return &createUserHandler{
		logger: logger,
		users:  users,
	}
}

// Handle creates a user inside the caller's company. Only super admins
// may create users for a different company or mint other super admins.
func (h *createUserHandler) Handle(c *fiber.Ctx) error {
	var req request.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email, name and password are required"})
	}

	if !user.ValidEmail(req.Email) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid email address"})
	}

	if len(req.Password) < user.MinPasswordLength {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("password must be at least %d characters", user.MinPasswordLength),
		})
	}

	callerRole, _ := c.Locals(common.RoleContextKey).(string)

	entity := user.User{
		Email: req.Email,
		Name:  req.Name,
		Role:  req.Role,
	}

	if req.Role == user.RoleSuperAdmin && callerRole != user.RoleSuperAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "only super admins can create super admins"})
	}

	if callerRole == user.RoleSuperAdmin && req.CompanyID != "" {
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

	if req.DepartmentID != "" {
		departmentID, err := uuid.Parse(req.DepartmentID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid department_id"})
		}
		entity.DepartmentID = &departmentID
	}

	if _, err := h.users.FindByEmail(c.Context(), req.Email); err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": domain.ErrEmailAlreadyExists.Error()})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		h.logger.WithError(err).Error("failed to look up email")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "user creation failed"})
	}

	if err := entity.SetPassword(req.Password); err != nil {
		h.logger.WithError(err).Error("failed to hash password")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "user creation failed"})
	}

	if err := h.users.Save(c.Context(), &entity); err != nil {
		h.logger.WithError(err).Error("failed to create user")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(entity)
}
