package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/orgpulse/orgpulse/pkg/domain"
	"github.com/orgpulse/orgpulse/pkg/domain/user"
	"github.com/orgpulse/orgpulse/pkg/handlers/http/request"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type registerHandler struct {
	logger *logrus.Logger
	users  user.Repository
}

func NewRegisterHandler(logger *logrus.Logger, users user.Repository) Handler {
	return &registerHandler{
		logger: logger,
		users:  users,
	}
}

func (h *registerHandler) Handle(c *fiber.Ctx) error {
	var req request.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Error("failed to bind register request")
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

	if _, err := h.users.FindByEmail(c.Context(), req.Email); err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": domain.ErrEmailAlreadyExists.Error()})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		h.logger.WithError(err).Error("failed to look up email")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "registration failed"})
	}

	entity := user.User{
		Email: req.Email,
		Name:  req.Name,
		Role:  req.Role,
	}

	if req.CompanyID != "" {
		companyID, err := uuid.Parse(req.CompanyID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid company_id"})
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

	if err := entity.SetPassword(req.Password); err != nil {
		h.logger.WithError(err).Error("failed to hash password")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "registration failed"})
	}

	if err := h.users.Save(c.Context(), &entity); err != nil {
		h.logger.WithError(err).Error("failed to create user")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(entity)
}
