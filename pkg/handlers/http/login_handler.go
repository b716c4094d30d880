package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/orgpulse/orgpulse/pkg/domain"
	"github.com/orgpulse/orgpulse/pkg/domain/user"
	"github.com/orgpulse/orgpulse/pkg/handlers/http/request"
	"github.com/orgpulse/orgpulse/pkg/infra/jwt"
	"github.com/sirupsen/logrus"
)

type loginHandler struct {
	logger     *logrus.Logger
	users      user.Repository
	jwtManager jwt.Manager
}

func NewLoginHandler(logger *logrus.Logger, users user.Repository, jwtManager jwt.Manager) Handler {
	return &loginHandler{
		logger:     logger,
		users:      users,
		jwtManager: jwtManager,
	}
}

func (h *loginHandler) Handle(c *fiber.Ctx) error {
	var req request.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entity, err := h.users.FindByEmail(c.Context(), req.Email)
	if err != nil || !entity.CheckPassword(req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": domain.ErrInvalidCredentials.Error()})
	}

	if !entity.Active {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "account disabled"})
	}

	token, err := h.jwtManager.CreateToken(entity.ID, entity.CompanyID, entity.Role)
	if err != nil {
		h.logger.WithError(err).Error("failed to issue token")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "login failed"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token": token,
		"user":  entity,
	})
}
