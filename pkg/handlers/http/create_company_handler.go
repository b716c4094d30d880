package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/orgpulse/orgpulse/pkg/domain/company"
	"github.com/orgpulse/orgpulse/pkg/handlers/http/request"
	"github.com/sirupsen/logrus"
)

type createCompanyHandler struct {
	logger    *logrus.Logger
	companies company.Repository
}

func NewCreateCompanyHandler(logger *logrus.Logger, companies company.Repository) Handler {
	return &createCompanyHandler{
		logger:    logger,
		companies: companies,
	}
}

func (h *createCompanyHandler) Handle(c *fiber.Ctx) error {
	var req request.CreateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	entity := company.Company{
		Name:   req.Name,
		Sector: req.Sector,
	}

	if err := h.companies.Save(c.Context(), &entity); err != nil {
		h.logger.WithError(err).Error("failed to create company")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(entity)
}
