package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/orgpulse/orgpulse/pkg/domain/company"
	"github.com/sirupsen/logrus"
)

type listCompaniesHandler struct {
	logger    *logrus.Logger
	companies company.Repository
}

func NewListCompaniesHandler(logger *logrus.Logger, companies company.Repository) Handler {
	return &listCompaniesHandler{
		logger:    logger,
		companies: companies,
	}
}

func (h *listCompaniesHandler) Handle(c *fiber.Ctx) error {
	companies, err := h.companies.List(c.Context())
	if err != nil {
		h.logger.WithError(err).Error("failed to list companies")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"companies": companies})
}
