package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/orgpulse/orgpulse/pkg/app/dashboard"
	"github.com/sirupsen/logrus"
)

type companyDashboardHandler struct {
	logger    *logrus.Logger
	dashboard dashboard.Service
}

func NewCompanyDashboardHandler(logger *logrus.Logger, service dashboard.Service) Handler {
	return &companyDashboardHandler{
		logger:    logger,
		dashboard: service,
	}
}

func (h *companyDashboardHandler) Handle(c *fiber.Ctx) error {
	companyID, err := companyIDFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "company scope required"})
	}

	overview, err := h.dashboard.CompanyOverview(c.Context(), companyID)
	if err != nil {
		h.logger.WithError(err).Error("failed to build dashboard")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(overview)
}
