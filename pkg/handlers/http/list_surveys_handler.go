package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/orgpulse/orgpulse/pkg/domain/survey"
	"github.com/sirupsen/logrus"
)

type listSurveysHandler struct {
	logger  *logrus.Logger
	surveys survey.Repository
}

func NewListSurveysHandler(logger *logrus.Logger, surveys survey.Repository) Handler {
	return &listSurveysHandler{
		logger:  logger,
		surveys: surveys,
	}
}

func (h *listSurveysHandler) Handle(c *fiber.Ctx) error {
	companyID, err := companyIDFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "company scope required"})
	}

	surveys, err := h.surveys.ListByCompany(c.Context(), companyID)
	if err != nil {
		h.logger.WithError(err).Error("failed to list surveys")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"surveys": surveys})
}
