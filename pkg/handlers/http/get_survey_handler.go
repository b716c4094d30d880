package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/orgpulse/orgpulse/pkg/domain"
	"github.com/orgpulse/orgpulse/pkg/domain/survey"
	"github.com/sirupsen/logrus"
)

type getSurveyHandler struct {
	logger  *logrus.Logger
	surveys survey.Repository
}

func NewGetSurveyHandler(logger *logrus.Logger, surveys survey.Repository) Handler {
	return &getSurveyHandler{
		logger:  logger,
		surveys: surveys,
	}
}

func (h *getSurveyHandler) Handle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("survey_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid survey_id"})
	}

	entity, err := h.surveys.FindByID(c.Context(), id)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "survey not found"})
		}
		h.logger.WithError(err).Error("failed to load survey")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	companyID, err := companyIDFromLocals(c)
	if err != nil || entity.CompanyID != companyID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "survey not found"})
	}

	return c.Status(fiber.StatusOK).JSON(entity)
}
