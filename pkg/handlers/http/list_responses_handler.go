package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/orgpulse/orgpulse/pkg/domain"
	"github.com/orgpulse/orgpulse/pkg/domain/response"
	"github.com/orgpulse/orgpulse/pkg/domain/survey"
	"github.com/sirupsen/logrus"
)

type listResponsesHandler struct {
	logger    *logrus.Logger
	surveys   survey.Repository
	responses response.Repository
}

func NewListResponsesHandler(logger *logrus.Logger, surveys survey.Repository, responses response.Repository) Handler {
	return &listResponsesHandler{
		logger:    logger,
		surveys:   surveys,
		responses: responses,
	}
}

func (h *listResponsesHandler) Handle(c *fiber.Ctx) error {
	surveyID, err := uuid.Parse(c.Params("survey_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid survey_id"})
	}

	entity, err := h.surveys.FindByID(c.Context(), surveyID)
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

	responses, err := h.responses.ListBySurvey(c.Context(), surveyID)
	if err != nil {
		h.logger.WithError(err).Error("failed to list responses")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	total, err := h.responses.CountBySurvey(c.Context(), surveyID)
	if err != nil {
		h.logger.WithError(err).Error("failed to count responses")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"responses": responses,
		"total":     total,
	})
}
