package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/orgpulse/orgpulse/pkg/domain"
	"github.com/orgpulse/orgpulse/pkg/domain/response"
	"github.com/orgpulse/orgpulse/pkg/domain/survey"
	"github.com/orgpulse/orgpulse/pkg/handlers/http/request"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fastjson"
)

type submitResponseHandler struct {
	logger    *logrus.Logger
	surveys   survey.Repository
	responses response.Repository
}

func NewSubmitResponseHandler(logger *logrus.Logger, surveys survey.Repository, responses response.Repository) Handler {
	return &submitResponseHandler{
		logger:    logger,
		surveys:   surveys,
		responses: responses,
	}
}

// Handle records an answer set against an active survey. When the survey
// is anonymous the respondent link is dropped before persisting.
func (h *submitResponseHandler) Handle(c *fiber.Ctx) error {
	surveyID, err := uuid.Parse(c.Params("survey_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid survey_id"})
	}

	var req request.SubmitResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if len(req.Answers) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "answers are required"})
	}

	if err := fastjson.ValidateBytes(req.Answers); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "answers must be valid JSON"})
	}

	entity, err := h.surveys.FindByID(c.Context(), surveyID)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "survey not found"})
		}
		h.logger.WithError(err).Error("failed to load survey")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if entity.Status != survey.StatusActive {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "survey is not accepting responses"})
	}

	submission := response.Response{
		SurveyID:   entity.ID,
		CompanyID:  entity.CompanyID,
		Answers:    domain.JSONDocument(req.Answers),
		Department: req.Department,
		Tenure:     req.Tenure,
	}

	if !entity.Anonymous {
		if respondentID, err := userIDFromLocals(c); err == nil {
			submission.RespondentID = &respondentID
		}
	}

	if err := h.responses.Save(c.Context(), &submission); err != nil {
		h.logger.WithError(err).Error("failed to save response")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(submission)
}
