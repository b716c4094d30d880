package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/orgpulse/orgpulse/pkg/domain"
	"github.com/orgpulse/orgpulse/pkg/domain/survey"
	"github.com/orgpulse/orgpulse/pkg/handlers/http/request"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fastjson"
)

type createSurveyHandler struct {
	logger  *logrus.Logger
	surveys survey.Repository
}

func NewCreateSurveyHandler(logger *logrus.Logger, surveys survey.Repository) Handler {
	return &createSurveyHandler{
		logger:  logger,
		surveys: surveys,
	}
}

func (h *createSurveyHandler) Handle(c *fiber.Ctx) error {
	var req request.CreateSurveyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}

	if len(req.Questions) > 0 {
		if err := fastjson.ValidateBytes(req.Questions); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "questions must be valid JSON"})
		}
	}

	companyID, err := companyIDFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "company scope required"})
	}

	authorID, err := userIDFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "user scope required"})
	}

	entity := survey.Survey{
		CompanyID:   companyID,
		AuthorID:    authorID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Questions:   domain.JSONDocument(req.Questions),
		Anonymous:   req.Anonymous,
	}

	if err := h.surveys.Save(c.Context(), &entity); err != nil {
		h.logger.WithError(err).Error("failed to create survey")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(entity)
}
