package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/orgpulse/orgpulse/pkg/domain"
	"github.com/orgpulse/orgpulse/pkg/domain/draft"
	"github.com/orgpulse/orgpulse/pkg/handlers/http/request"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fastjson"
)

type createDraftHandler struct {
	logger *logrus.Logger
	drafts draft.Repository
}

func NewCreateDraftHandler(logger *logrus.Logger, drafts draft.Repository) Handler {
	return &createDraftHandler{
		logger: logger,
		drafts: drafts,
	}
}

func (h *createDraftHandler) Handle(c *fiber.Ctx) error {
	var req request.CreateDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if len(req.Payload) > 0 {
		if err := fastjson.ValidateBytes(req.Payload); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "payload must be valid JSON"})
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

	entity := draft.Draft{
		CompanyID: companyID,
		AuthorID:  authorID,
		Kind:      req.Kind,
		Payload:   domain.JSONDocument(req.Payload),
	}

	if req.SurveyID != "" {
		surveyID, err := uuid.Parse(req.SurveyID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid survey_id"})
		}
		entity.SurveyID = &surveyID
	}

	if err := h.drafts.Save(c.Context(), &entity); err != nil {
		h.logger.WithError(err).Error("failed to create draft")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(entity)
}
