package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/orgpulse/orgpulse/pkg/domain/draft"
	"github.com/orgpulse/orgpulse/pkg/domain/microclimate"
	"github.com/orgpulse/orgpulse/pkg/handlers/http/request"
	"github.com/sirupsen/logrus"
)

type createMicroclimateHandler struct {
	logger        *logrus.Logger
	microclimates microclimate.Repository
	drafts        draft.Repository
}

func NewCreateMicroclimateHandler(
	logger *logrus.Logger,
	microclimates microclimate.Repository,
	drafts draft.Repository,
) Handler {
	return &createMicroclimateHandler{
		logger:        logger,
		microclimates: microclimates,
		drafts:        drafts,
	}
}

// Handle opens a live session. A tally draft is created alongside it; the
// session's running reaction counts are autosaved into that draft.
func (h *createMicroclimateHandler) Handle(c *fiber.Ctx) error {
	var req request.CreateMicroclimateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Question == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "question is required"})
	}

	companyID, err := companyIDFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "company scope required"})
	}

	hostID, err := userIDFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "user scope required"})
	}

	tally := draft.Draft{
		CompanyID: companyID,
		AuthorID:  hostID,
		Kind:      draft.KindMicroclimate,
		Payload:   []byte("{}"),
	}
	if err := h.drafts.Save(c.Context(), &tally); err != nil {
		h.logger.WithError(err).Error("failed to create tally draft")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	entity := microclimate.Microclimate{
		CompanyID: companyID,
		HostID:    hostID,
		Question:  req.Question,
		TallyID:   tally.ID,
	}
	if err := h.microclimates.Save(c.Context(), &entity); err != nil {
		h.logger.WithError(err).Error("failed to create microclimate")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(entity)
}
