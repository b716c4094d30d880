package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	draftapp "github.com/orgpulse/orgpulse/pkg/app/draft"
	"github.com/orgpulse/orgpulse/pkg/domain"
	"github.com/sirupsen/logrus"
)

type getDraftHandler struct {
	logger *logrus.Logger
	finder draftapp.Finder
}

func NewGetDraftHandler(logger *logrus.Logger, finder draftapp.Finder) Handler {
	return &getDraftHandler{
		logger: logger,
		finder: finder,
	}
}

func (h *getDraftHandler) Handle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("draft_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid draft_id"})
	}

	entity, err := h.finder.Find(c.Context(), id)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "draft not found"})
		}
		h.logger.WithError(err).Error("failed to load draft")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	companyID, err := companyIDFromLocals(c)
	if err != nil || entity.CompanyID != companyID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "draft not found"})
	}

	return c.Status(fiber.StatusOK).JSON(entity)
}
