package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	draftapp "github.com/orgpulse/orgpulse/pkg/app/draft"
	"github.com/orgpulse/orgpulse/pkg/domain"
	"github.com/orgpulse/orgpulse/pkg/domain/draft"
	"github.com/orgpulse/orgpulse/pkg/handlers/http/request"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fastjson"
)

type saveDraftContentHandler struct {
	logger *logrus.Logger
	drafts draft.Repository
	finder draftapp.Finder
}

func NewSaveDraftContentHandler(logger *logrus.Logger, drafts draft.Repository, finder draftapp.Finder) Handler {
	return &saveDraftContentHandler{
		logger: logger,
		drafts: drafts,
		finder: finder,
	}
}

// Handle is the compare-and-save write path for draft content. The
// submitted version must match the stored one; a stale version gets a 409
// carrying the authority's current version so the client can rebase.
func (h *saveDraftContentHandler) Handle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("draft_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid draft_id"})
	}

	var req request.SaveDraftContentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Version < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "version is required"})
	}

	if len(req.Payload) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "payload is required"})
	}

	if err := fastjson.ValidateBytes(req.Payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "payload must be valid JSON"})
	}

	newVersion, err := h.drafts.CompareAndSave(c.Context(), id, req.Version, req.Payload)
	if err != nil {
		if conflict, ok := domain.AsVersionConflictError(err); ok {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":          "version conflict",
				"currentVersion": conflict.CurrentVersion,
			})
		}
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "draft not found"})
		}
		h.logger.WithError(err).Error("failed to save draft content")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	h.finder.Invalidate(c.Context(), id)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"version": newVersion})
}
