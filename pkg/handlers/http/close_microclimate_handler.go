package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	draftapp "github.com/orgpulse/orgpulse/pkg/app/draft"
	microclimateapp "github.com/orgpulse/orgpulse/pkg/app/microclimate"
	"github.com/orgpulse/orgpulse/pkg/domain"
	"github.com/orgpulse/orgpulse/pkg/domain/microclimate"
	"github.com/sirupsen/logrus"
)

type closeMicroclimateHandler struct {
	logger        *logrus.Logger
	microclimates microclimate.Repository
	tally         *microclimateapp.LiveTally
	autosaver     *draftapp.Autosaver
}

func NewCloseMicroclimateHandler(
	logger *logrus.Logger,
	microclimates microclimate.Repository,
	tally *microclimateapp.LiveTally,
	autosaver *draftapp.Autosaver,
) Handler {
	return &closeMicroclimateHandler{
		logger:        logger,
		microclimates: microclimates,
		tally:         tally,
		autosaver:     autosaver,
	}
}

// Handle closes a live session: the final tally snapshot is flushed past
// the debounce delay, then the session is marked closed and its
// coordinator released.
func (h *closeMicroclimateHandler) Handle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("microclimate_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid microclimate_id"})
	}

	entity, err := h.microclimates.FindByID(c.Context(), id)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "microclimate not found"})
		}
		h.logger.WithError(err).Error("failed to load microclimate")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	companyID, err := companyIDFromLocals(c)
	if err != nil || entity.CompanyID != companyID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "microclimate not found"})
	}

	if entity.Status == microclimate.StatusClosed {
		return c.Status(fiber.StatusOK).JSON(entity)
	}

	if err := h.tally.Flush(c.Context(), entity.TallyID); err != nil {
		h.logger.WithError(err).WithField("tally_id", entity.TallyID).Error("failed to flush tally")
	}

	entity.Status = microclimate.StatusClosed
	if err := h.microclimates.Save(c.Context(), entity); err != nil {
		h.logger.WithError(err).Error("failed to close microclimate")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	h.autosaver.Release(entity.TallyID)

	return c.Status(fiber.StatusOK).JSON(entity)
}
