package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	microclimateapp "github.com/orgpulse/orgpulse/pkg/app/microclimate"
	"github.com/orgpulse/orgpulse/pkg/domain"
	"github.com/orgpulse/orgpulse/pkg/domain/microclimate"
	"github.com/orgpulse/orgpulse/pkg/handlers/http/request"
	"github.com/sirupsen/logrus"
)

type reactMicroclimateHandler struct {
	logger        *logrus.Logger
	microclimates microclimate.Repository
	tally         *microclimateapp.LiveTally
}

func NewReactMicroclimateHandler(
	logger *logrus.Logger,
	microclimates microclimate.Repository,
	tally *microclimateapp.LiveTally,
) Handler {
	return &reactMicroclimateHandler{
		logger:        logger,
		microclimates: microclimates,
		tally:         tally,
	}
}

func (h *reactMicroclimateHandler) Handle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("microclimate_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid microclimate_id"})
	}

	var req request.ReactMicroclimateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Reaction == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "reaction is required"})
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

	if entity.Status != microclimate.StatusLive {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "session is closed"})
	}

	if err := h.tally.React(c.Context(), entity.TallyID, req.Reaction); err != nil {
		h.logger.WithError(err).Error("failed to record reaction")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"counts": h.tally.Counts(entity.TallyID),
	})
}
