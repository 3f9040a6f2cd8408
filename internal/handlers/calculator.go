package handlers

import (
	"encoding/json"
	"log/slog"

	"casacalc/internal/models"
	"casacalc/internal/services/calculator"
	"casacalc/internal/utils"
	"casacalc/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CalculatorHandler struct {
	service calculator.Service
	logger  *slog.Logger
}

func NewCalculatorHandler(service calculator.Service, logger *slog.Logger) *CalculatorHandler {
	return &CalculatorHandler{
		service: service,
		logger:  logger,
	}
}

// Calculate validates the raw body against the input schema, decodes it
// and returns the first-year cost breakdown.
func (h *CalculatorHandler) Calculate(c *fiber.Ctx) error {
	body := c.Body()
	if err := validation.ValidatePropertyRequest(body); err != nil {
		return respondError(c, h.logger, err)
	}

	var input models.PropertyInput
	if err := json.Unmarshal(body, &input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	result, err := h.service.Calculate(c.UserContext(), input)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.Success(c, result)
}

// GetCalculation returns a stored result exactly as it was first sent.
func (h *CalculatorHandler) GetCalculation(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "invalid calculation id")
	}

	doc, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(doc)
}
