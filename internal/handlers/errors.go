package handlers

import (
	"errors"
	"log/slog"

	apperrors "casacalc/internal/errors"
	"casacalc/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps a domain error code to its HTTP status.
func statusFor(err *apperrors.DomainError) int {
	switch err.Code {
	case apperrors.ErrCalculationNotFound.Code, apperrors.ErrHistoryDisabled.Code:
		return fiber.StatusNotFound
	default:
		return fiber.StatusBadRequest
	}
}

// respondError writes domain errors with their code and logs anything else
// as an internal failure.
func respondError(c *fiber.Ctx, logger *slog.Logger, err error) error {
	var de *apperrors.DomainError
	if errors.As(err, &de) {
		return utils.DomainFailure(c, statusFor(de), de)
	}

	logger.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	return utils.InternalError(c, "internal server error")
}
