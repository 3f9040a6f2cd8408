package handlers

import (
	"errors"
	"log/slog"
	"time"

	"casacalc/internal/services/auth"
	"casacalc/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	authService auth.Service
	tokenTTL    time.Duration
	logger      *slog.Logger
}

func NewAdminHandler(authService auth.Service, tokenTTL time.Duration, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		authService: authService,
		tokenTTL:    tokenTTL,
		logger:      logger,
	}
}

// Login exchanges the admin password for an access token.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Password string `json:"password"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if input.Password == "" {
		return utils.BadRequest(c, "password is required")
	}

	token, err := h.authService.Login(input.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			return utils.Unauthorized(c, "invalid password")
		case errors.Is(err, auth.ErrAuthDisabled):
			return utils.Respond(c, fiber.StatusServiceUnavailable, fiber.Map{"error": err.Error()})
		default:
			return respondError(c, h.logger, err)
		}
	}

	return utils.Success(c, fiber.Map{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int(h.tokenTTL.Seconds()),
	})
}
