package handlers

import (
	"context"
	"log/slog"

	"casacalc/internal/ratetable"
	"casacalc/internal/services/exchange"
	"casacalc/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// RatesProvider is the part of the exchange provider the rate endpoints use.
type RatesProvider interface {
	Info(ctx context.Context) exchange.RateInfo
	Refresh(ctx context.Context) (exchange.RateInfo, error)
}

type RatesHandler struct {
	provider RatesProvider
	table    *ratetable.Table
	logger   *slog.Logger
}

func NewRatesHandler(provider RatesProvider, table *ratetable.Table, logger *slog.Logger) *RatesHandler {
	return &RatesHandler{
		provider: provider,
		table:    table,
		logger:   logger,
	}
}

func (h *RatesHandler) GetRates(c *fiber.Ctx) error {
	return utils.Success(c, h.provider.Info(c.UserContext()))
}

func (h *RatesHandler) GetTaxRates(c *fiber.Ctx) error {
	return utils.Success(c, h.table.Summary())
}

// RefreshRates drops the cached snapshot and fetches new rates.
func (h *RatesHandler) RefreshRates(c *fiber.Ctx) error {
	info, err := h.provider.Refresh(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	h.logger.Info("exchange rates refreshed", "source", info.Source)
	return utils.Success(c, info)
}
