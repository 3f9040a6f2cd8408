package calculator

import (
	"context"
	"encoding/json"
	"log/slog"

	"casacalc/internal/errors"
	"casacalc/internal/models"
	"casacalc/internal/services/exchange"
	"casacalc/internal/validation"

	"github.com/google/uuid"
)

type service struct {
	engine  *Engine
	rates   RateProvider
	history HistoryRepository
	logger  *slog.Logger
	newID   func() uuid.UUID
}

// NewService wires the engine to its collaborators. history may be nil, in
// which case calculations are not recorded.
func NewService(engine *Engine, rates RateProvider, history HistoryRepository, logger *slog.Logger) Service {
	if engine == nil {
		panic("engine is required")
	}
	if rates == nil {
		panic("rate provider is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		engine:  engine,
		rates:   rates,
		history: history,
		logger:  logger.With("component", "calculator"),
		newID:   uuid.New,
	}
}

func (s *service) Calculate(ctx context.Context, in models.PropertyInput) (*models.CalculationResult, error) {
	in = in.WithDefaults()
	if err := validation.ValidatePropertyInput(in, s.engine.Table()); err != nil {
		return nil, err
	}

	quote := s.rates.Rates(ctx)
	rates := s.ensureCurrency(ctx, quote.Rates, string(in.SourceCurrency))

	result := s.engine.Calculate(in, rates)
	result.RatesSource = quote.Source

	s.record(ctx, in, result, rates)
	return result, nil
}

// ensureCurrency makes sure the buyer's currency has a rate, borrowing it
// from the fallback table when the quote lacks it.
func (s *service) ensureCurrency(ctx context.Context, rates exchange.Rates, code string) exchange.Rates {
	if code == exchange.BaseCurrency {
		return rates
	}
	if _, ok := rates.Lookup(code); ok {
		return rates
	}

	fallback, ok := exchange.FallbackRates(exchange.BaseCurrency).Lookup(code)
	if !ok {
		s.logger.WarnContext(ctx, "no rate for currency, converting at parity", "currency", code)
		return rates
	}

	s.logger.WarnContext(ctx, "currency missing from quote, using fallback rate", "currency", code, "rate", fallback.String())
	out := rates.Clone()
	out[code] = fallback
	return out
}

// record stores the calculation. Failures only cost the history entry.
func (s *service) record(ctx context.Context, in models.PropertyInput, result *models.CalculationResult, rates exchange.Rates) {
	if s.history == nil {
		return
	}

	rec, err := models.NewCalculationRecord(s.newID(), in, result, rates)
	if err != nil {
		result.ID = ""
		s.logger.ErrorContext(ctx, "failed to build calculation record", "error", err)
		return
	}
	if err := s.history.Save(ctx, rec); err != nil {
		result.ID = ""
		s.logger.ErrorContext(ctx, "failed to save calculation", "id", rec.ID, "error", err)
		return
	}
	s.logger.DebugContext(ctx, "calculation recorded", "id", rec.ID)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (json.RawMessage, error) {
	if s.history == nil {
		return nil, errors.ErrHistoryDisabled
	}

	rec, err := s.history.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(rec.Result), nil
}
