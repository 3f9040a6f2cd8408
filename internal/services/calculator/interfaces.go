package calculator

import (
	"context"
	"encoding/json"

	"casacalc/internal/models"
	"casacalc/internal/services/exchange"

	"github.com/google/uuid"
)

// Service handles calculation requests.
type Service interface {
	Calculate(ctx context.Context, in models.PropertyInput) (*models.CalculationResult, error)
	// Get returns a stored result document as it was sent to the client.
	Get(ctx context.Context, id uuid.UUID) (json.RawMessage, error)
}

// RateProvider supplies the exchange rate quote for a calculation.
type RateProvider interface {
	Rates(ctx context.Context) exchange.Quote
}

// HistoryRepository persists calculations.
type HistoryRepository interface {
	Save(ctx context.Context, rec *models.CalculationRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.CalculationRecord, error)
}
