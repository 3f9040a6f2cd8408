package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// CalculationRecord is a stored calculation. Result holds the JSON document
// returned to the client so it can be served back unchanged.
type CalculationRecord struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PurchasePriceEUR decimal.Decimal `gorm:"type:numeric;not null"`
	SourceCurrency   string          `gorm:"size:3;not null"`
	SellerType       string          `gorm:"size:16;not null"`
	PrimaCasa        bool            `gorm:"not null;default:false"`
	GrandTotalEUR    decimal.Decimal `gorm:"type:numeric;not null"`
	RatesSource      string          `gorm:"size:16"`
	Rates            JSONMap         `gorm:"type:jsonb"`
	Notes            pq.StringArray  `gorm:"type:text[]"`
	Input            []byte          `gorm:"type:jsonb;not null"`
	Result           []byte          `gorm:"type:jsonb;not null"`
	CreatedAt        time.Time       `gorm:"index"`
}

// NewCalculationRecord snapshots an input/result pair. The result's ID is
// set to id before it is serialised.
func NewCalculationRecord(id uuid.UUID, in PropertyInput, res *CalculationResult, rates map[string]decimal.Decimal) (*CalculationRecord, error) {
	res.ID = id.String()

	input, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input: %w", err)
	}
	result, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &CalculationRecord{
		ID:               id,
		PurchasePriceEUR: res.PurchasePriceEUR,
		SourceCurrency:   string(res.SourceCurrency),
		SellerType:       string(res.SellerType),
		PrimaCasa:        res.IsPrimaCasa,
		GrandTotalEUR:    res.GrandTotalFirstYearEUR,
		RatesSource:      res.RatesSource,
		Rates:            RatesJSON(rates),
		Notes:            pq.StringArray(res.Notes),
		Input:            input,
		Result:           result,
	}, nil
}
