package calculator

import (
	"casacalc/internal/models"
	"casacalc/internal/ratetable"
	"casacalc/internal/services/exchange"
)

// Engine computes cost breakdowns from a rate table. It holds no mutable
// state and may be shared between goroutines.
type Engine struct {
	table    *ratetable.Table
	purchase map[regimeKey]purchaseRegime
	imu      map[imuKey]imuRule
}

func NewEngine(t *ratetable.Table) *Engine {
	if t == nil {
		panic("rate table is required")
	}
	return &Engine{
		table:    t,
		purchase: purchaseRules(t),
		imu:      imuRules(t),
	}
}

func (e *Engine) Table() *ratetable.Table {
	return e.table
}

// Calculate runs the full pipeline for one input. rates maps currency codes
// to their EUR rate; a missing buyer currency is treated as parity.
func (e *Engine) Calculate(in models.PropertyInput, rates exchange.Rates) *models.CalculationResult {
	in = in.WithDefaults()
	cadastralValue := ResolveCadastralValue(e.table, in.CadastralIncome, in.PrimaCasa, in.PurchasePrice)

	oneTime, oneTimeNotes := e.OneTimeCosts(in, cadastralValue, rates)
	annual, annualNotes := e.AnnualCosts(in, cadastralValue, rates)

	return e.Aggregate(in, cadastralValue, oneTime, oneTimeNotes, annual, annualNotes, rates)
}
