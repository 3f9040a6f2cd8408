package calculator

import (
	"casacalc/internal/ratetable"

	"github.com/shopspring/decimal"
)

// ResolveCadastralValue returns the taxable base. A declared income is
// scaled by the multiplier for the buyer's status; a missing or zero income
// falls back to a fixed share of the purchase price.
func ResolveCadastralValue(t *ratetable.Table, income *decimal.Decimal, primaCasa bool, price decimal.Decimal) decimal.Decimal {
	if income != nil && !income.IsZero() {
		return income.Mul(t.CadastralMultiplier(primaCasa))
	}
	return price.Mul(t.Cadastral.FallbackRatio)
}
