package calculator

import (
	"casacalc/internal/models"
	"casacalc/internal/services/exchange"
	"casacalc/internal/utils"

	"github.com/shopspring/decimal"
)

const (
	CategoryOneTime = "One-Time Purchase Costs"
	CategoryAnnual  = "Ongoing Annual Costs"

	noteDisclaimer = "All calculations are estimates. Consult a notary or commercialista for exact figures."
)

var hundred = decimal.NewFromInt(100)

// Aggregate assembles the result from both cost breakdowns. Subtotals are
// always derived from the items, and every foreign figure is its EUR
// counterpart multiplied by the buyer's rate.
func (e *Engine) Aggregate(
	in models.PropertyInput,
	cadastralValue decimal.Decimal,
	oneTime []models.CostItem, oneTimeNotes []string,
	annual []models.CostItem, annualNotes []string,
	rates exchange.Rates,
) *models.CalculationResult {
	var rate *decimal.Decimal
	if in.IsForeignCurrency() {
		r := rates.Rate(string(in.SourceCurrency))
		rate = &r
	}

	oneTimeCat := models.NewCostCategory(CategoryOneTime, oneTime, rate)
	annualCat := models.NewCostCategory(CategoryAnnual, annual, rate)

	price := in.PurchasePrice
	totalOneTime := oneTimeCat.Subtotal()
	totalAnnual := annualCat.Subtotal()
	grand := price.Add(totalOneTime).Add(totalAnnual)

	percentage := decimal.Zero
	if price.IsPositive() {
		percentage = totalOneTime.Div(price).Mul(hundred)
	}

	res := &models.CalculationResult{
		PurchasePriceEUR:       price,
		SourceCurrency:         in.SourceCurrency,
		ExchangeRate:           rate,
		PropertyType:           in.PropertyType,
		IsPrimaCasa:            in.PrimaCasa,
		SellerType:             in.SellerType,
		CadastralValue:         cadastralValue,
		OneTimeCosts:           oneTimeCat,
		OngoingAnnualCosts:     annualCat,
		TotalOneTimeEUR:        totalOneTime,
		TotalOneTimeForeign:    oneTimeCat.SubtotalForeign(),
		TotalAnnualEUR:         totalAnnual,
		TotalAnnualForeign:     annualCat.SubtotalForeign(),
		GrandTotalFirstYearEUR: grand,
		OneTimePercentage:      percentage,
		Notes:                  e.notes(in, oneTimeNotes, annualNotes),
	}
	if rate != nil {
		res.PurchasePriceForeign = mul(price, *rate)
		res.GrandTotalFirstYearForeign = mul(grand, *rate)
	}
	return res
}

// notes keeps first occurrences in order: purchase notes, annual notes,
// the general disclaimer, then the cadastral estimate disclaimer.
func (e *Engine) notes(in models.PropertyInput, oneTime, annual []string) []string {
	all := make([]string, 0, len(oneTime)+len(annual)+2)
	all = append(all, oneTime...)
	all = append(all, annual...)
	all = append(all, noteDisclaimer)
	if !in.HasCadastralIncome() {
		all = append(all, "Cadastral value estimated at "+utils.FormatPercent(e.table.Cadastral.FallbackRatio)+
			" of purchase price. Provide actual cadastral income for accuracy.")
	}

	seen := make(map[string]struct{}, len(all))
	out := all[:0]
	for _, n := range all {
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func mul(a, b decimal.Decimal) *decimal.Decimal {
	v := a.Mul(b)
	return &v
}
