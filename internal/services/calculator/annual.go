package calculator

import (
	"casacalc/internal/models"
	"casacalc/internal/services/exchange"
	"casacalc/internal/utils"

	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// AnnualCosts returns the yearly ownership cost items and their notes.
func (e *Engine) AnnualCosts(in models.PropertyInput, cadastralValue decimal.Decimal, rates exchange.Rates) ([]models.CostItem, []string) {
	t := e.table
	size := e.propertySize(in)
	sqm := size.Round(0).String() + "sqm"
	items := make([]models.CostItem, 0, 4)
	var notes []string

	rule := e.imu[imuKey{primaCasa: in.PrimaCasa, luxury: t.IsLuxury(in.CadastralCategory)}]
	imu := models.CostItem{Name: itemIMU, AmountEUR: decimal.Zero, Description: rule.description}
	if !rule.exempt {
		imu.AmountEUR = cadastralValue.Mul(rule.rate)
		imu.IsEstimate = true
	}
	items = append(items, imu)
	notes = append(notes, rule.note)

	items = append(items, models.CostItem{
		Name:        "TARI (Waste Tax)",
		AmountEUR:   size.Mul(t.TARI.PerSqm),
		Description: "~" + utils.FormatEUR(t.TARI.PerSqm) + "/sqm/year estimate for " + sqm,
		IsEstimate:  true,
	})

	if in.IsApartment {
		if in.MonthlyCondoFee != nil && in.MonthlyCondoFee.IsPositive() {
			items = append(items, models.CostItem{
				Name:        "Condominium Fees",
				AmountEUR:   in.MonthlyCondoFee.Mul(monthsPerYear),
				Description: utils.FormatEUR(*in.MonthlyCondoFee) + "/month × 12",
			})
		} else {
			monthly := t.Condominium.MonthlyBase.Add(size.Mul(t.Condominium.MonthlyPerSqm))
			items = append(items, models.CostItem{
				Name:        "Condominium Fees",
				AmountEUR:   monthly.Mul(monthsPerYear),
				Description: "Estimated ~" + utils.FormatEUR(monthly) + "/month",
				IsEstimate:  true,
			})
			notes = append(notes, "Condominium fees vary widely by building and services. Verify with seller.")
		}
	}

	items = append(items, models.CostItem{
		Name:        "Utilities (Estimate)",
		AmountEUR:   size.Mul(t.Utilities.PerSqm),
		Description: "Electricity, gas, water for " + sqm,
		IsEstimate:  true,
	})

	mirror(items, in, rates)
	return items, notes
}

func (e *Engine) propertySize(in models.PropertyInput) decimal.Decimal {
	if in.PropertySizeSqm != nil && in.PropertySizeSqm.IsPositive() {
		return *in.PropertySizeSqm
	}
	return e.table.Defaults.PropertySizeSqm
}
