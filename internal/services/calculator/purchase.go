package calculator

import (
	"casacalc/internal/models"
	"casacalc/internal/services/exchange"
	"casacalc/internal/utils"

	"github.com/shopspring/decimal"
)

// OneTimeCosts returns the purchase cost items in presentation order and
// the notes they raise.
func (e *Engine) OneTimeCosts(in models.PropertyInput, cadastralValue decimal.Decimal, rates exchange.Rates) ([]models.CostItem, []string) {
	t := e.table
	price := in.PurchasePrice
	items := make([]models.CostItem, 0, 16)
	var notes []string

	regime := e.regime(in)
	for _, l := range regime.levies {
		items = append(items, l.apply(cadastralValue, price))
	}
	notes = append(notes, regime.note(cadastralValue))

	items = append(items, models.CostItem{
		Name:        "Notary Fees",
		AmountEUR:   NotaryFee(t.NotarySchedule, price),
		Description: "Based on purchase price, includes deed and searches",
		IsEstimate:  true,
	})

	if in.AgencyFeeIncluded() {
		rate := t.Agency.Rate
		if in.AgencyRate != nil {
			rate = *in.AgencyRate
		}
		effective := rate.Mul(decimal.NewFromInt(1).Add(t.Agency.VATRate))
		items = append(items, models.CostItem{
			Name:      "Agency Commission",
			AmountEUR: price.Mul(effective),
			Description: utils.FormatPercent(rate) + " + " + utils.FormatPercent(t.Agency.VATRate) +
				" VAT = " + utils.FormatPercentFixed(effective, 2) + " effective",
			IsEstimate: true,
		})
	}

	if in.GeometraIncluded() {
		items = append(items, models.CostItem{
			Name:        "Geometra (Surveyor)",
			AmountEUR:   t.ProfessionalFees.Geometra,
			Description: "Technical verification and documentation",
			IsEstimate:  true,
		})
	}

	items = append(items, models.CostItem{
		Name:        "Technical Reports",
		AmountEUR:   t.ProfessionalFees.TechnicalReports,
		Description: "Energy certificate, property checks",
		IsEstimate:  true,
	})

	if in.IncludeTranslator {
		items = append(items, models.CostItem{
			Name:        "Translator",
			AmountEUR:   t.ProfessionalFees.Translator,
			Description: "For deed signing if needed",
			IsEstimate:  true,
		})
	}

	if in.UsingMortgage {
		items = append(items, e.mortgageCosts(in)...)
	}

	if in.IsForeignCurrency() {
		items = append(items, models.CostItem{
			Name:        "Currency Transfer Cost",
			AmountEUR:   price.Mul(t.CurrencyConversion.Spread),
			Description: "~" + utils.FormatPercent(t.CurrencyConversion.Spread) + " spread estimate",
			IsEstimate:  true,
		})
		notes = append(notes, "Currency transfer cost varies by provider. Specialist services may offer better rates than banks.")
	}

	if in.RenovationBudget != nil && in.RenovationBudget.IsPositive() {
		items = append(items, models.CostItem{
			Name:        "Renovation Budget",
			AmountEUR:   *in.RenovationBudget,
			Description: "User-specified renovation amount",
		})
	}

	mirror(items, in, rates)
	return items, notes
}

func (e *Engine) regime(in models.PropertyInput) purchaseRegime {
	key := regimeKey{seller: in.SellerType, primaCasa: in.PrimaCasa, luxury: e.table.IsLuxury(in.CadastralCategory)}
	if r, ok := e.purchase[key]; ok {
		return r
	}
	key.seller = models.SellerPrivate
	return e.purchase[key]
}

// mortgageCosts uses the declared loan amount, or the default loan-to-value
// share of the price when none is given.
func (e *Engine) mortgageCosts(in models.PropertyInput) []models.CostItem {
	m := e.table.Mortgage

	loan := in.PurchasePrice.Mul(m.DefaultLoanToValue)
	if in.MortgageAmount != nil && in.MortgageAmount.IsPositive() {
		loan = *in.MortgageAmount
	}

	rate, desc := m.RegistrationRateSecondHome, utils.FormatPercent(m.RegistrationRateSecondHome)+" of mortgage amount"
	if in.PrimaCasa {
		rate, desc = m.RegistrationRatePrimaCasa, utils.FormatPercent(m.RegistrationRatePrimaCasa)+" of mortgage amount (prima casa rate)"
	}

	return []models.CostItem{
		{Name: "Bank Fees", AmountEUR: m.BankFee, Description: "Mortgage arrangement fee", IsEstimate: true},
		{Name: "Mortgage Registration Tax", AmountEUR: loan.Mul(rate), Description: desc},
		{Name: "Property Valuation", AmountEUR: m.ValuationFee, Description: "Bank's property assessment", IsEstimate: true},
	}
}

// mirror sets the buyer-currency amount of every item for non-EUR buyers.
func mirror(items []models.CostItem, in models.PropertyInput, rates exchange.Rates) {
	if !in.IsForeignCurrency() {
		return
	}
	to := string(in.SourceCurrency)
	for i := range items {
		v := exchange.Convert(items[i].AmountEUR, exchange.BaseCurrency, to, rates)
		items[i].AmountForeign = &v
	}
}
