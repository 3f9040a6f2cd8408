package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CostItem is one line of a breakdown. AmountForeign is set only when the
// calculation was requested in a currency other than EUR.
type CostItem struct {
	Name          string           `json:"name"`
	AmountEUR     decimal.Decimal  `json:"amount_eur"`
	AmountForeign *decimal.Decimal `json:"amount_foreign"`
	Description   string           `json:"description,omitempty"`
	IsEstimate    bool             `json:"is_estimate"`
}

// CostCategory groups items in presentation order. Subtotals are derived
// from the items every time they are read.
type CostCategory struct {
	Name  string
	Items []CostItem

	rate *decimal.Decimal
}

// NewCostCategory builds a category; rate is the EUR to buyer currency rate
// used for the foreign subtotal, nil for EUR calculations.
func NewCostCategory(name string, items []CostItem, rate *decimal.Decimal) CostCategory {
	if items == nil {
		items = []CostItem{}
	}
	return CostCategory{Name: name, Items: items, rate: rate}
}

// Subtotal sums the EUR amounts of the items.
func (c CostCategory) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.AmountEUR)
	}
	return total
}

// SubtotalForeign is Subtotal multiplied by the category rate, or nil.
func (c CostCategory) SubtotalForeign() *decimal.Decimal {
	if c.rate == nil {
		return nil
	}
	v := c.Subtotal().Mul(*c.rate)
	return &v
}

func (c CostCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name            string           `json:"name"`
		Items           []CostItem       `json:"items"`
		SubtotalEUR     decimal.Decimal  `json:"subtotal_eur"`
		SubtotalForeign *decimal.Decimal `json:"subtotal_foreign"`
	}{
		Name:            c.Name,
		Items:           c.Items,
		SubtotalEUR:     c.Subtotal(),
		SubtotalForeign: c.SubtotalForeign(),
	})
}

// CalculationResult is the full first-year cost estimate. Foreign fields are
// nil when the buyer currency is EUR.
type CalculationResult struct {
	ID string `json:"id,omitempty"`

	PurchasePriceEUR     decimal.Decimal  `json:"purchase_price_eur"`
	PurchasePriceForeign *decimal.Decimal `json:"purchase_price_foreign"`
	SourceCurrency       Currency         `json:"source_currency"`
	ExchangeRate         *decimal.Decimal `json:"exchange_rate"`
	RatesSource          string           `json:"rates_source,omitempty"`
	PropertyType         PropertyType     `json:"property_type"`
	IsPrimaCasa          bool             `json:"is_prima_casa"`
	SellerType           SellerType       `json:"seller_type"`

	CadastralValue decimal.Decimal `json:"cadastral_value"`

	OneTimeCosts       CostCategory `json:"one_time_costs"`
	OngoingAnnualCosts CostCategory `json:"ongoing_annual_costs"`

	TotalOneTimeEUR     decimal.Decimal  `json:"total_one_time_eur"`
	TotalOneTimeForeign *decimal.Decimal `json:"total_one_time_foreign"`
	TotalAnnualEUR      decimal.Decimal  `json:"total_annual_eur"`
	TotalAnnualForeign  *decimal.Decimal `json:"total_annual_foreign"`

	GrandTotalFirstYearEUR     decimal.Decimal  `json:"grand_total_first_year_eur"`
	GrandTotalFirstYearForeign *decimal.Decimal `json:"grand_total_first_year_foreign"`

	OneTimePercentage decimal.Decimal `json:"one_time_percentage"`

	Notes []string `json:"notes"`
}
