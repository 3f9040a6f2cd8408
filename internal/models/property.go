package models

import "github.com/shopspring/decimal"

type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyCAD Currency = "CAD"
	CurrencyGBP Currency = "GBP"
	CurrencyAUD Currency = "AUD"
)

// SupportedCurrencies lists the buyer currencies accepted by the API.
var SupportedCurrencies = []Currency{CurrencyEUR, CurrencyUSD, CurrencyCAD, CurrencyGBP, CurrencyAUD}

// IsSupported reports whether c is one of SupportedCurrencies.
func (c Currency) IsSupported() bool {
	for _, s := range SupportedCurrencies {
		if c == s {
			return true
		}
	}
	return false
}

type PropertyType string

const (
	PropertyResidential  PropertyType = "residential"
	PropertyCommercial   PropertyType = "commercial"
	PropertyAgricultural PropertyType = "agricultural"
)

type SellerType string

const (
	SellerPrivate   SellerType = "private"
	SellerDeveloper SellerType = "developer"
)

// PropertyInput describes the property and the buyer for one calculation.
// Optional values are pointers; nil means "not provided".
type PropertyInput struct {
	PurchasePrice     decimal.Decimal  `json:"purchase_price"`
	SourceCurrency    Currency         `json:"source_currency"`
	PropertyType      PropertyType     `json:"property_type"`
	CadastralCategory *string          `json:"cadastral_category,omitempty"`
	CadastralIncome   *decimal.Decimal `json:"cadastral_income,omitempty"`
	SellerType        SellerType       `json:"seller_type"`
	PropertySizeSqm   *decimal.Decimal `json:"property_size_sqm,omitempty"`

	PrimaCasa       bool             `json:"prima_casa"`
	ResidentInItaly bool             `json:"resident_in_italy"`
	UsingMortgage   bool             `json:"using_mortgage"`
	MortgageAmount  *decimal.Decimal `json:"mortgage_amount,omitempty"`

	RenovationBudget  *decimal.Decimal `json:"renovation_budget,omitempty"`
	IncludeAgencyFee  *bool            `json:"include_agency_fee,omitempty"`
	AgencyRate        *decimal.Decimal `json:"agency_rate,omitempty"`
	IncludeGeometra   *bool            `json:"include_geometra,omitempty"`
	IncludeTranslator bool             `json:"include_translator"`
	IsApartment       bool             `json:"is_apartment"`
	MonthlyCondoFee   *decimal.Decimal `json:"monthly_condo_fee,omitempty"`
}

// WithDefaults fills the enum fields left empty by the caller.
func (p PropertyInput) WithDefaults() PropertyInput {
	if p.SourceCurrency == "" {
		p.SourceCurrency = CurrencyEUR
	}
	if p.PropertyType == "" {
		p.PropertyType = PropertyResidential
	}
	if p.SellerType == "" {
		p.SellerType = SellerPrivate
	}
	return p
}

// AgencyFeeIncluded defaults to true when the toggle is absent.
func (p PropertyInput) AgencyFeeIncluded() bool {
	return p.IncludeAgencyFee == nil || *p.IncludeAgencyFee
}

// GeometraIncluded defaults to true when the toggle is absent.
func (p PropertyInput) GeometraIncluded() bool {
	return p.IncludeGeometra == nil || *p.IncludeGeometra
}

// HasCadastralIncome treats a zero income the same as a missing one.
func (p PropertyInput) HasCadastralIncome() bool {
	return p.CadastralIncome != nil && !p.CadastralIncome.IsZero()
}

// IsForeignCurrency reports whether amounts must be mirrored into the buyer currency.
func (p PropertyInput) IsForeignCurrency() bool {
	return p.SourceCurrency != "" && p.SourceCurrency != CurrencyEUR
}
