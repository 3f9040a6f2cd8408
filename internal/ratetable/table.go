package ratetable

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Table is the full set of jurisdiction rates consumed by the cost engine.
// A Table is read-only once loaded and safe to share between goroutines.
type Table struct {
	Version            string             `yaml:"version" json:"version"`
	Cadastral          Cadastral          `yaml:"cadastral" json:"cadastral"`
	RegistrationTax    RegistrationTax    `yaml:"registration_tax" json:"registration_tax"`
	VAT                VAT                `yaml:"vat" json:"vat"`
	LuxuryCategories   []string           `yaml:"luxury_categories" json:"luxury_categories"`
	MortgageTax        TransferLevy       `yaml:"mortgage_tax" json:"mortgage_tax"`
	CadastralTax       TransferLevy       `yaml:"cadastral_tax" json:"cadastral_tax"`
	NotarySchedule     []NotaryBand       `yaml:"notary_schedule" json:"notary_schedule"`
	Agency             Agency             `yaml:"agency" json:"agency"`
	ProfessionalFees   ProfessionalFees   `yaml:"professional_fees" json:"professional_fees"`
	Mortgage           MortgageFees       `yaml:"mortgage" json:"mortgage"`
	CurrencyConversion CurrencyConversion `yaml:"currency_conversion" json:"currency_conversion"`
	IMU                IMU                `yaml:"imu" json:"imu"`
	TARI               PerSqm             `yaml:"tari" json:"tari"`
	Condominium        Condominium        `yaml:"condominium" json:"condominium"`
	Utilities          PerSqm             `yaml:"utilities" json:"utilities"`
	Defaults           Defaults           `yaml:"defaults" json:"defaults"`
}

type Cadastral struct {
	Multipliers   Multipliers     `yaml:"multipliers" json:"multipliers"`
	FallbackRatio decimal.Decimal `yaml:"fallback_ratio" json:"fallback_ratio"`
}

type Multipliers struct {
	PrimaCasa decimal.Decimal `yaml:"prima_casa" json:"prima_casa"`
	Other     decimal.Decimal `yaml:"other" json:"other"`
}

type RegistrationTax struct {
	PrimaCasaRate    decimal.Decimal `yaml:"prima_casa_rate" json:"prima_casa_rate"`
	PrimaCasaMinimum decimal.Decimal `yaml:"prima_casa_minimum" json:"prima_casa_minimum"`
	SecondHomeRate   decimal.Decimal `yaml:"second_home_rate" json:"second_home_rate"`
	DeveloperFixed   decimal.Decimal `yaml:"developer_fixed" json:"developer_fixed"`
}

type VAT struct {
	PrimaCasa  decimal.Decimal `yaml:"prima_casa" json:"prima_casa"`
	SecondHome decimal.Decimal `yaml:"second_home" json:"second_home"`
	Luxury     decimal.Decimal `yaml:"luxury" json:"luxury"`
}

// TransferLevy covers the mortgage and cadastral taxes, which share a shape.
type TransferLevy struct {
	PrimaCasaFixed decimal.Decimal `yaml:"prima_casa_fixed" json:"prima_casa_fixed"`
	SecondHomeRate decimal.Decimal `yaml:"second_home_rate" json:"second_home_rate"`
	DeveloperFixed decimal.Decimal `yaml:"developer_fixed" json:"developer_fixed"`
}

// NotaryBand applies to prices up to UpTo; a nil UpTo is unbounded.
type NotaryBand struct {
	UpTo    *decimal.Decimal `yaml:"up_to" json:"up_to"`
	BaseFee decimal.Decimal  `yaml:"base_fee" json:"base_fee"`
	Rate    decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Covers reports whether price falls at or below the band's upper bound.
func (b NotaryBand) Covers(price decimal.Decimal) bool {
	return b.UpTo == nil || price.LessThanOrEqual(*b.UpTo)
}

type Agency struct {
	Rate    decimal.Decimal `yaml:"rate" json:"rate"`
	VATRate decimal.Decimal `yaml:"vat_rate" json:"vat_rate"`
	MaxRate decimal.Decimal `yaml:"max_rate" json:"max_rate"`
}

type ProfessionalFees struct {
	Geometra         decimal.Decimal `yaml:"geometra" json:"geometra"`
	TechnicalReports decimal.Decimal `yaml:"technical_reports" json:"technical_reports"`
	Translator       decimal.Decimal `yaml:"translator" json:"translator"`
}

type MortgageFees struct {
	BankFee                    decimal.Decimal `yaml:"bank_fee" json:"bank_fee"`
	RegistrationRatePrimaCasa  decimal.Decimal `yaml:"registration_rate_prima_casa" json:"registration_rate_prima_casa"`
	RegistrationRateSecondHome decimal.Decimal `yaml:"registration_rate_second_home" json:"registration_rate_second_home"`
	ValuationFee               decimal.Decimal `yaml:"valuation_fee" json:"valuation_fee"`
	DefaultLoanToValue         decimal.Decimal `yaml:"default_loan_to_value" json:"default_loan_to_value"`
}

type CurrencyConversion struct {
	Spread decimal.Decimal `yaml:"spread" json:"spread"`
}

type IMU struct {
	PrimaCasaLuxuryRate decimal.Decimal `yaml:"prima_casa_luxury_rate" json:"prima_casa_luxury_rate"`
	SecondHomeRate      decimal.Decimal `yaml:"second_home_rate" json:"second_home_rate"`
	MunicipalMinRate    decimal.Decimal `yaml:"municipal_min_rate" json:"municipal_min_rate"`
	MunicipalMaxRate    decimal.Decimal `yaml:"municipal_max_rate" json:"municipal_max_rate"`
}

type PerSqm struct {
	PerSqm decimal.Decimal `yaml:"per_sqm" json:"per_sqm"`
}

type Condominium struct {
	MonthlyBase   decimal.Decimal `yaml:"monthly_base" json:"monthly_base"`
	MonthlyPerSqm decimal.Decimal `yaml:"monthly_per_sqm" json:"monthly_per_sqm"`
}

type Defaults struct {
	PropertySizeSqm decimal.Decimal `yaml:"property_size_sqm" json:"property_size_sqm"`
}

// IsLuxury reports whether the cadastral category is one of the luxury
// categories. Comparison ignores case and surrounding whitespace.
func (t *Table) IsLuxury(category *string) bool {
	if category == nil {
		return false
	}
	c := strings.TrimSpace(*category)
	if c == "" {
		return false
	}
	for _, l := range t.LuxuryCategories {
		if strings.EqualFold(c, strings.TrimSpace(l)) {
			return true
		}
	}
	return false
}

// CadastralMultiplier returns the income multiplier for the buyer's status.
func (t *Table) CadastralMultiplier(primaCasa bool) decimal.Decimal {
	if primaCasa {
		return t.Cadastral.Multipliers.PrimaCasa
	}
	return t.Cadastral.Multipliers.Other
}
