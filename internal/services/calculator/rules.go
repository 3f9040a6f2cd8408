package calculator

import (
	"strings"

	"casacalc/internal/models"
	"casacalc/internal/ratetable"
	"casacalc/internal/utils"

	"github.com/shopspring/decimal"
)

const (
	itemRegistrationTax = "Registration Tax (Imposta di Registro)"
	itemVAT             = "VAT (IVA)"
	itemMortgageTax     = "Mortgage Tax (Imposta Ipotecaria)"
	itemCadastralTax    = "Cadastral Tax (Imposta Catastale)"
	itemIMU             = "IMU (Property Tax)"
)

type basis int

const (
	basisFixed basis = iota
	basisCadastralValue
	basisPurchasePrice
)

// levy is one tax line of a purchase regime.
type levy struct {
	name        string
	description string
	basis       basis
	rate        decimal.Decimal
	amount      decimal.Decimal
	minimum     decimal.Decimal
}

func (l levy) apply(cadastralValue, price decimal.Decimal) models.CostItem {
	var amount decimal.Decimal
	switch l.basis {
	case basisCadastralValue:
		amount = cadastralValue.Mul(l.rate)
	case basisPurchasePrice:
		amount = price.Mul(l.rate)
	default:
		amount = l.amount
	}
	if amount.LessThan(l.minimum) {
		amount = l.minimum
	}
	return models.CostItem{Name: l.name, AmountEUR: amount, Description: l.description}
}

type regimeKey struct {
	seller    models.SellerType
	primaCasa bool
	luxury    bool
}

// purchaseRegime lists the taxes due for one seller/status combination and
// the note explaining their basis.
type purchaseRegime struct {
	levies []levy
	note   func(cadastralValue decimal.Decimal) string
}

func purchaseRules(t *ratetable.Table) map[regimeKey]purchaseRegime {
	const developerFee = "Fixed fee when buying from developer"

	vat := func(rate decimal.Decimal, desc string) levy {
		return levy{name: itemVAT, description: utils.FormatPercent(rate) + " " + desc, basis: basisPurchasePrice, rate: rate}
	}
	developer := func(vatLevy levy) purchaseRegime {
		return purchaseRegime{
			levies: []levy{
				{name: itemRegistrationTax, description: developerFee, amount: t.RegistrationTax.DeveloperFixed},
				vatLevy,
				{name: itemMortgageTax, description: developerFee, amount: t.MortgageTax.DeveloperFixed},
				{name: itemCadastralTax, description: developerFee, amount: t.CadastralTax.DeveloperFixed},
			},
			note: func(decimal.Decimal) string {
				return "VAT applies because purchasing from developer/company"
			},
		}
	}
	cadastralBasisNote := func(v decimal.Decimal) string {
		return "Registration tax calculated on cadastral value (" + utils.FormatEUR(v) + "), not purchase price"
	}

	privatePrimaCasa := purchaseRegime{
		levies: []levy{
			{
				name:        itemRegistrationTax,
				description: utils.FormatPercent(t.RegistrationTax.PrimaCasaRate) + " of cadastral value (prima casa rate, min " + utils.FormatEUR(t.RegistrationTax.PrimaCasaMinimum) + ")",
				basis:       basisCadastralValue,
				rate:        t.RegistrationTax.PrimaCasaRate,
				minimum:     t.RegistrationTax.PrimaCasaMinimum,
			},
			{name: itemMortgageTax, description: "Fixed " + utils.FormatEUR(t.MortgageTax.PrimaCasaFixed) + " for prima casa", amount: t.MortgageTax.PrimaCasaFixed},
			{name: itemCadastralTax, description: "Fixed " + utils.FormatEUR(t.CadastralTax.PrimaCasaFixed) + " for prima casa", amount: t.CadastralTax.PrimaCasaFixed},
		},
		note: cadastralBasisNote,
	}
	privateSecondHome := purchaseRegime{
		levies: []levy{
			{
				name:        itemRegistrationTax,
				description: utils.FormatPercent(t.RegistrationTax.SecondHomeRate) + " of cadastral value (second home rate)",
				basis:       basisCadastralValue,
				rate:        t.RegistrationTax.SecondHomeRate,
			},
			{name: itemMortgageTax, description: utils.FormatPercent(t.MortgageTax.SecondHomeRate) + " of cadastral value", basis: basisCadastralValue, rate: t.MortgageTax.SecondHomeRate},
			{name: itemCadastralTax, description: utils.FormatPercent(t.CadastralTax.SecondHomeRate) + " of cadastral value", basis: basisCadastralValue, rate: t.CadastralTax.SecondHomeRate},
		},
		note: cadastralBasisNote,
	}

	// Luxury VAT wins over the prima casa rate. Private sales ignore the
	// luxury flag at purchase time.
	luxuryVAT := vat(t.VAT.Luxury, "VAT on luxury property")
	return map[regimeKey]purchaseRegime{
		{seller: models.SellerDeveloper, primaCasa: false, luxury: false}: developer(vat(t.VAT.SecondHome, "VAT (second home rate)")),
		{seller: models.SellerDeveloper, primaCasa: true, luxury: false}:  developer(vat(t.VAT.PrimaCasa, "VAT (prima casa rate)")),
		{seller: models.SellerDeveloper, primaCasa: false, luxury: true}:  developer(luxuryVAT),
		{seller: models.SellerDeveloper, primaCasa: true, luxury: true}:   developer(luxuryVAT),
		{seller: models.SellerPrivate, primaCasa: true, luxury: false}:    privatePrimaCasa,
		{seller: models.SellerPrivate, primaCasa: true, luxury: true}:     privatePrimaCasa,
		{seller: models.SellerPrivate, primaCasa: false, luxury: false}:   privateSecondHome,
		{seller: models.SellerPrivate, primaCasa: false, luxury: true}:    privateSecondHome,
	}
}

type imuKey struct {
	primaCasa bool
	luxury    bool
}

type imuRule struct {
	exempt      bool
	rate        decimal.Decimal
	description string
	note        string
}

func imuRules(t *ratetable.Table) map[imuKey]imuRule {
	municipal := "IMU rate varies by municipality (" + utils.FormatPercent(t.IMU.MunicipalMinRate) + " - " +
		utils.FormatPercent(t.IMU.MunicipalMaxRate) + "). Using typical rate of " + utils.FormatPercent(t.IMU.SecondHomeRate)
	secondHome := imuRule{
		rate:        t.IMU.SecondHomeRate,
		description: "~" + utils.FormatPercent(t.IMU.SecondHomeRate) + " of cadastral value (varies by municipality)",
		note:        municipal,
	}

	return map[imuKey]imuRule{
		{primaCasa: true, luxury: false}: {
			exempt:      true,
			description: "Exempt for prima casa (main residence)",
			note:        "Primary residence is exempt from IMU (except luxury categories " + strings.Join(t.LuxuryCategories, ", ") + ")",
		},
		{primaCasa: true, luxury: true}: {
			rate:        t.IMU.PrimaCasaLuxuryRate,
			description: utils.FormatPercent(t.IMU.PrimaCasaLuxuryRate) + " of cadastral value (luxury main residence)",
			note:        municipal,
		},
		{primaCasa: false, luxury: false}: secondHome,
		{primaCasa: false, luxury: true}:  secondHome,
	}
}
