package validation

import (
	"casacalc/internal/errors"
	"casacalc/internal/models"
	"casacalc/internal/ratetable"
	fields "casacalc/internal/utils/validation"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// ValidatePropertyInput applies the business rules to a decoded input.
// Defaults should already be applied. It returns an INVALID_INPUT
// DomainError listing every failed rule.
func ValidatePropertyInput(in models.PropertyInput, t *ratetable.Table) error {
	v := fields.New()

	v.Positive(in.PurchasePrice, "purchase_price")

	if _, err := currency.ParseISO(string(in.SourceCurrency)); err != nil {
		v.AddError("source_currency", "must be an ISO 4217 currency code")
	} else {
		v.Check(in.SourceCurrency.IsSupported(), "source_currency", "is not supported")
	}

	switch in.PropertyType {
	case models.PropertyResidential, models.PropertyCommercial, models.PropertyAgricultural:
	default:
		v.AddError("property_type", "must be residential, commercial or agricultural")
	}

	switch in.SellerType {
	case models.SellerPrivate, models.SellerDeveloper:
	default:
		v.AddError("seller_type", "must be private or developer")
	}

	optionalNonNegative(v, in.CadastralIncome, "cadastral_income")
	optionalNonNegative(v, in.PropertySizeSqm, "property_size_sqm")
	optionalNonNegative(v, in.MortgageAmount, "mortgage_amount")
	optionalNonNegative(v, in.RenovationBudget, "renovation_budget")
	optionalNonNegative(v, in.MonthlyCondoFee, "monthly_condo_fee")

	if in.AgencyRate != nil {
		maxRate := t.Agency.MaxRate
		v.Check(!in.AgencyRate.IsNegative() && in.AgencyRate.LessThanOrEqual(maxRate),
			"agency_rate", "must be between 0 and "+maxRate.String())
	}

	if !v.Valid() {
		return errors.ErrInvalidInput.WithDetails(v.Messages()...)
	}
	return nil
}

func optionalNonNegative(v *fields.Validator, d *decimal.Decimal, field string) {
	if d != nil {
		v.NonNegative(*d, field)
	}
}
