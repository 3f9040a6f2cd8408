package ratetable

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"casacalc/internal/utils/validation"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed rates.yaml
var defaultRates []byte

var ErrInvalidTable = errors.New("invalid rate table")

// Load reads the table at path, or the embedded default table when path is
// empty. The result is validated before it is returned.
func Load(path string) (*Table, error) {
	if path == "" {
		return Parse(defaultRates)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rate table: %w", err)
	}
	return Parse(data)
}

// Default returns the embedded table. It panics if the embedded file is
// broken, which only a bad build can cause.
func Default() *Table {
	t, err := Parse(defaultRates)
	if err != nil {
		panic(err)
	}
	return t
}

// Parse decodes and validates a YAML rate table. Unknown keys are rejected.
func Parse(data []byte) (*Table, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var t Table
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	v := validation.New()
	requireKeys(v, "", tableTemplate(), rootNode(&doc), false)
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, v.Err())
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// tableTemplate is the embedded table's node tree. Every key it holds must
// also appear in a loaded table, since a missing key decodes as zero.
var tableTemplate = sync.OnceValue(func() *yaml.Node {
	var doc yaml.Node
	if err := yaml.Unmarshal(defaultRates, &doc); err != nil {
		panic(fmt.Sprintf("parse embedded rate table: %v", err))
	}
	return rootNode(&doc)
})

func rootNode(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0]
	}
	return doc
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

// requireKeys reports each key of want that got omits or sets to null.
// Sequence items are matched against the template's first item and only
// checked for presence, because a null bound is legal in the last band.
// Type mismatches are left to the decoder.
func requireKeys(v *validation.Validator, path string, want, got *yaml.Node, presenceOnly bool) {
	switch want.Kind {
	case yaml.MappingNode:
		if got.Kind != yaml.MappingNode {
			return
		}
		for i := 0; i+1 < len(want.Content); i += 2 {
			key := want.Content[i].Value
			field := key
			if path != "" {
				field = path + "." + key
			}

			val := mappingValue(got, key)
			if val == nil || (!presenceOnly && isNull(val) && !isNull(want.Content[i+1])) {
				v.AddError(field, "is required")
				continue
			}
			requireKeys(v, field, want.Content[i+1], val, presenceOnly)
		}
	case yaml.SequenceNode:
		if got.Kind != yaml.SequenceNode || len(want.Content) == 0 {
			return
		}
		for i, item := range got.Content {
			requireKeys(v, path+"["+strconv.Itoa(i)+"]", want.Content[0], item, true)
		}
	}
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// Validate checks every group for missing or out-of-range values and the
// notary schedule for ordering, termination and continuity.
func (t *Table) Validate() error {
	v := validation.New()

	v.Positive(t.Cadastral.Multipliers.PrimaCasa, "cadastral.multipliers.prima_casa")
	v.Positive(t.Cadastral.Multipliers.Other, "cadastral.multipliers.other")
	v.Positive(t.Cadastral.FallbackRatio, "cadastral.fallback_ratio")
	v.Ratio(t.Cadastral.FallbackRatio, "cadastral.fallback_ratio")

	v.Positive(t.RegistrationTax.PrimaCasaRate, "registration_tax.prima_casa_rate")
	v.Ratio(t.RegistrationTax.PrimaCasaRate, "registration_tax.prima_casa_rate")
	v.NonNegative(t.RegistrationTax.PrimaCasaMinimum, "registration_tax.prima_casa_minimum")
	v.Positive(t.RegistrationTax.SecondHomeRate, "registration_tax.second_home_rate")
	v.Ratio(t.RegistrationTax.SecondHomeRate, "registration_tax.second_home_rate")
	v.NonNegative(t.RegistrationTax.DeveloperFixed, "registration_tax.developer_fixed")

	v.Positive(t.VAT.PrimaCasa, "vat.prima_casa")
	v.Ratio(t.VAT.PrimaCasa, "vat.prima_casa")
	v.Positive(t.VAT.SecondHome, "vat.second_home")
	v.Ratio(t.VAT.SecondHome, "vat.second_home")
	v.Positive(t.VAT.Luxury, "vat.luxury")
	v.Ratio(t.VAT.Luxury, "vat.luxury")
	v.Check(len(t.LuxuryCategories) > 0, "luxury_categories", "must not be empty")

	validateLevy(v, "mortgage_tax", t.MortgageTax)
	validateLevy(v, "cadastral_tax", t.CadastralTax)
	validateNotarySchedule(v, t.NotarySchedule)

	v.Ratio(t.Agency.Rate, "agency.rate")
	v.Ratio(t.Agency.VATRate, "agency.vat_rate")
	v.Ratio(t.Agency.MaxRate, "agency.max_rate")
	v.Check(t.Agency.Rate.LessThanOrEqual(t.Agency.MaxRate), "agency.rate", "must not exceed agency.max_rate")

	v.NonNegative(t.ProfessionalFees.Geometra, "professional_fees.geometra")
	v.NonNegative(t.ProfessionalFees.TechnicalReports, "professional_fees.technical_reports")
	v.NonNegative(t.ProfessionalFees.Translator, "professional_fees.translator")

	v.NonNegative(t.Mortgage.BankFee, "mortgage.bank_fee")
	v.Ratio(t.Mortgage.RegistrationRatePrimaCasa, "mortgage.registration_rate_prima_casa")
	v.Ratio(t.Mortgage.RegistrationRateSecondHome, "mortgage.registration_rate_second_home")
	v.NonNegative(t.Mortgage.ValuationFee, "mortgage.valuation_fee")
	v.Positive(t.Mortgage.DefaultLoanToValue, "mortgage.default_loan_to_value")
	v.Ratio(t.Mortgage.DefaultLoanToValue, "mortgage.default_loan_to_value")

	v.Ratio(t.CurrencyConversion.Spread, "currency_conversion.spread")

	v.Ratio(t.IMU.PrimaCasaLuxuryRate, "imu.prima_casa_luxury_rate")
	v.Positive(t.IMU.SecondHomeRate, "imu.second_home_rate")
	v.Ratio(t.IMU.SecondHomeRate, "imu.second_home_rate")
	v.Check(t.IMU.MunicipalMinRate.LessThanOrEqual(t.IMU.SecondHomeRate) &&
		t.IMU.SecondHomeRate.LessThanOrEqual(t.IMU.MunicipalMaxRate),
		"imu.second_home_rate", "must lie within the municipal range")

	v.Positive(t.TARI.PerSqm, "tari.per_sqm")
	v.NonNegative(t.Condominium.MonthlyBase, "condominium.monthly_base")
	v.NonNegative(t.Condominium.MonthlyPerSqm, "condominium.monthly_per_sqm")
	v.Positive(t.Utilities.PerSqm, "utilities.per_sqm")
	v.Positive(t.Defaults.PropertySizeSqm, "defaults.property_size_sqm")

	if !v.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidTable, v.Err())
	}
	return nil
}

func validateLevy(v *validation.Validator, field string, l TransferLevy) {
	v.NonNegative(l.PrimaCasaFixed, field+".prima_casa_fixed")
	v.Ratio(l.SecondHomeRate, field+".second_home_rate")
	v.NonNegative(l.DeveloperFixed, field+".developer_fixed")
}

func validateNotarySchedule(v *validation.Validator, bands []NotaryBand) {
	if len(bands) == 0 {
		v.AddError("notary_schedule", "must not be empty")
		return
	}

	prev := decimal.Zero
	for i, b := range bands {
		field := "notary_schedule[" + strconv.Itoa(i) + "]"
		v.NonNegative(b.BaseFee, field+".base_fee")
		v.Ratio(b.Rate, field+".rate")

		last := i == len(bands)-1
		if b.UpTo == nil {
			v.Check(last, field+".up_to", "only the last band may be unbounded")
			continue
		}
		if last {
			v.AddError(field+".up_to", "last band must be unbounded")
		}
		if !b.UpTo.GreaterThan(prev) {
			v.AddError(field+".up_to", "bounds must be strictly increasing")
		}
		if !last {
			next := bands[i+1]
			want := b.BaseFee.Add(b.UpTo.Sub(prev).Mul(b.Rate))
			v.Check(next.BaseFee.Equal(want), "notary_schedule["+strconv.Itoa(i+1)+"].base_fee",
				"must equal "+want.String()+" to keep the schedule continuous")
		}
		prev = *b.UpTo
	}
}
