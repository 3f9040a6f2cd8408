package ratetable

import (
	"strings"

	"casacalc/internal/utils"

	"github.com/shopspring/decimal"
)

// Summary is a human-readable view of the table for API consumers.
type Summary struct {
	Version          string            `json:"version"`
	RegistrationTax  map[string]string `json:"registration_tax"`
	VATRates         map[string]string `json:"vat_rates"`
	MortgageTax      map[string]string `json:"mortgage_tax"`
	CadastralTax     map[string]string `json:"cadastral_tax"`
	IMURates         map[string]string `json:"imu_rates"`
	AgencyCommission map[string]string `json:"agency_commission"`
	NotarySchedule   []string          `json:"notary_schedule"`
}

func (t *Table) Summary() Summary {
	luxury := strings.Join(t.LuxuryCategories, ", ")
	agencyEffective := t.Agency.Rate.Mul(decimal.NewFromInt(1).Add(t.Agency.VATRate))

	return Summary{
		Version: t.Version,
		RegistrationTax: map[string]string{
			"prima_casa_private":  utils.FormatPercent(t.RegistrationTax.PrimaCasaRate) + " of cadastral value (min " + utils.FormatEUR(t.RegistrationTax.PrimaCasaMinimum) + ")",
			"second_home_private": utils.FormatPercent(t.RegistrationTax.SecondHomeRate) + " of cadastral value",
			"from_developer":      utils.FormatEUR(t.RegistrationTax.DeveloperFixed) + " fixed",
		},
		VATRates: map[string]string{
			"prima_casa":  utils.FormatPercent(t.VAT.PrimaCasa) + " of purchase price",
			"second_home": utils.FormatPercent(t.VAT.SecondHome) + " of purchase price",
			"luxury":      utils.FormatPercent(t.VAT.Luxury) + " of purchase price (" + luxury + " categories)",
		},
		MortgageTax:  levySummary(t.MortgageTax),
		CadastralTax: levySummary(t.CadastralTax),
		IMURates: map[string]string{
			"prima_casa":  "Exempt (except luxury properties)",
			"second_home": utils.FormatPercent(t.IMU.MunicipalMinRate) + " - " + utils.FormatPercent(t.IMU.MunicipalMaxRate) + " of cadastral value (varies by municipality)",
		},
		AgencyCommission: map[string]string{
			"typical_rate": utils.FormatPercent(t.Agency.Rate) + " + " + utils.FormatPercent(t.Agency.VATRate) + " VAT (" + utils.FormatPercentFixed(agencyEffective, 2) + " effective)",
		},
		NotarySchedule: notarySummary(t.NotarySchedule),
	}
}

func levySummary(l TransferLevy) map[string]string {
	return map[string]string{
		"prima_casa_private":  utils.FormatEUR(l.PrimaCasaFixed) + " fixed",
		"second_home_private": utils.FormatPercent(l.SecondHomeRate) + " of cadastral value",
		"from_developer":      utils.FormatEUR(l.DeveloperFixed) + " fixed",
	}
}

func notarySummary(bands []NotaryBand) []string {
	out := make([]string, 0, len(bands))
	prev := decimal.Zero
	for _, b := range bands {
		line := utils.FormatEUR(b.BaseFee) + " + " + utils.FormatPercent(b.Rate) + " above " + utils.FormatEUR(prev)
		if b.UpTo != nil {
			line = "up to " + utils.FormatEUR(*b.UpTo) + ": " + line
			prev = *b.UpTo
		} else {
			line = "over " + utils.FormatEUR(prev) + ": " + line
		}
		out = append(out, line)
	}
	return out
}
