package utils

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatEUR renders a whole-euro amount with thousands separators, e.g. €80,000.
func FormatEUR(amount decimal.Decimal) string {
	return printer.Sprintf("€%d", amount.Round(0).IntPart())
}

// FormatPercent renders a fraction as a percentage without trailing zeros,
// e.g. 0.0025 becomes 0.25%.
func FormatPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}

// FormatPercentFixed renders a fraction as a percentage with the given
// number of decimal places, e.g. 0.0366 with 2 places becomes 3.66%.
func FormatPercentFixed(rate decimal.Decimal, places int32) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(places) + "%"
}
