package exchange

import "github.com/shopspring/decimal"

// approximate EUR rates, early 2026
var fallbackEUR = map[string]string{
	"EUR": "1",
	"USD": "1.08",
	"CAD": "1.47",
	"GBP": "0.85",
	"AUD": "1.65",
}

// FallbackRates returns the static table used when no live rates are
// available, rebased on base when base is one of its currencies.
func FallbackRates(base string) Rates {
	rates := make(Rates, len(fallbackEUR))
	for code, v := range fallbackEUR {
		rates[code] = decimal.RequireFromString(v)
	}

	anchor, ok := rates[base]
	if base == BaseCurrency || !ok {
		return rates
	}

	rebased := make(Rates, len(rates))
	for code, v := range rates {
		rebased[code] = v.Div(anchor)
	}
	rebased[base] = decimal.NewFromInt(1)
	return rebased
}
