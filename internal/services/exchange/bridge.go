package exchange

import "github.com/shopspring/decimal"

// Convert moves amount from one currency to another through EUR.
// A code missing from rates is treated as parity with EUR.
func Convert(amount decimal.Decimal, from, to string, rates Rates) decimal.Decimal {
	if from == to {
		return amount
	}

	switch {
	case from == BaseCurrency:
		return amount.Mul(rates.Rate(to))
	case to == BaseCurrency:
		return divide(amount, rates.Rate(from))
	default:
		return divide(amount, rates.Rate(from)).Mul(rates.Rate(to))
	}
}

// divide guards against a zero rate, which would otherwise panic.
func divide(amount, rate decimal.Decimal) decimal.Decimal {
	if rate.IsZero() {
		return amount
	}
	return amount.Div(rate)
}
