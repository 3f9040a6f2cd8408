package calculator

import (
	"casacalc/internal/ratetable"

	"github.com/shopspring/decimal"
)

// NotaryFee applies the sliding scale: the first band whose bound covers
// price charges its base fee plus its rate on the excess over the previous
// bound.
func NotaryFee(schedule []ratetable.NotaryBand, price decimal.Decimal) decimal.Decimal {
	if len(schedule) == 0 {
		return decimal.Zero
	}

	prev := decimal.Zero
	for i, b := range schedule {
		if b.Covers(price) {
			return b.BaseFee.Add(price.Sub(prev).Mul(b.Rate))
		}
		if i < len(schedule)-1 {
			prev = *b.UpTo
		}
	}

	// Only reachable with a bounded last band; extend it.
	last := schedule[len(schedule)-1]
	return last.BaseFee.Add(price.Sub(prev).Mul(last.Rate))
}
