package exchange

import (
	"time"

	"github.com/shopspring/decimal"
)

// BaseCurrency anchors every rate mapping.
const BaseCurrency = "EUR"

// Quote sources.
const (
	SourceLive     = "live"
	SourceCache    = "cache"
	SourceFallback = "fallback"
)

// Rates maps a currency code to the amount of that currency one EUR buys.
type Rates map[string]decimal.Decimal

// Lookup returns the rate for code and whether it is present.
func (r Rates) Lookup(code string) (decimal.Decimal, bool) {
	rate, ok := r[code]
	return rate, ok
}

// Rate returns the rate for code, or 1 when code is missing.
func (r Rates) Rate(code string) decimal.Decimal {
	if rate, ok := r[code]; ok {
		return rate
	}
	return decimal.NewFromInt(1)
}

func (r Rates) Clone() Rates {
	out := make(Rates, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Snapshot is a set of rates as fetched at a point in time.
type Snapshot struct {
	Base      string    `json:"base"`
	Rates     Rates     `json:"rates"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Age reports how old the snapshot is at now.
func (s *Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

// Quote is the rate mapping handed to a calculation together with its origin.
type Quote struct {
	Rates  Rates
	Source string
	AsOf   time.Time
}

// RateInfo is the public view of the current rates.
type RateInfo struct {
	Base   string `json:"base"`
	Rates  Rates  `json:"rates"`
	Date   string `json:"date"`
	Cached bool   `json:"cached"`
	Source string `json:"source"`
}
