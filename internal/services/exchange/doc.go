/*
Package exchange converts amounts between currencies and keeps the rate
snapshot used by calculations.

Every rate is expressed relative to EUR: Rates["USD"] is the number of
dollars one euro buys, and Rates["EUR"] is always 1.

Usage:

	source := exchange.NewFrankfurterSource(cfg.Rates.APIURL, cfg.Rates.FetchTimeout)
	provider := exchange.NewProvider(source, exchange.NewMemoryStore(), exchange.Config{
	    RefreshInterval: 15 * time.Minute,
	}, logger, nil)

	quote := provider.Rates(ctx)
	usd := exchange.Convert(amount, "EUR", "USD", quote.Rates)

Fallback:

Provider.Rates never fails. When the live source cannot be reached the
provider answers with FallbackRates and marks the quote as SourceFallback.

Concurrency:

Concurrent callers may refresh the snapshot at the same time. Every writer
stores an equivalent snapshot, so the last write wins and no lock is taken.
*/
package exchange
