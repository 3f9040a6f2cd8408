/*
Package calculator estimates the first-year cost of buying a property in
Italy.

The Engine is pure: given a PropertyInput, a rate table and a resolved
exchange rate mapping it returns an itemised CalculationResult and never
fails. Input is assumed to have passed validation.

	engine := calculator.NewEngine(ratetable.Default())
	result := engine.Calculate(input, exchange.FallbackRates("EUR"))

The Service wraps the Engine for request handling. It validates input,
obtains rates from the exchange provider and records each calculation in
the history repository when one is configured.

Purchase taxes depend on three flags (seller type, prima casa, luxury
category) and are looked up in a rule table with one entry per
combination. IMU is looked up the same way on (prima casa, luxury).
*/
package calculator
