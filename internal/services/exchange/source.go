package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Source fetches the latest rates relative to base.
type Source interface {
	Latest(ctx context.Context, base string) (Rates, error)
}

// DefaultCurrencies are the quote currencies requested from the source.
var DefaultCurrencies = []string{"USD", "CAD", "GBP", "AUD"}

// FrankfurterSource reads rates from a Frankfurter compatible API.
type FrankfurterSource struct {
	baseURL    string
	client     *http.Client
	currencies []string
}

type frankfurterResponse struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

func NewFrankfurterSource(baseURL string, timeout time.Duration) *FrankfurterSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &FrankfurterSource{
		baseURL:    strings.TrimRight(baseURL, "/"),
		client:     &http.Client{Timeout: timeout},
		currencies: DefaultCurrencies,
	}
}

func (s *FrankfurterSource) Latest(ctx context.Context, base string) (Rates, error) {
	to := make([]string, 0, len(s.currencies))
	for _, c := range s.currencies {
		if c != base {
			to = append(to, c)
		}
	}
	url := fmt.Sprintf("%s/latest?from=%s&to=%s", s.baseURL, base, strings.Join(to, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build rate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var body frankfurterResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode rates: %w", err)
	}

	rates := make(Rates, len(body.Rates)+1)
	for code, rate := range body.Rates {
		if rate.IsPositive() {
			rates[code] = rate
		}
	}
	if len(rates) == 0 {
		return nil, ErrEmptyRates
	}
	rates[base] = decimal.NewFromInt(1)
	return rates, nil
}
