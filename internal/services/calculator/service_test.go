package calculator

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"casacalc/internal/errors"
	"casacalc/internal/models"
	"casacalc/internal/services/exchange"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) Rates(ctx context.Context) exchange.Quote {
	return m.Called(ctx).Get(0).(exchange.Quote)
}

type MockHistory struct {
	mock.Mock
}

func (m *MockHistory) Save(ctx context.Context, rec *models.CalculationRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *MockHistory) FindByID(ctx context.Context, id uuid.UUID) (*models.CalculationRecord, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*models.CalculationRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func liveQuote(rates exchange.Rates) exchange.Quote {
	return exchange.Quote{Rates: rates, Source: exchange.SourceLive, AsOf: time.Now()}
}

func TestService_Calculate(t *testing.T) {
	ctx := context.Background()
	fixedID := uuid.MustParse("7f1d0c1e-3a55-4f43-9a8e-0c3b2a6d9e11")

	t.Run("records the calculation", func(t *testing.T) {
		rates := new(MockRateProvider)
		history := new(MockHistory)
		rates.On("Rates", ctx).Return(liveQuote(eurRates))
		history.On("Save", ctx, mock.MatchedBy(func(rec *models.CalculationRecord) bool {
			return rec.ID == fixedID && rec.RatesSource == exchange.SourceLive && rec.GrandTotalEUR.Equal(dec("216270"))
		})).Return(nil)

		svc := NewService(newTestEngine(), rates, history, quietLogger()).(*service)
		svc.newID = func() uuid.UUID { return fixedID }

		res, err := svc.Calculate(ctx, models.PropertyInput{PurchasePrice: dec("200000"), PrimaCasa: true})
		require.NoError(t, err)

		assert.Equal(t, fixedID.String(), res.ID)
		assert.Equal(t, exchange.SourceLive, res.RatesSource)
		assertDec(t, "216270", res.GrandTotalFirstYearEUR)
		rates.AssertExpectations(t)
		history.AssertExpectations(t)
	})

	t.Run("history failure is not fatal", func(t *testing.T) {
		rates := new(MockRateProvider)
		history := new(MockHistory)
		rates.On("Rates", ctx).Return(liveQuote(eurRates))
		history.On("Save", ctx, mock.Anything).Return(stderrors.New("connection reset"))

		res, err := NewService(newTestEngine(), rates, history, quietLogger()).Calculate(ctx, models.PropertyInput{PurchasePrice: dec("100000")})
		require.NoError(t, err)
		assert.Empty(t, res.ID)
	})

	t.Run("without history", func(t *testing.T) {
		rates := new(MockRateProvider)
		rates.On("Rates", ctx).Return(liveQuote(eurRates))

		res, err := NewService(newTestEngine(), rates, nil, quietLogger()).Calculate(ctx, models.PropertyInput{PurchasePrice: dec("100000")})
		require.NoError(t, err)
		assert.Empty(t, res.ID)
	})

	t.Run("invalid input never reaches the rate provider", func(t *testing.T) {
		rates := new(MockRateProvider)

		_, err := NewService(newTestEngine(), rates, nil, quietLogger()).Calculate(ctx, models.PropertyInput{PurchasePrice: dec("-1")})
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
		rates.AssertNotCalled(t, "Rates", mock.Anything)
	})

	t.Run("buyer currency missing from the quote uses the fallback rate", func(t *testing.T) {
		rates := new(MockRateProvider)
		rates.On("Rates", ctx).Return(exchange.Quote{Rates: exchange.Rates{"EUR": dec("1"), "USD": dec("1.1")}, Source: exchange.SourceCache})

		res, err := NewService(newTestEngine(), rates, nil, quietLogger()).Calculate(ctx, models.PropertyInput{
			PurchasePrice:  dec("100000"),
			SourceCurrency: models.CurrencyAUD,
		})
		require.NoError(t, err)

		require.NotNil(t, res.ExchangeRate)
		assertDec(t, "1.65", *res.ExchangeRate)
		assert.Equal(t, exchange.SourceCache, res.RatesSource)
	})

	t.Run("fallback quote", func(t *testing.T) {
		rates := new(MockRateProvider)
		rates.On("Rates", ctx).Return(exchange.Quote{Rates: exchange.FallbackRates("EUR"), Source: exchange.SourceFallback})

		res, err := NewService(newTestEngine(), rates, nil, quietLogger()).Calculate(ctx, models.PropertyInput{
			PurchasePrice:  dec("100000"),
			SourceCurrency: models.CurrencyUSD,
		})
		require.NoError(t, err)
		assert.Equal(t, exchange.SourceFallback, res.RatesSource)
		assertDec(t, "108000", *res.PurchasePriceForeign)
	})
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	rates := new(MockRateProvider)

	t.Run("stored result", func(t *testing.T) {
		history := new(MockHistory)
		history.On("FindByID", ctx, id).Return(&models.CalculationRecord{ID: id, Result: []byte(`{"id":"x"}`)}, nil)

		raw, err := NewService(newTestEngine(), rates, history, quietLogger()).Get(ctx, id)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"x"}`, string(raw))
		assert.True(t, json.Valid(raw))
	})

	t.Run("not found", func(t *testing.T) {
		history := new(MockHistory)
		history.On("FindByID", ctx, id).Return(nil, errors.ErrCalculationNotFound)

		_, err := NewService(newTestEngine(), rates, history, quietLogger()).Get(ctx, id)
		assert.ErrorIs(t, err, errors.ErrCalculationNotFound)
	})

	t.Run("history disabled", func(t *testing.T) {
		_, err := NewService(newTestEngine(), rates, nil, quietLogger()).Get(ctx, id)
		assert.ErrorIs(t, err, errors.ErrHistoryDisabled)
	})
}
