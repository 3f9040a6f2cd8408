package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrankfurterSource_Latest(t *testing.T) {
	t.Run("parses rates and adds the base", func(t *testing.T) {
		var gotQuery string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/latest", r.URL.Path)
			gotQuery = r.URL.RawQuery
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"amount":1.0,"base":"EUR","date":"2026-01-15","rates":{"AUD":1.65,"CAD":1.47,"GBP":0.85,"USD":1.08}}`))
		}))
		defer srv.Close()

		src := NewFrankfurterSource(srv.URL+"/", time.Second)
		rates, err := src.Latest(context.Background(), "EUR")
		require.NoError(t, err)

		assert.Equal(t, "from=EUR&to=USD,CAD,GBP,AUD", gotQuery)
		assert.Len(t, rates, 5)
		assert.Equal(t, "1.08", rates["USD"].String())
		assert.Equal(t, "1", rates["EUR"].String())
	})

	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := NewFrankfurterSource(srv.URL, time.Second).Latest(context.Background(), "EUR")
		assert.ErrorIs(t, err, ErrUnexpectedStatus)
	})

	t.Run("empty rates", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"base":"EUR","rates":{}}`))
		}))
		defer srv.Close()

		_, err := NewFrankfurterSource(srv.URL, time.Second).Latest(context.Background(), "EUR")
		assert.ErrorIs(t, err, ErrEmptyRates)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		_, err := NewFrankfurterSource(srv.URL, time.Second).Latest(context.Background(), "EUR")
		assert.Error(t, err)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		_, err := NewFrankfurterSource(srv.URL, 20*time.Millisecond).Latest(context.Background(), "EUR")
		assert.Error(t, err)
	})
}
