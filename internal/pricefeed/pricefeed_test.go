package pricefeed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func chartPayload(symbol, currency string, price float64, at int64) string {
	return fmt.Sprintf(`{
		"chart": {
			"result": [{
				"meta": {
					"symbol": %q,
					"currency": %q,
					"regularMarketPrice": %v,
					"regularMarketTime": %d
				}
			}],
			"error": null
		}
	}`, symbol, currency, price, at)
}

func TestClientGetQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("parses the chart meta into a quote", func(t *testing.T) {
		at := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v8/finance/chart/BBCA.JK", r.URL.Path)
			require.Empty(t, r.Header.Get("Authorization"))
			fmt.Fprint(w, chartPayload("BBCA.JK", "IDR", 9250, at.Unix()))
		}))
		defer srv.Close()

		quote, err := NewClient(srv.URL, "").GetQuote(ctx, "BBCA.JK")
		require.NoError(t, err)
		require.Equal(t, "BBCA.JK", quote.Symbol)
		require.Equal(t, "IDR", quote.Currency)
		require.True(t, quote.Price.Equal(decimal.NewFromInt(9250)), "price = %s", quote.Price)
		require.Equal(t, at, quote.AsOf)
	})

	t.Run("sends the API token as a bearer credential", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "Bearer sekrit", r.Header.Get("Authorization"))
			fmt.Fprint(w, chartPayload("AAPL", "USD", 210.5, time.Now().Unix()))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, "sekrit").GetQuote(ctx, "AAPL")
		require.NoError(t, err)
	})

	t.Run("404 maps to the symbol-not-found sentinel", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, "").GetQuote(ctx, "NOPE")
		require.ErrorIs(t, err, ErrSymbolNotFound)
	})

	t.Run("empty result set maps to symbol not found", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"chart": {"result": [], "error": null}}`)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, "").GetQuote(ctx, "NOPE")
		require.ErrorIs(t, err, ErrSymbolNotFound)
	})

	t.Run("feed-level errors are surfaced", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"chart": {"result": null, "error": {"code": "Bad Request", "description": "invalid range"}}}`)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, "").GetQuote(ctx, "AAPL")
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid range")
	})

	t.Run("non-200 responses report the status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, "").GetQuote(ctx, "AAPL")
		require.Error(t, err)
		require.Contains(t, err.Error(), "429")
	})
}

func TestClientGetExchangeRate(t *testing.T) {
	ctx := context.Background()

	t.Run("same currency short-circuits to one", func(t *testing.T) {
		rate, err := NewClient("http://feed.invalid", "").GetExchangeRate(ctx, "IDR", "IDR")
		require.NoError(t, err)
		require.True(t, rate.Equal(decimal.NewFromInt(1)))
	})

	t.Run("cross rates are fetched as synthetic pair symbols", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v8/finance/chart/USDIDR=X", r.URL.Path)
			fmt.Fprint(w, chartPayload("USDIDR=X", "IDR", 16250, time.Now().Unix()))
		}))
		defer srv.Close()

		rate, err := NewClient(srv.URL, "").GetExchangeRate(ctx, "USD", "IDR")
		require.NoError(t, err)
		require.True(t, rate.Equal(decimal.NewFromInt(16250)), "rate = %s", rate)
	})
}
