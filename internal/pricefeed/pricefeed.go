// Package pricefeed is a thin client for the external quote and
// exchange-rate feed. It only exposes what the asset service needs: the
// latest quote for a symbol and a currency cross rate.
package pricefeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// ErrSymbolNotFound indicates the feed has no quote for the symbol.
var ErrSymbolNotFound = errors.New("symbol not found on price feed")

const defaultTimeout = 10 * time.Second

// Client talks to the quote feed over HTTP. The zero value is not usable;
// construct with NewClient.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// NewClient creates a feed client for the given base URL. The API token is
// optional; when set it is sent as a bearer credential on every request.
func NewClient(baseURL, apiToken string) *Client {
	return &Client{
		baseURL:  baseURL,
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// GetQuote fetches the latest market quote for a symbol.
func (c *Client) GetQuote(ctx context.Context, symbol string) (Quote, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, url.PathEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to build quote request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "invest-ledger/1.0")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Quote{}, ErrSymbolNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Quote{}, fmt.Errorf("quote request for %s returned %d: %s", symbol, resp.StatusCode, body)
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Quote{}, fmt.Errorf("failed to decode quote response: %w", err)
	}
	if payload.Chart.Error != nil {
		return Quote{}, fmt.Errorf("feed error for %s: %s", symbol, payload.Chart.Error.Description)
	}
	if len(payload.Chart.Result) == 0 {
		return Quote{}, ErrSymbolNotFound
	}

	meta := payload.Chart.Result[0].Meta
	return Quote{
		Symbol:   meta.Symbol,
		Price:    decimal.NewFromFloat(meta.RegularMarketPrice),
		Currency: meta.Currency,
		AsOf:     time.Unix(meta.RegularMarketTime, 0).UTC(),
	}, nil
}

// GetExchangeRate fetches the cross rate from one currency to another. The
// feed quotes currency pairs as synthetic symbols (e.g. "USDIDR=X").
func (c *Client) GetExchangeRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	quote, err := c.GetQuote(ctx, fmt.Sprintf("%s%s=X", from, to))
	if err != nil {
		return decimal.Zero, err
	}
	return quote.Price, nil
}
