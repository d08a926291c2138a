package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/pricefeed"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/service"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// NewTestTransactionService creates a TransactionService with a silent logger.
func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()
	return service.NewTransactionService(db, zerolog.Nop())
}

// NewTestPositionService creates a PositionService with a silent logger.
func NewTestPositionService(t *testing.T, db *sql.DB) *service.PositionService {
	t.Helper()
	return service.NewPositionService(db, zerolog.Nop())
}

// NewTestPortfolioService creates a PortfolioService with a silent logger.
func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()
	return service.NewPortfolioService(db, zerolog.Nop())
}

// NewTestPlatformService creates a PlatformService with a silent logger.
func NewTestPlatformService(t *testing.T, db *sql.DB) *service.PlatformService {
	t.Helper()
	return service.NewPlatformService(db, zerolog.Nop())
}

// NewTestAssetService creates an AssetService backed by the given feed stub.
func NewTestAssetService(t *testing.T, db *sql.DB, feed service.QuoteFeed) *service.AssetService {
	t.Helper()
	if feed == nil {
		feed = &FeedStub{}
	}
	return service.NewAssetService(db, feed, zerolog.Nop())
}

// FeedStub is an in-memory QuoteFeed for tests. Quotes are keyed by symbol;
// unknown symbols report pricefeed.ErrSymbolNotFound.
type FeedStub struct {
	Quotes map[string]pricefeed.Quote
	Rates  map[string]decimal.Decimal // keyed by "FROM/TO"
}

// GetQuote returns the stubbed quote for the symbol.
func (f *FeedStub) GetQuote(_ context.Context, symbol string) (pricefeed.Quote, error) {
	if q, ok := f.Quotes[symbol]; ok {
		return q, nil
	}
	return pricefeed.Quote{}, pricefeed.ErrSymbolNotFound
}

// GetExchangeRate returns the stubbed rate for the pair.
func (f *FeedStub) GetExchangeRate(_ context.Context, from, to string) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	if r, ok := f.Rates[from+"/"+to]; ok {
		return r, nil
	}
	return decimal.Zero, pricefeed.ErrSymbolNotFound
}
