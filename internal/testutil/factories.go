package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/model"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MakeID generates a fresh UUID for a test entity.
func MakeID() string {
	return uuid.New().String()
}

// AssetBuilder provides a fluent interface for creating test assets.
//
// Example usage:
//
//	asset := testutil.NewAsset().
//	    WithSymbol("BBCA.JK").
//	    WithType(model.AssetTypeStocksID).
//	    WithLastPrice(decimal.NewFromInt(9500)).
//	    Build(t, db)
type AssetBuilder struct {
	asset model.Asset
}

// NewAsset creates an AssetBuilder with sensible defaults.
func NewAsset() *AssetBuilder {
	now := time.Now().UTC()
	return &AssetBuilder{
		asset: model.Asset{
			ID:             MakeID(),
			Symbol:         "TEST",
			Name:           "Test Asset",
			Type:           model.AssetTypeStocks,
			Currency:       "IDR",
			Country:        "ID",
			LastPrice:      decimal.NewFromInt(1000),
			PriceUpdatedAt: now,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}
}

// WithSymbol sets a custom symbol.
func (b *AssetBuilder) WithSymbol(symbol string) *AssetBuilder {
	b.asset.Symbol = symbol
	return b
}

// WithType sets a custom asset type.
func (b *AssetBuilder) WithType(t model.AssetType) *AssetBuilder {
	b.asset.Type = t
	return b
}

// WithCurrency sets a custom currency.
func (b *AssetBuilder) WithCurrency(currency string) *AssetBuilder {
	b.asset.Currency = currency
	return b
}

// WithLastPrice sets a custom last price.
func (b *AssetBuilder) WithLastPrice(price decimal.Decimal) *AssetBuilder {
	b.asset.LastPrice = price
	return b
}

// Build inserts the asset and returns it.
func (b *AssetBuilder) Build(t *testing.T, db *sql.DB) model.Asset {
	t.Helper()
	if err := repository.NewAssetRepository(db).Insert(context.Background(), &b.asset); err != nil {
		t.Fatalf("Failed to insert test asset: %v", err)
	}
	return b.asset
}

// PlatformBuilder provides a fluent interface for creating test platforms.
type PlatformBuilder struct {
	platform model.Platform
}

// NewPlatform creates a PlatformBuilder with sensible defaults.
func NewPlatform() *PlatformBuilder {
	return &PlatformBuilder{
		platform: model.Platform{
			ID:        MakeID(),
			Name:      "Test Platform",
			CreatedAt: time.Now().UTC(),
		},
	}
}

// WithName sets a custom name.
func (b *PlatformBuilder) WithName(name string) *PlatformBuilder {
	b.platform.Name = name
	return b
}

// Build inserts the platform and returns it.
func (b *PlatformBuilder) Build(t *testing.T, db *sql.DB) model.Platform {
	t.Helper()
	if err := repository.NewPlatformRepository(db).Insert(context.Background(), &b.platform); err != nil {
		t.Fatalf("Failed to insert test platform: %v", err)
	}
	return b.platform
}

// PortfolioBuilder provides a fluent interface for creating test portfolios.
type PortfolioBuilder struct {
	portfolio model.Portfolio
}

// NewPortfolio creates a PortfolioBuilder with sensible defaults.
func NewPortfolio() *PortfolioBuilder {
	now := time.Now().UTC()
	return &PortfolioBuilder{
		portfolio: model.Portfolio{
			ID:           MakeID(),
			Name:         "Test Portfolio",
			TargetAmount: decimal.NewFromInt(100000000),
			TargetDate:   now.AddDate(5, 0, 0),
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
}

// WithName sets a custom name.
func (b *PortfolioBuilder) WithName(name string) *PortfolioBuilder {
	b.portfolio.Name = name
	return b
}

// WithTargetAmount sets a custom target amount.
func (b *PortfolioBuilder) WithTargetAmount(amount decimal.Decimal) *PortfolioBuilder {
	b.portfolio.TargetAmount = amount
	return b
}

// Inactive marks the portfolio as inactive.
func (b *PortfolioBuilder) Inactive() *PortfolioBuilder {
	b.portfolio.IsActive = false
	return b
}

// Build inserts the portfolio and returns it.
func (b *PortfolioBuilder) Build(t *testing.T, db *sql.DB) model.Portfolio {
	t.Helper()
	if err := repository.NewPortfolioRepository(db).Insert(context.Background(), &b.portfolio); err != nil {
		t.Fatalf("Failed to insert test portfolio: %v", err)
	}
	return b.portfolio
}

// HoldingBuilder provides a fluent interface for creating test holdings.
type HoldingBuilder struct {
	holding model.Holding
}

// NewHolding creates a HoldingBuilder for the given (asset, portfolio) pair.
func NewHolding(assetID, portfolioID string) *HoldingBuilder {
	now := time.Now().UTC()
	return &HoldingBuilder{
		holding: model.Holding{
			ID:              MakeID(),
			AssetID:         assetID,
			PortfolioID:     portfolioID,
			Quantity:        decimal.Zero,
			AvgPricePerUnit: decimal.Zero,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
	}
}

// WithPosition sets the quantity and average price.
func (b *HoldingBuilder) WithPosition(qty, avgPrice decimal.Decimal) *HoldingBuilder {
	b.holding.Quantity = qty
	b.holding.AvgPricePerUnit = avgPrice
	return b
}

// Build inserts the holding and returns it.
func (b *HoldingBuilder) Build(t *testing.T, db *sql.DB) model.Holding {
	t.Helper()
	if err := repository.NewHoldingRepository(db).Insert(context.Background(), &b.holding); err != nil {
		t.Fatalf("Failed to insert test holding: %v", err)
	}
	return b.holding
}

// TransactionBuilder provides a fluent interface for creating test
// transactions directly at the repository level, bypassing the service's
// holding updates. Use the service for end-to-end scenarios.
type TransactionBuilder struct {
	transaction model.Transaction
}

// NewTransaction creates a TransactionBuilder with sensible defaults for the
// given references.
func NewTransaction(platformID, assetID, portfolioID, holdingID string) *TransactionBuilder {
	now := time.Now().UTC()
	return &TransactionBuilder{
		transaction: model.Transaction{
			ID:           MakeID(),
			PlatformID:   platformID,
			AssetID:      assetID,
			PortfolioID:  portfolioID,
			HoldingID:    holdingID,
			Type:         model.TransactionTypeBuy,
			Quantity:     decimal.NewFromInt(10),
			Price:        decimal.NewFromInt(1000),
			Date:         now,
			Currency:     "IDR",
			ExchangeRate: decimal.NewFromInt(1),
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
}

// WithType sets the transaction type.
func (b *TransactionBuilder) WithType(txType model.TransactionType) *TransactionBuilder {
	b.transaction.Type = txType
	return b
}

// WithQuantity sets the quantity.
func (b *TransactionBuilder) WithQuantity(qty decimal.Decimal) *TransactionBuilder {
	b.transaction.Quantity = qty
	return b
}

// WithPrice sets the price.
func (b *TransactionBuilder) WithPrice(price decimal.Decimal) *TransactionBuilder {
	b.transaction.Price = price
	return b
}

// WithCostBasis sets the cost basis snapshot.
func (b *TransactionBuilder) WithCostBasis(basis decimal.Decimal) *TransactionBuilder {
	b.transaction.CostBasisPerUnit = &basis
	return b
}

// WithDate sets the transaction date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.transaction.Date = date
	return b
}

// Build inserts the transaction and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()
	if err := repository.NewTransactionRepository(db).Insert(context.Background(), &b.transaction); err != nil {
		t.Fatalf("Failed to insert test transaction: %v", err)
	}
	return b.transaction
}
