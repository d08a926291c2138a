package model

import "github.com/shopspring/decimal"

// AccountPosition is the platform-scoped slice of a holding, derived by
// replaying that platform's transactions in date order. Closed positions
// (final quantity zero) are excluded from breakdowns even though their
// transactions remain in history.
type AccountPosition struct {
	PlatformID   string          `json:"platformId"`
	PlatformName string          `json:"platformName"`
	Quantity     decimal.Decimal `json:"quantity"`
	AvgPrice     decimal.Decimal `json:"avgPrice"`
	MarketValue  decimal.Decimal `json:"marketValue"`
	CostBasis    decimal.Decimal `json:"costBasis"`
	// UnrealizedPnL tracks the position's market value exposure, not
	// marketValue - costBasis. Kept for parity with the original reports.
	UnrealizedPnL    decimal.Decimal `json:"unrealizedPnl"`
	UnrealizedPnLPct decimal.Decimal `json:"unrealizedPnlPercentage"`
}

// HoldingPosition is the consolidated view of one holding plus its
// per-platform breakdown. Derived on demand from the ledger, never persisted.
type HoldingPosition struct {
	HoldingID        string            `json:"holdingId"`
	AssetID          string            `json:"assetId"`
	Symbol           string            `json:"symbol"`
	AssetName        string            `json:"assetName"`
	AssetType        AssetType         `json:"assetType"`
	UnitLabel        string            `json:"unitLabel"`
	PortfolioID      string            `json:"portfolioId"`
	Quantity         decimal.Decimal   `json:"quantity"`
	AvgPrice         decimal.Decimal   `json:"avgPrice"`
	LastPrice        decimal.Decimal   `json:"lastPrice"`
	MarketValue      decimal.Decimal   `json:"marketValue"`
	CostBasis        decimal.Decimal   `json:"costBasis"`
	UnrealizedPnL    decimal.Decimal   `json:"unrealizedPnl"`
	UnrealizedPnLPct decimal.Decimal   `json:"unrealizedPnlPercentage"`
	Accounts         []AccountPosition `json:"accounts"`
}
