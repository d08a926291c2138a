package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetType classifies a tradable asset. The type determines the unit label
// shown to users and the quantity multiplier applied when valuing a position.
type AssetType string

const (
	AssetTypeBonds       AssetType = "bonds"
	AssetTypeOptions     AssetType = "options"
	AssetTypeMutualFunds AssetType = "mutual_funds"
	AssetTypeStocks      AssetType = "stocks"
	AssetTypeStocksID    AssetType = "stocks_id" // IDX-listed stocks, traded in lots
	AssetTypeCrypto      AssetType = "crypto"
	AssetTypeETF         AssetType = "etf"
)

// ValidAssetTypes contains the allowed asset type values.
var ValidAssetTypes = map[AssetType]bool{
	AssetTypeBonds:       true,
	AssetTypeOptions:     true,
	AssetTypeMutualFunds: true,
	AssetTypeStocks:      true,
	AssetTypeStocksID:    true,
	AssetTypeCrypto:      true,
	AssetTypeETF:         true,
}

// Valid reports whether t is one of the known asset types.
func (t AssetType) Valid() bool {
	return ValidAssetTypes[t]
}

// UnitLabel returns the display label for one quantity unit of this asset type.
func (t AssetType) UnitLabel() string {
	switch t {
	case AssetTypeStocksID:
		return "lot"
	case AssetTypeStocks, AssetTypeETF:
		return "share"
	case AssetTypeOptions:
		return "contract"
	case AssetTypeCrypto:
		return "coin"
	default:
		return "unit"
	}
}

var lotMultiplier = decimal.NewFromInt(100)

// Multiplier returns the factor applied to quantity when computing value.
// IDX stocks are recorded in lots of 100 shares; every other type is 1:1.
func (t AssetType) Multiplier() decimal.Decimal {
	if t == AssetTypeStocksID {
		return lotMultiplier
	}
	return decimal.NewFromInt(1)
}

// Asset represents a tradable instrument. Identity fields are immutable;
// LastPrice and PriceUpdatedAt are refreshed from the external price feed.
type Asset struct {
	ID             string          `json:"id"`
	Symbol         string          `json:"symbol"`
	Name           string          `json:"name"`
	Type           AssetType       `json:"type"`
	Currency       string          `json:"currency"`
	Country        string          `json:"country"`
	LastPrice      decimal.Decimal `json:"lastPrice"`
	PriceUpdatedAt time.Time       `json:"priceUpdatedAt"`
	CreatedAt      time.Time       `json:"createdAt,omitempty"`
	UpdatedAt      time.Time       `json:"updatedAt,omitempty"`
}
