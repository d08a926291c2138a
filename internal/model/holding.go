package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is a position in one asset within one portfolio, unique per
// (asset, portfolio) pair. Quantity and AvgPricePerUnit together carry the
// accounting invariant: quantity * avgPricePerUnit equals the accumulated
// cost basis of all not-yet-reversed incoming legs minus outgoing legs.
//
// Holdings are created on the first buy or allocate-in for a pair and persist
// at zero quantity; they are only removed when the owning portfolio is.
type Holding struct {
	ID              string          `json:"id"`
	AssetID         string          `json:"assetId"`
	PortfolioID     string          `json:"portfolioId"`
	Quantity        decimal.Decimal `json:"quantity"`
	AvgPricePerUnit decimal.Decimal `json:"avgPricePerUnit"`
	CreatedAt       time.Time       `json:"createdAt,omitempty"`
	UpdatedAt       time.Time       `json:"updatedAt,omitempty"`
}

// CostBasis returns quantity * average price, the accounting value of the
// position excluding market movement.
func (h Holding) CostBasis() decimal.Decimal {
	return h.Quantity.Mul(h.AvgPricePerUnit)
}
