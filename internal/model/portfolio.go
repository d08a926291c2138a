package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Portfolio is a named bucket of holdings representing a savings goal.
type Portfolio struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	TargetDate   time.Time       `json:"targetDate"`
	IsActive     bool            `json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt,omitempty"`
	UpdatedAt    time.Time       `json:"updatedAt,omitempty"`
}

// PortfolioFilter controls which portfolios are returned by list queries.
type PortfolioFilter struct {
	IncludeInactive bool
}

// PortfolioSummary aggregates valuation metrics across a portfolio's holdings.
//
// InvestedCapital is computed from averagePricePerUnit * quantity summed over
// current holdings, so GrowthRate understates historical growth once positions
// have been partially sold. This mirrors the established reporting behavior
// and is kept deliberately.
type PortfolioSummary struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	MarketValue     decimal.Decimal `json:"marketValue"`
	InvestedCapital decimal.Decimal `json:"investedCapital"`
	ProfitAmount    decimal.Decimal `json:"profitAmount"`
	GrowthRate      decimal.Decimal `json:"growthRate"`
	TargetAmount    decimal.Decimal `json:"targetAmount"`
	IsActive        bool            `json:"isActive"`
}

// AllocationSlice is one segment of an allocation breakdown, either by asset
// type or by platform.
type AllocationSlice struct {
	Label       string          `json:"label"`
	MarketValue decimal.Decimal `json:"marketValue"`
	Weight      decimal.Decimal `json:"weight"`
}
