package request

import "github.com/shopspring/decimal"

// CreatePortfolioRequest creates a new savings-goal portfolio.
type CreatePortfolioRequest struct {
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	TargetDate   string          `json:"targetDate"`
	IsActive     *bool           `json:"isActive,omitempty"`
}

// UpdatePortfolioRequest rewrites a portfolio's user-settable fields.
type UpdatePortfolioRequest struct {
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	TargetDate   string          `json:"targetDate"`
	IsActive     bool            `json:"isActive"`
}
