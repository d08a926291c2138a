package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the four ledger operations. Allocate-in and
// allocate-out are the two legs of an internal transfer between portfolios,
// not external market trades.
type TransactionType string

const (
	TransactionTypeBuy         TransactionType = "buy"
	TransactionTypeSell        TransactionType = "sell"
	TransactionTypeAllocateIn  TransactionType = "allocate_in"
	TransactionTypeAllocateOut TransactionType = "allocate_out"
)

// ValidTransactionTypes contains the allowed transaction type values.
var ValidTransactionTypes = map[TransactionType]bool{
	TransactionTypeBuy:         true,
	TransactionTypeSell:        true,
	TransactionTypeAllocateIn:  true,
	TransactionTypeAllocateOut: true,
}

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return ValidTransactionTypes[t]
}

// Incoming reports whether the leg adds quantity to its holding.
func (t TransactionType) Incoming() bool {
	return t == TransactionTypeBuy || t == TransactionTypeAllocateIn
}

// Outgoing reports whether the leg removes quantity from its holding.
func (t TransactionType) Outgoing() bool {
	return t == TransactionTypeSell || t == TransactionTypeAllocateOut
}

// Transaction is one ledger entry against a holding.
//
// CostBasisPerUnit is recorded on outgoing legs (sell, allocate_out): it
// snapshots the holding's average cost at the moment of the leg and is
// required to reverse the transaction later. It is nil for buys. For
// allocate_in legs the Price field carries the incoming basis per unit and
// CostBasisPerUnit records the destination holding's post-transfer average.
//
// TransferID links the leg back to its TransferTransaction when the entry is
// half of an internal transfer, and is empty otherwise.
type Transaction struct {
	ID               string           `json:"id"`
	PlatformID       string           `json:"platformId"`
	AssetID          string           `json:"assetId"`
	PortfolioID      string           `json:"portfolioId"`
	HoldingID        string           `json:"holdingId"`
	Type             TransactionType  `json:"type"`
	Quantity         decimal.Decimal  `json:"quantity"`
	Price            decimal.Decimal  `json:"price"`
	CostBasisPerUnit *decimal.Decimal `json:"costBasisPerUnit,omitempty"`
	Date             time.Time        `json:"date"`
	Currency         string           `json:"currency"`
	ExchangeRate     decimal.Decimal  `json:"exchangeRate"`
	TransferID       string           `json:"transferId,omitempty"`
	CreatedAt        time.Time        `json:"createdAt,omitempty"`
	UpdatedAt        time.Time        `json:"updatedAt,omitempty"`
}

// TransferTransaction pairs the two legs of an internal transfer. Both legs
// always exist together; deleting one leg deletes the pair.
type TransferTransaction struct {
	ID                string          `json:"id"`
	Date              time.Time       `json:"date"`
	Amount            decimal.Decimal `json:"amount"`
	FromTransactionID string          `json:"fromTransactionId"`
	ToTransactionID   string          `json:"toTransactionId"`
	PlatformID        string          `json:"platformId"`
	CreatedAt         time.Time       `json:"createdAt,omitempty"`
}
