package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/apperrors"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/model"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// TransactionService orchestrates the ledger mutations: buy, sell, transfer,
// edit, and delete. Every operation runs inside a single SQL transaction so a
// holding's (quantity, average cost) can never drift out of step with its
// transaction log, even when an operation fails halfway.
type TransactionService struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewTransactionService creates a new TransactionService over the given database.
func NewTransactionService(db *sql.DB, log zerolog.Logger) *TransactionService {
	return &TransactionService{
		db:  db,
		log: log.With().Str("service", "transaction").Logger(),
	}
}

// GetTransaction retrieves a single transaction by its ID.
func (s *TransactionService) GetTransaction(ctx context.Context, transactionID string) (model.Transaction, error) {
	return repository.NewTransactionRepository(s.db).GetTransaction(ctx, transactionID)
}

// GetTransactionsPerPortfolio retrieves all transactions for a portfolio, or
// every transaction when portfolioID is empty, sorted by date ascending.
func (s *TransactionService) GetTransactionsPerPortfolio(ctx context.Context, portfolioID string) ([]model.Transaction, error) {
	return repository.NewTransactionRepository(s.db).GetByPortfolio(ctx, portfolioID)
}

// BuyInput carries the parameters for recording a buy.
type BuyInput struct {
	PlatformID   string
	AssetID      string
	PortfolioID  string
	Quantity     decimal.Decimal
	Price        decimal.Decimal
	Date         time.Time
	Currency     string
	ExchangeRate decimal.Decimal
}

// RecordBuy appends a buy to the ledger and folds it into the holding for
// the (asset, portfolio) pair, creating the holding on first purchase.
// No cost basis snapshot is recorded: it is only meaningful on outgoing legs.
func (s *TransactionService) RecordBuy(ctx context.Context, in BuyInput) (*model.Transaction, error) {
	if !in.Quantity.IsPositive() || !in.Price.IsPositive() {
		return nil, apperrors.ErrInsufficientQuantity
	}

	var created *model.Transaction
	err := repository.Transact(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.checkReferences(ctx, tx, in.PlatformID, in.AssetID, in.PortfolioID); err != nil {
			return err
		}

		holdings := repository.NewHoldingRepository(tx)
		now := time.Now().UTC()

		holding, err := holdings.GetByAssetAndPortfolio(ctx, in.AssetID, in.PortfolioID)
		switch {
		case err == nil:
			newQty, newAvg := applyIncoming(holding.Quantity, holding.AvgPricePerUnit, in.Quantity, in.Price)
			if err := holdings.UpdatePosition(ctx, holding.ID, newQty, newAvg); err != nil {
				return err
			}
		case errors.Is(err, apperrors.ErrHoldingNotFound):
			holding = model.Holding{
				ID:              uuid.New().String(),
				AssetID:         in.AssetID,
				PortfolioID:     in.PortfolioID,
				Quantity:        in.Quantity,
				AvgPricePerUnit: in.Price,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := holdings.Insert(ctx, &holding); err != nil {
				return err
			}
		default:
			return err
		}

		transaction := &model.Transaction{
			ID:           uuid.New().String(),
			PlatformID:   in.PlatformID,
			AssetID:      in.AssetID,
			PortfolioID:  in.PortfolioID,
			HoldingID:    holding.ID,
			Type:         model.TransactionTypeBuy,
			Quantity:     in.Quantity,
			Price:        in.Price,
			Date:         in.Date,
			Currency:     in.Currency,
			ExchangeRate: in.ExchangeRate,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := repository.NewTransactionRepository(tx).Insert(ctx, transaction); err != nil {
			return err
		}

		created = transaction
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("transaction_id", created.ID).
		Str("asset_id", in.AssetID).
		Str("quantity", in.Quantity.String()).
		Msg("recorded buy")
	return created, nil
}

// SellInput carries the parameters for recording a sell.
type SellInput struct {
	PlatformID   string
	HoldingID    string
	Quantity     decimal.Decimal
	Price        decimal.Decimal
	Date         time.Time
	Currency     string
	ExchangeRate decimal.Decimal
}

// RecordSell appends a sell to the ledger and reduces the holding pro-rata.
// The requested quantity must be available on the specific platform, not just
// in the holding as a whole. The holding's average cost at the moment of sale
// is snapshotted onto the transaction; later reversal depends on it.
func (s *TransactionService) RecordSell(ctx context.Context, in SellInput) (*model.Transaction, error) {
	if !in.Quantity.IsPositive() || !in.Price.IsPositive() {
		return nil, apperrors.ErrInsufficientQuantity
	}

	var created *model.Transaction
	err := repository.Transact(ctx, s.db, func(tx *sql.Tx) error {
		holdings := repository.NewHoldingRepository(tx)
		transactions := repository.NewTransactionRepository(tx)

		holding, err := holdings.GetHolding(ctx, in.HoldingID)
		if err != nil {
			return err
		}

		legs, err := transactions.GetByAssetAndPortfolio(ctx, holding.AssetID, holding.PortfolioID)
		if err != nil {
			return err
		}
		available, _, found := platformPosition(legs, in.PlatformID)
		if !found || available.IsZero() {
			return apperrors.ErrAccountNotFound
		}
		if available.LessThan(in.Quantity) {
			return apperrors.ErrInsufficientQuantity
		}

		// Average cost is unchanged by a sell; quantity and cost basis
		// shrink proportionally.
		basis := holding.AvgPricePerUnit
		newQty, newAvg := applyOutgoing(holding.Quantity, holding.AvgPricePerUnit, in.Quantity)
		if err := holdings.UpdatePosition(ctx, holding.ID, newQty, newAvg); err != nil {
			return err
		}

		now := time.Now().UTC()
		transaction := &model.Transaction{
			ID:               uuid.New().String(),
			PlatformID:       in.PlatformID,
			AssetID:          holding.AssetID,
			PortfolioID:      holding.PortfolioID,
			HoldingID:        holding.ID,
			Type:             model.TransactionTypeSell,
			Quantity:         in.Quantity,
			Price:            in.Price,
			CostBasisPerUnit: &basis,
			Date:             in.Date,
			Currency:         in.Currency,
			ExchangeRate:     in.ExchangeRate,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := transactions.Insert(ctx, transaction); err != nil {
			return err
		}

		created = transaction
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("transaction_id", created.ID).
		Str("holding_id", in.HoldingID).
		Str("quantity", in.Quantity.String()).
		Msg("recorded sell")
	return created, nil
}

// checkReferences verifies that the platform, asset, and portfolio a new
// transaction points at all exist, so callers get a not-found error instead
// of a foreign key violation.
func (s *TransactionService) checkReferences(ctx context.Context, tx *sql.Tx, platformID, assetID, portfolioID string) error {
	if _, err := repository.NewPlatformRepository(tx).GetPlatform(ctx, platformID); err != nil {
		return err
	}
	if _, err := repository.NewAssetRepository(tx).GetAsset(ctx, assetID); err != nil {
		return err
	}
	if _, err := repository.NewPortfolioRepository(tx).GetPortfolio(ctx, portfolioID); err != nil {
		return err
	}
	return nil
}
