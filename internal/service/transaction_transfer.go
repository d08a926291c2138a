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
	"github.com/shopspring/decimal"
)

// TransferInput carries the parameters for moving quantity between two
// portfolios. The asset and source portfolio are derived from the source
// holding.
type TransferInput struct {
	HoldingID              string // source holding
	DestinationPortfolioID string
	PlatformID             string
	Quantity               decimal.Decimal
	Date                   time.Time
	Currency               string
	ExchangeRate           decimal.Decimal
}

// Transfer moves quantity from the source holding to the same asset's holding
// in another portfolio, creating the destination holding if needed.
//
// The two legs are priced at the source platform's average cost at transfer
// time (basisPerUnit): the destination gains the units at that basis, the
// source sheds them pro-rata, so cost basis is conserved across the pair.
// Both legs and the transfer record are written in one SQL transaction; a
// reader can never observe half a transfer.
func (s *TransactionService) Transfer(ctx context.Context, in TransferInput) (*model.TransferTransaction, error) {
	if !in.Quantity.IsPositive() {
		return nil, apperrors.ErrInvalidQuantity
	}

	var created *model.TransferTransaction
	err := repository.Transact(ctx, s.db, func(tx *sql.Tx) error {
		holdings := repository.NewHoldingRepository(tx)
		transactions := repository.NewTransactionRepository(tx)

		source, err := holdings.GetHolding(ctx, in.HoldingID)
		if err != nil {
			return err
		}
		if source.PortfolioID == in.DestinationPortfolioID {
			return apperrors.ErrSamePortfolio
		}
		if _, err := repository.NewPortfolioRepository(tx).GetPortfolio(ctx, in.DestinationPortfolioID); err != nil {
			return err
		}
		if _, err := repository.NewPlatformRepository(tx).GetPlatform(ctx, in.PlatformID); err != nil {
			return err
		}

		legs, err := transactions.GetByAssetAndPortfolio(ctx, source.AssetID, source.PortfolioID)
		if err != nil {
			return err
		}
		available, basisPerUnit, found := platformPosition(legs, in.PlatformID)
		if !found || available.IsZero() {
			return apperrors.ErrHoldingNotFound
		}
		if available.LessThan(in.Quantity) {
			return apperrors.ErrInsufficientQuantity
		}

		now := time.Now().UTC()

		// Destination side: fold the units in at the snapshotted basis.
		destination, err := holdings.GetByAssetAndPortfolio(ctx, source.AssetID, in.DestinationPortfolioID)
		var destAvg decimal.Decimal
		switch {
		case err == nil:
			var destQty decimal.Decimal
			destQty, destAvg = applyIncoming(destination.Quantity, destination.AvgPricePerUnit, in.Quantity, basisPerUnit)
			if err := holdings.UpdatePosition(ctx, destination.ID, destQty, destAvg); err != nil {
				return err
			}
		case errors.Is(err, apperrors.ErrHoldingNotFound):
			destAvg = basisPerUnit
			destination = model.Holding{
				ID:              uuid.New().String(),
				AssetID:         source.AssetID,
				PortfolioID:     in.DestinationPortfolioID,
				Quantity:        in.Quantity,
				AvgPricePerUnit: basisPerUnit,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := holdings.Insert(ctx, &destination); err != nil {
				return err
			}
		default:
			return err
		}

		// Source side: pro-rata reduction, average unchanged.
		srcQty, srcAvg := applyOutgoing(source.Quantity, source.AvgPricePerUnit, in.Quantity)
		if err := holdings.UpdatePosition(ctx, source.ID, srcQty, srcAvg); err != nil {
			return err
		}

		transferID := uuid.New().String()
		outLeg := &model.Transaction{
			ID:               uuid.New().String(),
			PlatformID:       in.PlatformID,
			AssetID:          source.AssetID,
			PortfolioID:      source.PortfolioID,
			HoldingID:        source.ID,
			Type:             model.TransactionTypeAllocateOut,
			Quantity:         in.Quantity,
			Price:            basisPerUnit,
			CostBasisPerUnit: &basisPerUnit,
			Date:             in.Date,
			Currency:         in.Currency,
			ExchangeRate:     in.ExchangeRate,
			TransferID:       transferID,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		inLeg := &model.Transaction{
			ID:               uuid.New().String(),
			PlatformID:       in.PlatformID,
			AssetID:          source.AssetID,
			PortfolioID:      in.DestinationPortfolioID,
			HoldingID:        destination.ID,
			Type:             model.TransactionTypeAllocateIn,
			Quantity:         in.Quantity,
			Price:            basisPerUnit,
			CostBasisPerUnit: &destAvg,
			Date:             in.Date,
			Currency:         in.Currency,
			ExchangeRate:     in.ExchangeRate,
			TransferID:       transferID,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := transactions.Insert(ctx, outLeg); err != nil {
			return err
		}
		if err := transactions.Insert(ctx, inLeg); err != nil {
			return err
		}

		transfer := &model.TransferTransaction{
			ID:                transferID,
			Date:              in.Date,
			Amount:            in.Quantity,
			FromTransactionID: outLeg.ID,
			ToTransactionID:   inLeg.ID,
			PlatformID:        in.PlatformID,
			CreatedAt:         now,
		}
		if err := repository.NewTransferRepository(tx).Insert(ctx, transfer); err != nil {
			return err
		}

		created = transfer
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("transfer_id", created.ID).
		Str("holding_id", in.HoldingID).
		Str("quantity", in.Quantity.String()).
		Msg("recorded transfer")
	return created, nil
}

// GetTransfer retrieves a transfer record by its ID.
func (s *TransactionService) GetTransfer(ctx context.Context, transferID string) (model.TransferTransaction, error) {
	return repository.NewTransferRepository(s.db).GetTransfer(ctx, transferID)
}

// DeleteTransfer removes a transfer and both of its legs, reversing each
// leg's holding effect exactly once. Deleting through either leg (see
// DeleteTransaction) lands here, so a pair can never be half-deleted or
// double-reversed.
func (s *TransactionService) DeleteTransfer(ctx context.Context, transferID string) error {
	err := repository.Transact(ctx, s.db, func(tx *sql.Tx) error {
		transfers := repository.NewTransferRepository(tx)
		transfer, err := transfers.GetTransfer(ctx, transferID)
		if err != nil {
			return err
		}
		return s.deleteTransferLocked(ctx, tx, transfer)
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("transfer_id", transferID).Msg("deleted transfer")
	return nil
}

// deleteTransferLocked reverses and removes both legs plus the pair record.
// Must run inside the caller's SQL transaction.
func (s *TransactionService) deleteTransferLocked(ctx context.Context, tx *sql.Tx, transfer model.TransferTransaction) error {
	holdings := repository.NewHoldingRepository(tx)
	transactions := repository.NewTransactionRepository(tx)

	outLeg, err := transactions.GetTransaction(ctx, transfer.FromTransactionID)
	if err != nil {
		return errors.Join(apperrors.ErrDataInconsistency, err)
	}
	inLeg, err := transactions.GetTransaction(ctx, transfer.ToTransactionID)
	if err != nil {
		return errors.Join(apperrors.ErrDataInconsistency, err)
	}

	// Reverse the incoming leg: the destination sheds the units at the
	// price they came in at, restoring its pre-transfer average exactly.
	destination, err := holdings.GetHolding(ctx, inLeg.HoldingID)
	if err != nil {
		return err
	}
	destQty, destAvg := reverseIncoming(destination.Quantity, destination.AvgPricePerUnit, inLeg.Quantity, inLeg.Price)
	if err := holdings.UpdatePosition(ctx, destination.ID, destQty, destAvg); err != nil {
		return err
	}

	// Reverse the outgoing leg: the source gets the units back at the
	// snapshotted basis. The snapshot is mandatory.
	if outLeg.CostBasisPerUnit == nil {
		return apperrors.ErrMissingCostBasis
	}
	source, err := holdings.GetHolding(ctx, outLeg.HoldingID)
	if err != nil {
		return err
	}
	srcQty, srcAvg := reverseOutgoing(source.Quantity, source.AvgPricePerUnit, outLeg.Quantity, *outLeg.CostBasisPerUnit)
	if err := holdings.UpdatePosition(ctx, source.ID, srcQty, srcAvg); err != nil {
		return err
	}

	if err := repository.NewTransferRepository(tx).Delete(ctx, transfer.ID); err != nil {
		return err
	}
	if err := transactions.Delete(ctx, outLeg.ID); err != nil {
		return err
	}
	return transactions.Delete(ctx, inLeg.ID)
}
