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

// EditInput carries the mutable fields of a transaction. Nil fields are left
// unchanged. Type, asset, and currency are immutable once recorded; delete
// and re-record instead.
type EditInput struct {
	Quantity    *decimal.Decimal
	Price       *decimal.Decimal
	PlatformID  *string
	PortfolioID *string
	Date        *time.Time
}

// EditTransaction rewrites a transaction and reconciles the affected holdings
// by reversing the old entry and applying the new one, in that order, inside
// one SQL transaction. The holding therefore ends up exactly as if the
// transaction had been recorded with the new values in the first place.
//
// Editing a transfer leg edits the whole transfer: quantity, platform, and
// date propagate to both legs and the pair record, and the basis is
// re-derived from the source holding's average after reversal.
func (s *TransactionService) EditTransaction(ctx context.Context, transactionID string, in EditInput) (*model.Transaction, error) {
	if in.Quantity != nil && !in.Quantity.IsPositive() {
		return nil, apperrors.ErrInvalidQuantity
	}
	if in.Price != nil && !in.Price.IsPositive() {
		return nil, apperrors.ErrInvalidPrice
	}

	var edited *model.Transaction
	err := repository.Transact(ctx, s.db, func(tx *sql.Tx) error {
		transactions := repository.NewTransactionRepository(tx)

		transaction, err := transactions.GetTransaction(ctx, transactionID)
		if err != nil {
			return err
		}

		if transaction.TransferID != "" {
			edited, err = s.editTransferLeg(ctx, tx, transaction, in)
			return err
		}

		edited, err = s.editSingle(ctx, tx, transaction, in)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("transaction_id", transactionID).
		Str("type", string(edited.Type)).
		Msg("edited transaction")
	return edited, nil
}

// editSingle handles buys and sells. Must run inside the caller's SQL
// transaction.
func (s *TransactionService) editSingle(ctx context.Context, tx *sql.Tx, transaction model.Transaction, in EditInput) (*model.Transaction, error) {
	holdings := repository.NewHoldingRepository(tx)
	transactions := repository.NewTransactionRepository(tx)

	if err := s.reverseOnHolding(ctx, tx, transaction); err != nil {
		return nil, err
	}

	if in.Quantity != nil {
		transaction.Quantity = *in.Quantity
	}
	if in.Price != nil {
		transaction.Price = *in.Price
	}
	if in.PlatformID != nil && *in.PlatformID != transaction.PlatformID {
		if _, err := repository.NewPlatformRepository(tx).GetPlatform(ctx, *in.PlatformID); err != nil {
			return nil, err
		}
		transaction.PlatformID = *in.PlatformID
	}
	if in.Date != nil {
		transaction.Date = *in.Date
	}

	// Re-resolve the holding: a portfolio change re-homes the transaction.
	// Only a buy may create the holding it lands in; a sell moved into a
	// portfolio with no position has nothing to reduce.
	if in.PortfolioID != nil && *in.PortfolioID != transaction.PortfolioID {
		if _, err := repository.NewPortfolioRepository(tx).GetPortfolio(ctx, *in.PortfolioID); err != nil {
			return nil, err
		}
		transaction.PortfolioID = *in.PortfolioID

		target, err := holdings.GetByAssetAndPortfolio(ctx, transaction.AssetID, transaction.PortfolioID)
		switch {
		case err == nil:
			transaction.HoldingID = target.ID
		case errors.Is(err, apperrors.ErrHoldingNotFound):
			if transaction.Type != model.TransactionTypeBuy {
				return nil, apperrors.ErrDestinationHoldingNotFound
			}
			now := time.Now().UTC()
			target = model.Holding{
				ID:              uuid.New().String(),
				AssetID:         transaction.AssetID,
				PortfolioID:     transaction.PortfolioID,
				Quantity:        decimal.Zero,
				AvgPricePerUnit: decimal.Zero,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := holdings.Insert(ctx, &target); err != nil {
				return nil, err
			}
			transaction.HoldingID = target.ID
		default:
			return nil, err
		}
	}

	holding, err := holdings.GetHolding(ctx, transaction.HoldingID)
	if err != nil {
		return nil, err
	}

	switch {
	case transaction.Type.Incoming():
		newQty, newAvg := applyIncoming(holding.Quantity, holding.AvgPricePerUnit, transaction.Quantity, transaction.Price)
		if err := holdings.UpdatePosition(ctx, holding.ID, newQty, newAvg); err != nil {
			return nil, err
		}
		transaction.CostBasisPerUnit = nil
	case transaction.Type.Outgoing():
		legs, err := transactions.GetByAssetAndPortfolio(ctx, transaction.AssetID, transaction.PortfolioID)
		if err != nil {
			return nil, err
		}
		// The old row is still in the ledger here; drop it so availability
		// reflects the position as if this sell had never been recorded.
		peers := make([]model.Transaction, 0, len(legs))
		for _, l := range legs {
			if l.ID != transaction.ID {
				peers = append(peers, l)
			}
		}
		available, _, found := platformPosition(peers, transaction.PlatformID)
		if !found || available.IsZero() {
			return nil, apperrors.ErrAccountNotFound
		}
		if available.LessThan(transaction.Quantity) {
			return nil, apperrors.ErrInsufficientQuantity
		}
		// Fresh snapshot: the basis at the (possibly new) holding's
		// post-reversal average, exactly as a new sell would record it.
		basis := holding.AvgPricePerUnit
		newQty, newAvg := applyOutgoing(holding.Quantity, holding.AvgPricePerUnit, transaction.Quantity)
		if err := holdings.UpdatePosition(ctx, holding.ID, newQty, newAvg); err != nil {
			return nil, err
		}
		transaction.CostBasisPerUnit = &basis
	}

	transaction.UpdatedAt = time.Now().UTC()
	if err := transactions.Update(ctx, &transaction); err != nil {
		return nil, err
	}
	return &transaction, nil
}

// editTransferLeg rewrites a transfer through either of its legs. Both
// holdings are reversed first, then the transfer is replayed with the new
// values, so the pair stays internally consistent. Must run inside the
// caller's SQL transaction.
func (s *TransactionService) editTransferLeg(ctx context.Context, tx *sql.Tx, leg model.Transaction, in EditInput) (*model.Transaction, error) {
	if in.Price != nil {
		// Transfer legs carry a derived basis, not a market price.
		return nil, apperrors.ErrInvalidPrice
	}

	holdings := repository.NewHoldingRepository(tx)
	transactions := repository.NewTransactionRepository(tx)
	transfers := repository.NewTransferRepository(tx)

	transfer, err := transfers.GetByLeg(ctx, leg.ID)
	if err != nil {
		return nil, err
	}
	outLeg, err := transactions.GetTransaction(ctx, transfer.FromTransactionID)
	if err != nil {
		return nil, errors.Join(apperrors.ErrDataInconsistency, err)
	}
	inLeg, err := transactions.GetTransaction(ctx, transfer.ToTransactionID)
	if err != nil {
		return nil, errors.Join(apperrors.ErrDataInconsistency, err)
	}
	if outLeg.CostBasisPerUnit == nil {
		return nil, apperrors.ErrMissingCostBasis
	}

	// Undo both sides at their original values.
	destination, err := holdings.GetHolding(ctx, inLeg.HoldingID)
	if err != nil {
		return nil, err
	}
	destQty, destAvg := reverseIncoming(destination.Quantity, destination.AvgPricePerUnit, inLeg.Quantity, inLeg.Price)
	if err := holdings.UpdatePosition(ctx, destination.ID, destQty, destAvg); err != nil {
		return nil, err
	}
	source, err := holdings.GetHolding(ctx, outLeg.HoldingID)
	if err != nil {
		return nil, err
	}
	srcQty, srcAvg := reverseOutgoing(source.Quantity, source.AvgPricePerUnit, outLeg.Quantity, *outLeg.CostBasisPerUnit)
	if err := holdings.UpdatePosition(ctx, source.ID, srcQty, srcAvg); err != nil {
		return nil, err
	}
	source.Quantity, source.AvgPricePerUnit = srcQty, srcAvg
	destination.Quantity, destination.AvgPricePerUnit = destQty, destAvg

	quantity := outLeg.Quantity
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	if in.PlatformID != nil && *in.PlatformID != transfer.PlatformID {
		if _, err := repository.NewPlatformRepository(tx).GetPlatform(ctx, *in.PlatformID); err != nil {
			return nil, err
		}
		transfer.PlatformID = *in.PlatformID
	}
	if in.Date != nil {
		transfer.Date = *in.Date
	}

	// A portfolio change re-homes the edited side of the transfer. Moving
	// the destination may create its holding; moving the source cannot,
	// there must already be a position to draw from.
	if in.PortfolioID != nil {
		if _, err := repository.NewPortfolioRepository(tx).GetPortfolio(ctx, *in.PortfolioID); err != nil {
			return nil, err
		}
		switch leg.ID {
		case inLeg.ID:
			if *in.PortfolioID != inLeg.PortfolioID {
				target, err := holdings.GetByAssetAndPortfolio(ctx, inLeg.AssetID, *in.PortfolioID)
				switch {
				case err == nil:
					destination = target
				case errors.Is(err, apperrors.ErrHoldingNotFound):
					now := time.Now().UTC()
					target = model.Holding{
						ID:              uuid.New().String(),
						AssetID:         inLeg.AssetID,
						PortfolioID:     *in.PortfolioID,
						Quantity:        decimal.Zero,
						AvgPricePerUnit: decimal.Zero,
						CreatedAt:       now,
						UpdatedAt:       now,
					}
					if err := holdings.Insert(ctx, &target); err != nil {
						return nil, err
					}
					destination = target
				default:
					return nil, err
				}
				inLeg.PortfolioID = *in.PortfolioID
				inLeg.HoldingID = destination.ID
			}
		case outLeg.ID:
			if *in.PortfolioID != outLeg.PortfolioID {
				target, err := holdings.GetByAssetAndPortfolio(ctx, outLeg.AssetID, *in.PortfolioID)
				switch {
				case err == nil:
					source = target
				case errors.Is(err, apperrors.ErrHoldingNotFound):
					return nil, apperrors.ErrDestinationHoldingNotFound
				default:
					return nil, err
				}
				outLeg.PortfolioID = *in.PortfolioID
				outLeg.HoldingID = source.ID
			}
		}
	}
	if source.PortfolioID == destination.PortfolioID {
		return nil, apperrors.ErrSamePortfolio
	}
	if source.Quantity.LessThan(quantity) {
		return nil, apperrors.ErrInsufficientQuantity
	}

	// Replay with the new values. The basis comes from the source holding's
	// post-reversal average, as if the transfer were recorded fresh.
	basisPerUnit := source.AvgPricePerUnit
	newSrcQty, newSrcAvg := applyOutgoing(source.Quantity, source.AvgPricePerUnit, quantity)
	if err := holdings.UpdatePosition(ctx, source.ID, newSrcQty, newSrcAvg); err != nil {
		return nil, err
	}
	newDestQty, newDestAvg := applyIncoming(destination.Quantity, destination.AvgPricePerUnit, quantity, basisPerUnit)
	if err := holdings.UpdatePosition(ctx, destination.ID, newDestQty, newDestAvg); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	outLeg.Quantity = quantity
	outLeg.Price = basisPerUnit
	outLeg.CostBasisPerUnit = &basisPerUnit
	outLeg.PlatformID = transfer.PlatformID
	outLeg.Date = transfer.Date
	outLeg.UpdatedAt = now

	inLeg.Quantity = quantity
	inLeg.Price = basisPerUnit
	inLeg.CostBasisPerUnit = &newDestAvg
	inLeg.PlatformID = transfer.PlatformID
	inLeg.Date = transfer.Date
	inLeg.UpdatedAt = now

	if err := transactions.Update(ctx, &outLeg); err != nil {
		return nil, err
	}
	if err := transactions.Update(ctx, &inLeg); err != nil {
		return nil, err
	}

	transfer.Amount = quantity
	if err := transfers.Update(ctx, &transfer); err != nil {
		return nil, err
	}

	if leg.ID == outLeg.ID {
		return &outLeg, nil
	}
	return &inLeg, nil
}
