package service

import (
	"context"
	"database/sql"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/apperrors"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/model"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/repository"
)

// DeleteTransaction removes a transaction and reverses its effect on the
// holding.
//
// Buys are reversed at their recorded price; sells and allocate-outs are
// reversed at the cost basis snapshotted when they were recorded, never at
// market price. A transfer leg cannot be deleted alone: deleting either leg
// cascades to the whole pair so the two holdings stay consistent.
func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	err := repository.Transact(ctx, s.db, func(tx *sql.Tx) error {
		transactions := repository.NewTransactionRepository(tx)

		transaction, err := transactions.GetTransaction(ctx, transactionID)
		if err != nil {
			return err
		}

		if transaction.TransferID != "" {
			transfer, err := repository.NewTransferRepository(tx).GetByLeg(ctx, transaction.ID)
			if err != nil {
				return err
			}
			return s.deleteTransferLocked(ctx, tx, transfer)
		}

		if err := s.reverseOnHolding(ctx, tx, transaction); err != nil {
			return err
		}
		return transactions.Delete(ctx, transaction.ID)
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("transaction_id", transactionID).Msg("deleted transaction")
	return nil
}

// reverseOnHolding undoes one transaction's effect on its holding. Must run
// inside the caller's SQL transaction.
func (s *TransactionService) reverseOnHolding(ctx context.Context, tx *sql.Tx, transaction model.Transaction) error {
	holdings := repository.NewHoldingRepository(tx)

	holding, err := holdings.GetHolding(ctx, transaction.HoldingID)
	if err != nil {
		return err
	}

	switch {
	case transaction.Type.Incoming():
		newQty, newAvg := reverseIncoming(holding.Quantity, holding.AvgPricePerUnit, transaction.Quantity, transaction.Price)
		return holdings.UpdatePosition(ctx, holding.ID, newQty, newAvg)
	case transaction.Type.Outgoing():
		if transaction.CostBasisPerUnit == nil {
			return apperrors.ErrMissingCostBasis
		}
		newQty, newAvg := reverseOutgoing(holding.Quantity, holding.AvgPricePerUnit, transaction.Quantity, *transaction.CostBasisPerUnit)
		return holdings.UpdatePosition(ctx, holding.ID, newQty, newAvg)
	}
	return apperrors.ErrDataInconsistency
}
