package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/apperrors"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/model"
)

// TransferRepository provides data access methods for the transfer_transaction
// table, which pairs the allocate-out and allocate-in legs of a transfer.
type TransferRepository struct {
	db DBTX
}

// NewTransferRepository creates a new TransferRepository with the provided database handle.
func NewTransferRepository(db DBTX) *TransferRepository {
	return &TransferRepository{db: db}
}

const transferColumns = `id, date, amount, from_transaction_id, to_transaction_id, platform_id, created_at`

// Insert stores a new transfer pair record.
func (r *TransferRepository) Insert(ctx context.Context, t *model.TransferTransaction) error {
	query := `
		INSERT INTO transfer_transaction (id, date, amount, from_transaction_id, to_transaction_id, platform_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.Date.UTC().Format("2006-01-02"), t.Amount.String(),
		t.FromTransactionID, t.ToTransactionID, t.PlatformID,
		t.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transfer: %w", err)
	}
	return nil
}

// GetTransfer retrieves a transfer record by its ID.
func (r *TransferRepository) GetTransfer(ctx context.Context, transferID string) (model.TransferTransaction, error) {
	query := `SELECT ` + transferColumns + ` FROM transfer_transaction WHERE id = ?`

	t, err := r.scanTransfer(r.db.QueryRowContext(ctx, query, transferID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.TransferTransaction{}, apperrors.ErrTransferNotFound
	}
	return t, err
}

// GetByLeg retrieves the transfer record that references the given
// transaction as either of its legs.
func (r *TransferRepository) GetByLeg(ctx context.Context, transactionID string) (model.TransferTransaction, error) {
	query := `SELECT ` + transferColumns + ` FROM transfer_transaction
		WHERE from_transaction_id = ? OR to_transaction_id = ?`

	t, err := r.scanTransfer(r.db.QueryRowContext(ctx, query, transactionID, transactionID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.TransferTransaction{}, apperrors.ErrTransferNotFound
	}
	return t, err
}

// Update rewrites the transfer's shared fields (date, amount, platform).
func (r *TransferRepository) Update(ctx context.Context, t *model.TransferTransaction) error {
	query := `UPDATE transfer_transaction SET date = ?, amount = ?, platform_id = ? WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query,
		t.Date.UTC().Format("2006-01-02"), t.Amount.String(), t.PlatformID, t.ID)
	if err != nil {
		return fmt.Errorf("failed to update transfer: %w", err)
	}
	return requireRowAffected(res, apperrors.ErrTransferNotFound)
}

// Delete removes the transfer record. The caller is responsible for removing
// both legs in the same SQL transaction.
func (r *TransferRepository) Delete(ctx context.Context, transferID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transfer_transaction WHERE id = ?`, transferID)
	if err != nil {
		return fmt.Errorf("failed to delete transfer: %w", err)
	}
	return requireRowAffected(res, apperrors.ErrTransferNotFound)
}

func (r *TransferRepository) scanTransfer(row rowScanner) (model.TransferTransaction, error) {
	var t model.TransferTransaction
	var dateStr, amountStr string
	var createdAt sql.NullString

	err := row.Scan(&t.ID, &dateStr, &amountStr, &t.FromTransactionID, &t.ToTransactionID, &t.PlatformID, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.TransferTransaction{}, err
		}
		return model.TransferTransaction{}, fmt.Errorf("failed to scan transfer row: %w", err)
	}

	if t.Date, err = ParseTime(dateStr); err != nil {
		return model.TransferTransaction{}, err
	}
	if t.Amount, err = parseDecimal(amountStr); err != nil {
		return model.TransferTransaction{}, err
	}
	if t.CreatedAt, err = parseNullTime(createdAt); err != nil {
		return model.TransferTransaction{}, err
	}
	return t, nil
}
