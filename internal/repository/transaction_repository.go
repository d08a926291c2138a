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

// TransactionRepository provides data access methods for the transaction table.
type TransactionRepository struct {
	db DBTX
}

// NewTransactionRepository creates a new TransactionRepository with the provided database handle.
func NewTransactionRepository(db DBTX) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, platform_id, asset_id, portfolio_id, holding_id, type, quantity, price,
		cost_basis_per_unit, date, currency, exchange_rate, transfer_id, created_at, updated_at`

// Insert appends a new ledger entry.
func (r *TransactionRepository) Insert(ctx context.Context, t *model.Transaction) error {
	query := `
		INSERT INTO "transaction" (id, platform_id, asset_id, portfolio_id, holding_id, type, quantity, price,
			cost_basis_per_unit, date, currency, exchange_rate, transfer_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.PlatformID, t.AssetID, t.PortfolioID, t.HoldingID, string(t.Type),
		t.Quantity.String(), t.Price.String(), nullDecimalArg(t.CostBasisPerUnit),
		t.Date.UTC().Format("2006-01-02"), t.Currency, t.ExchangeRate.String(),
		nullStringArg(t.TransferID),
		t.CreatedAt.UTC().Format(time.RFC3339), t.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// GetTransaction retrieves a single transaction by its ID.
func (r *TransactionRepository) GetTransaction(ctx context.Context, transactionID string) (model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM "transaction" WHERE id = ?`

	t, err := r.scanTransaction(r.db.QueryRowContext(ctx, query, transactionID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	return t, err
}

// GetByHolding retrieves every ledger entry referencing the holding, sorted
// by date ascending. Date-order replay depends on this ordering.
func (r *TransactionRepository) GetByHolding(ctx context.Context, holdingID string) ([]model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM "transaction"
		WHERE holding_id = ?
		ORDER BY date ASC, created_at ASC`
	return r.queryTransactions(ctx, query, holdingID)
}

// GetByAssetAndPortfolio retrieves all legs for an (asset, portfolio) pair
// across every platform, sorted by date ascending.
func (r *TransactionRepository) GetByAssetAndPortfolio(ctx context.Context, assetID, portfolioID string) ([]model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM "transaction"
		WHERE asset_id = ? AND portfolio_id = ?
		ORDER BY date ASC, created_at ASC`
	return r.queryTransactions(ctx, query, assetID, portfolioID)
}

// GetByPortfolio retrieves all transactions for a portfolio, or every
// transaction when portfolioID is empty, sorted by date ascending.
func (r *TransactionRepository) GetByPortfolio(ctx context.Context, portfolioID string) ([]model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM "transaction"`
	var args []any
	if portfolioID != "" {
		query += ` WHERE portfolio_id = ?`
		args = append(args, portfolioID)
	}
	query += ` ORDER BY date ASC, created_at ASC`
	return r.queryTransactions(ctx, query, args...)
}

// Update rewrites a transaction's mutable fields. Identity and asset
// references never change; portfolio/holding references change only through
// the edit path, which also moves the holding effect.
func (r *TransactionRepository) Update(ctx context.Context, t *model.Transaction) error {
	query := `
		UPDATE "transaction"
		SET platform_id = ?, portfolio_id = ?, holding_id = ?, type = ?, quantity = ?, price = ?,
			cost_basis_per_unit = ?, date = ?, currency = ?, exchange_rate = ?, transfer_id = ?, updated_at = ?
		WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, query,
		t.PlatformID, t.PortfolioID, t.HoldingID, string(t.Type),
		t.Quantity.String(), t.Price.String(), nullDecimalArg(t.CostBasisPerUnit),
		t.Date.UTC().Format("2006-01-02"), t.Currency, t.ExchangeRate.String(),
		nullStringArg(t.TransferID), time.Now().UTC().Format(time.RFC3339), t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return requireRowAffected(res, apperrors.ErrTransactionNotFound)
}

// Delete removes a single ledger entry. Transfer legs must be removed through
// the transfer cascade in the transaction service, never directly.
func (r *TransactionRepository) Delete(ctx context.Context, transactionID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM "transaction" WHERE id = ?`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return requireRowAffected(res, apperrors.ErrTransactionNotFound)
}

func (r *TransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]model.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		t, err := r.scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}
	return transactions, nil
}

func (r *TransactionRepository) scanTransaction(row rowScanner) (model.Transaction, error) {
	var t model.Transaction
	var txType, qtyStr, priceStr, rateStr, dateStr string
	var costBasis, transferID, createdAt, updatedAt sql.NullString

	err := row.Scan(
		&t.ID, &t.PlatformID, &t.AssetID, &t.PortfolioID, &t.HoldingID, &txType,
		&qtyStr, &priceStr, &costBasis, &dateStr, &t.Currency, &rateStr,
		&transferID, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Transaction{}, err
		}
		return model.Transaction{}, fmt.Errorf("failed to scan transaction row: %w", err)
	}

	t.Type = model.TransactionType(txType)
	if t.Quantity, err = parseDecimal(qtyStr); err != nil {
		return model.Transaction{}, err
	}
	if t.Price, err = parseDecimal(priceStr); err != nil {
		return model.Transaction{}, err
	}
	if t.CostBasisPerUnit, err = parseNullDecimal(costBasis); err != nil {
		return model.Transaction{}, err
	}
	if t.ExchangeRate, err = parseDecimal(rateStr); err != nil {
		return model.Transaction{}, err
	}
	if t.Date, err = ParseTime(dateStr); err != nil {
		return model.Transaction{}, err
	}
	if transferID.Valid {
		t.TransferID = transferID.String
	}
	if t.CreatedAt, err = parseNullTime(createdAt); err != nil {
		return model.Transaction{}, err
	}
	if t.UpdatedAt, err = parseNullTime(updatedAt); err != nil {
		return model.Transaction{}, err
	}
	return t, nil
}
