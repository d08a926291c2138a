package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/apperrors"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/model"
	"github.com/shopspring/decimal"
)

// HoldingRepository provides data access methods for the holding table.
// A holding is unique per (asset, portfolio) pair; the table enforces this.
type HoldingRepository struct {
	db DBTX
}

// NewHoldingRepository creates a new HoldingRepository with the provided database handle.
func NewHoldingRepository(db DBTX) *HoldingRepository {
	return &HoldingRepository{db: db}
}

const holdingColumns = `id, asset_id, portfolio_id, quantity, avg_price_per_unit, created_at, updated_at`

// Insert stores a new holding.
func (r *HoldingRepository) Insert(ctx context.Context, h *model.Holding) error {
	query := `
		INSERT INTO holding (id, asset_id, portfolio_id, quantity, avg_price_per_unit, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		h.ID, h.AssetID, h.PortfolioID, h.Quantity.String(), h.AvgPricePerUnit.String(),
		h.CreatedAt.UTC().Format(time.RFC3339), h.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert holding: %w", err)
	}
	return nil
}

// GetHolding retrieves a single holding by its ID.
func (r *HoldingRepository) GetHolding(ctx context.Context, holdingID string) (model.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holding WHERE id = ?`

	h, err := r.scanHolding(r.db.QueryRowContext(ctx, query, holdingID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Holding{}, apperrors.ErrHoldingNotFound
	}
	return h, err
}

// GetByAssetAndPortfolio retrieves the holding for an (asset, portfolio) pair.
// Returns apperrors.ErrHoldingNotFound when no holding exists yet for the pair.
func (r *HoldingRepository) GetByAssetAndPortfolio(ctx context.Context, assetID, portfolioID string) (model.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holding WHERE asset_id = ? AND portfolio_id = ?`

	h, err := r.scanHolding(r.db.QueryRowContext(ctx, query, assetID, portfolioID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Holding{}, apperrors.ErrHoldingNotFound
	}
	return h, err
}

// GetByPortfolio retrieves all holdings in a portfolio. If portfolioID is
// empty, all holdings across all portfolios are returned.
func (r *HoldingRepository) GetByPortfolio(ctx context.Context, portfolioID string) ([]model.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holding`
	var args []any
	if portfolioID != "" {
		query += ` WHERE portfolio_id = ?`
		args = append(args, portfolioID)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query holding table: %w", err)
	}
	defer rows.Close()

	holdings := []model.Holding{}
	for rows.Next() {
		h, err := r.scanHolding(rows)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holding table: %w", err)
	}
	return holdings, nil
}

// UpdatePosition rewrites the holding's quantity and average cost. This is
// the only mutation the ledger operations perform on a holding; identity
// fields never change.
func (r *HoldingRepository) UpdatePosition(ctx context.Context, holdingID string, quantity, avgPrice decimal.Decimal) error {
	query := `UPDATE holding SET quantity = ?, avg_price_per_unit = ?, updated_at = ? WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query,
		quantity.String(), avgPrice.String(), time.Now().UTC().Format(time.RFC3339), holdingID)
	if err != nil {
		return fmt.Errorf("failed to update holding position: %w", err)
	}
	return requireRowAffected(res, apperrors.ErrHoldingNotFound)
}

func (r *HoldingRepository) scanHolding(row rowScanner) (model.Holding, error) {
	var h model.Holding
	var qtyStr, avgStr string
	var createdAt, updatedAt sql.NullString

	err := row.Scan(&h.ID, &h.AssetID, &h.PortfolioID, &qtyStr, &avgStr, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Holding{}, err
		}
		return model.Holding{}, fmt.Errorf("failed to scan holding row: %w", err)
	}

	if h.Quantity, err = parseDecimal(qtyStr); err != nil {
		return model.Holding{}, err
	}
	if h.AvgPricePerUnit, err = parseDecimal(avgStr); err != nil {
		return model.Holding{}, err
	}
	if h.CreatedAt, err = parseNullTime(createdAt); err != nil {
		return model.Holding{}, err
	}
	if h.UpdatedAt, err = parseNullTime(updatedAt); err != nil {
		return model.Holding{}, err
	}
	return h, nil
}
