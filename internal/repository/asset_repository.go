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

// AssetRepository provides data access methods for the asset table.
type AssetRepository struct {
	db DBTX
}

// NewAssetRepository creates a new AssetRepository with the provided database handle.
func NewAssetRepository(db DBTX) *AssetRepository {
	return &AssetRepository{db: db}
}

const assetColumns = `id, symbol, name, type, currency, country, last_price, price_updated_at, created_at, updated_at`

// Insert stores a new asset.
func (r *AssetRepository) Insert(ctx context.Context, a *model.Asset) error {
	query := `
		INSERT INTO asset (id, symbol, name, type, currency, country, last_price, price_updated_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Symbol, a.Name, string(a.Type), a.Currency, a.Country,
		a.LastPrice.String(), a.PriceUpdatedAt.UTC().Format(time.RFC3339),
		a.CreatedAt.UTC().Format(time.RFC3339), a.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}
	return nil
}

// GetAsset retrieves a single asset by its ID.
func (r *AssetRepository) GetAsset(ctx context.Context, assetID string) (model.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM asset WHERE id = ?`

	a, err := r.scanAsset(r.db.QueryRowContext(ctx, query, assetID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	return a, err
}

// GetAssets retrieves all registered assets ordered by symbol.
func (r *AssetRepository) GetAssets(ctx context.Context) ([]model.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM asset ORDER BY symbol ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset table: %w", err)
	}
	defer rows.Close()

	assets := []model.Asset{}
	for rows.Next() {
		a, err := r.scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset table: %w", err)
	}
	return assets, nil
}

// GetAssetsByIDs retrieves the assets for the given IDs, keyed by ID.
func (r *AssetRepository) GetAssetsByIDs(ctx context.Context, ids []string) (map[string]model.Asset, error) {
	result := make(map[string]model.Asset, len(ids))
	for _, id := range ids {
		if _, ok := result[id]; ok {
			continue
		}
		a, err := r.GetAsset(ctx, id)
		if err != nil {
			return nil, err
		}
		result[id] = a
	}
	return result, nil
}

// Update rewrites the asset's mutable reference fields.
func (r *AssetRepository) Update(ctx context.Context, a *model.Asset) error {
	query := `
		UPDATE asset
		SET symbol = ?, name = ?, type = ?, currency = ?, country = ?, updated_at = ?
		WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, query,
		a.Symbol, a.Name, string(a.Type), a.Currency, a.Country,
		time.Now().UTC().Format(time.RFC3339), a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}
	return requireRowAffected(res, apperrors.ErrAssetNotFound)
}

// UpdatePrice stores a new last price and its as-of timestamp.
// Prices come from the external feed; nothing else in the row changes.
func (r *AssetRepository) UpdatePrice(ctx context.Context, assetID string, price decimal.Decimal, asOf time.Time) error {
	query := `UPDATE asset SET last_price = ?, price_updated_at = ? WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query, price.String(), asOf.UTC().Format(time.RFC3339), assetID)
	if err != nil {
		return fmt.Errorf("failed to update asset price: %w", err)
	}
	return requireRowAffected(res, apperrors.ErrAssetNotFound)
}

// Delete removes an asset by ID.
func (r *AssetRepository) Delete(ctx context.Context, assetID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM asset WHERE id = ?`, assetID)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return requireRowAffected(res, apperrors.ErrAssetNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *AssetRepository) scanAsset(row rowScanner) (model.Asset, error) {
	var a model.Asset
	var assetType, priceStr string
	var priceUpdatedAt, createdAt, updatedAt sql.NullString

	err := row.Scan(
		&a.ID, &a.Symbol, &a.Name, &assetType, &a.Currency, &a.Country,
		&priceStr, &priceUpdatedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Asset{}, err
		}
		return model.Asset{}, fmt.Errorf("failed to scan asset row: %w", err)
	}

	a.Type = model.AssetType(assetType)
	if a.LastPrice, err = parseDecimal(priceStr); err != nil {
		return model.Asset{}, err
	}
	if a.PriceUpdatedAt, err = parseNullTime(priceUpdatedAt); err != nil {
		return model.Asset{}, err
	}
	if a.CreatedAt, err = parseNullTime(createdAt); err != nil {
		return model.Asset{}, err
	}
	if a.UpdatedAt, err = parseNullTime(updatedAt); err != nil {
		return model.Asset{}, err
	}
	return a, nil
}

// parseNullTime parses a nullable datetime column, returning the zero time for NULL.
func parseNullTime(ns sql.NullString) (time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return time.Time{}, nil
	}
	t, err := ParseTime(ns.String)
	if err != nil {
		// SQLite's CURRENT_TIMESTAMP default uses a space separator.
		t, err = time.Parse("2006-01-02 15:04:05", ns.String)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse timestamp: %w", err)
		}
	}
	return t.UTC(), nil
}

// requireRowAffected converts a zero-row update/delete into notFoundErr.
func requireRowAffected(res sql.Result, notFoundErr error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return notFoundErr
	}
	return nil
}
