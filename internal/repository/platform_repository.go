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

// PlatformRepository provides data access methods for the platform table.
type PlatformRepository struct {
	db DBTX
}

// NewPlatformRepository creates a new PlatformRepository with the provided database handle.
func NewPlatformRepository(db DBTX) *PlatformRepository {
	return &PlatformRepository{db: db}
}

// Insert stores a new platform.
func (r *PlatformRepository) Insert(ctx context.Context, p *model.Platform) error {
	query := `INSERT INTO platform (id, name, created_at) VALUES (?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert platform: %w", err)
	}
	return nil
}

// GetPlatform retrieves a single platform by its ID.
func (r *PlatformRepository) GetPlatform(ctx context.Context, platformID string) (model.Platform, error) {
	query := `SELECT id, name, created_at FROM platform WHERE id = ?`

	var p model.Platform
	var createdAt sql.NullString
	err := r.db.QueryRowContext(ctx, query, platformID).Scan(&p.ID, &p.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Platform{}, apperrors.ErrPlatformNotFound
	}
	if err != nil {
		return model.Platform{}, fmt.Errorf("failed to scan platform row: %w", err)
	}
	if p.CreatedAt, err = parseNullTime(createdAt); err != nil {
		return model.Platform{}, err
	}
	return p, nil
}

// GetPlatforms retrieves all platforms ordered by name.
func (r *PlatformRepository) GetPlatforms(ctx context.Context) ([]model.Platform, error) {
	query := `SELECT id, name, created_at FROM platform ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query platform table: %w", err)
	}
	defer rows.Close()

	platforms := []model.Platform{}
	for rows.Next() {
		var p model.Platform
		var createdAt sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan platform row: %w", err)
		}
		if p.CreatedAt, err = parseNullTime(createdAt); err != nil {
			return nil, err
		}
		platforms = append(platforms, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating platform table: %w", err)
	}
	return platforms, nil
}

// GetPlatformNames returns a platformID -> name map for all platforms.
func (r *PlatformRepository) GetPlatformNames(ctx context.Context) (map[string]string, error) {
	platforms, err := r.GetPlatforms(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(platforms))
	for _, p := range platforms {
		names[p.ID] = p.Name
	}
	return names, nil
}

// Update renames a platform.
func (r *PlatformRepository) Update(ctx context.Context, p *model.Platform) error {
	res, err := r.db.ExecContext(ctx, `UPDATE platform SET name = ? WHERE id = ?`, p.Name, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update platform: %w", err)
	}
	return requireRowAffected(res, apperrors.ErrPlatformNotFound)
}

// Delete removes a platform by ID.
func (r *PlatformRepository) Delete(ctx context.Context, platformID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM platform WHERE id = ?`, platformID)
	if err != nil {
		return fmt.Errorf("failed to delete platform: %w", err)
	}
	return requireRowAffected(res, apperrors.ErrPlatformNotFound)
}
