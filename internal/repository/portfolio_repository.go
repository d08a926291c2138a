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

// PortfolioRepository provides data access methods for the portfolio table.
type PortfolioRepository struct {
	db DBTX
}

// NewPortfolioRepository creates a new PortfolioRepository with the provided database handle.
func NewPortfolioRepository(db DBTX) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

const portfolioColumns = `id, name, target_amount, target_date, is_active, created_at, updated_at`

// Insert stores a new portfolio.
func (r *PortfolioRepository) Insert(ctx context.Context, p *model.Portfolio) error {
	query := `
		INSERT INTO portfolio (id, name, target_amount, target_date, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.TargetAmount.String(), p.TargetDate.UTC().Format("2006-01-02"),
		p.IsActive, p.CreatedAt.UTC().Format(time.RFC3339), p.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert portfolio: %w", err)
	}
	return nil
}

// GetPortfolio retrieves a single portfolio by its ID.
func (r *PortfolioRepository) GetPortfolio(ctx context.Context, portfolioID string) (model.Portfolio, error) {
	query := `SELECT ` + portfolioColumns + ` FROM portfolio WHERE id = ?`

	p, err := r.scanPortfolio(r.db.QueryRowContext(ctx, query, portfolioID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	return p, err
}

// GetPortfolios retrieves portfolios matching the filter, ordered by name.
func (r *PortfolioRepository) GetPortfolios(ctx context.Context, filter model.PortfolioFilter) ([]model.Portfolio, error) {
	query := `SELECT ` + portfolioColumns + ` FROM portfolio`
	if !filter.IncludeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio table: %w", err)
	}
	defer rows.Close()

	portfolios := []model.Portfolio{}
	for rows.Next() {
		p, err := r.scanPortfolio(rows)
		if err != nil {
			return nil, err
		}
		portfolios = append(portfolios, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio table: %w", err)
	}
	return portfolios, nil
}

// Update rewrites a portfolio's mutable fields.
func (r *PortfolioRepository) Update(ctx context.Context, p *model.Portfolio) error {
	query := `
		UPDATE portfolio
		SET name = ?, target_amount = ?, target_date = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, query,
		p.Name, p.TargetAmount.String(), p.TargetDate.UTC().Format("2006-01-02"),
		p.IsActive, time.Now().UTC().Format(time.RFC3339), p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update portfolio: %w", err)
	}
	return requireRowAffected(res, apperrors.ErrPortfolioNotFound)
}

// Delete removes a portfolio. Holdings and transactions belonging to the
// portfolio are removed by the schema's ON DELETE CASCADE rules.
func (r *PortfolioRepository) Delete(ctx context.Context, portfolioID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM portfolio WHERE id = ?`, portfolioID)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}
	return requireRowAffected(res, apperrors.ErrPortfolioNotFound)
}

func (r *PortfolioRepository) scanPortfolio(row rowScanner) (model.Portfolio, error) {
	var p model.Portfolio
	var targetAmountStr string
	var targetDate, createdAt, updatedAt sql.NullString

	err := row.Scan(&p.ID, &p.Name, &targetAmountStr, &targetDate, &p.IsActive, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Portfolio{}, err
		}
		return model.Portfolio{}, fmt.Errorf("failed to scan portfolio row: %w", err)
	}

	if p.TargetAmount, err = parseDecimal(targetAmountStr); err != nil {
		return model.Portfolio{}, err
	}
	if p.TargetDate, err = parseNullTime(targetDate); err != nil {
		return model.Portfolio{}, err
	}
	if p.CreatedAt, err = parseNullTime(createdAt); err != nil {
		return model.Portfolio{}, err
	}
	if p.UpdatedAt, err = parseNullTime(updatedAt); err != nil {
		return model.Portfolio{}, err
	}
	return p, nil
}
