package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateRepository stores exchange rates fetched from the external feed.
// The ledger only stamps a rate onto each transaction leg; no conversion
// math happens on stored aggregates.
type RateRepository struct {
	db DBTX
}

// NewRateRepository creates a new RateRepository with the provided database handle.
func NewRateRepository(db DBTX) *RateRepository {
	return &RateRepository{db: db}
}

// Upsert stores the rate for a currency pair and date, replacing any
// previously stored value for the same key.
func (r *RateRepository) Upsert(ctx context.Context, from, to string, rate decimal.Decimal, date time.Time) error {
	query := `
		INSERT INTO exchange_rate (id, from_currency, to_currency, rate, date)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(from_currency, to_currency, date) DO UPDATE SET rate = excluded.rate
	`
	_, err := r.db.ExecContext(ctx, query,
		uuid.New().String(), from, to, rate.String(), date.UTC().Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("failed to upsert exchange rate: %w", err)
	}
	return nil
}

// GetLatest returns the most recently dated rate for a currency pair.
// Returns (1, true) for identical currencies and (0, false) when no rate
// has been stored yet.
func (r *RateRepository) GetLatest(ctx context.Context, from, to string) (decimal.Decimal, bool, error) {
	if from == to {
		return decimal.NewFromInt(1), true, nil
	}

	query := `
		SELECT rate FROM exchange_rate
		WHERE from_currency = ? AND to_currency = ?
		ORDER BY date DESC
		LIMIT 1
	`
	var rateStr string
	err := r.db.QueryRowContext(ctx, query, from, to).Scan(&rateStr)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to query exchange rate: %w", err)
	}

	rate, err := parseDecimal(rateStr)
	if err != nil {
		return decimal.Zero, false, err
	}
	return rate, true, nil
}

// History returns all stored rates for a currency pair, newest first.
func (r *RateRepository) History(ctx context.Context, from, to string) ([]model.ExchangeRate, error) {
	query := `
		SELECT id, from_currency, to_currency, rate, date FROM exchange_rate
		WHERE from_currency = ? AND to_currency = ?
		ORDER BY date DESC
	`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rate table: %w", err)
	}
	defer rows.Close()

	rates := []model.ExchangeRate{}
	for rows.Next() {
		var er model.ExchangeRate
		var rateStr, dateStr string
		if err := rows.Scan(&er.ID, &er.FromCurrency, &er.ToCurrency, &rateStr, &dateStr); err != nil {
			return nil, fmt.Errorf("failed to scan exchange rate row: %w", err)
		}
		if er.Rate, err = parseDecimal(rateStr); err != nil {
			return nil, err
		}
		if er.Date, err = ParseTime(dateStr); err != nil {
			return nil, err
		}
		rates = append(rates, er)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange rate table: %w", err)
	}
	return rates, nil
}
