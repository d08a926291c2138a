package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/apperrors"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/model"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// PositionService derives consolidated and per-platform positions by
// replaying the ledger. Positions are computed on demand from a consistent
// snapshot and never persisted; this is a pure read path with no side
// effects.
type PositionService struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewPositionService creates a new PositionService over the given database.
func NewPositionService(db *sql.DB, log zerolog.Logger) *PositionService {
	return &PositionService{
		db:  db,
		log: log.With().Str("service", "position").Logger(),
	}
}

// GetHoldingPosition computes the consolidated position for one holding plus
// its per-platform breakdown.
//
// A missing holding degrades to an empty position rather than an error: the
// caller treats "no data" as a valid state for a brand-new holding. Any other
// load failure is surfaced.
func (s *PositionService) GetHoldingPosition(ctx context.Context, holdingID string) (model.HoldingPosition, error) {
	holdings := repository.NewHoldingRepository(s.db)

	holding, err := holdings.GetHolding(ctx, holdingID)
	if errors.Is(err, apperrors.ErrHoldingNotFound) {
		s.log.Debug().Str("holding_id", holdingID).Msg("holding not found, returning empty position")
		return model.HoldingPosition{}, nil
	}
	if err != nil {
		return model.HoldingPosition{}, err
	}

	return s.positionForHolding(ctx, holding)
}

// GetPortfolioPositions computes positions for every holding in a portfolio,
// or across all portfolios when portfolioID is empty.
func (s *PositionService) GetPortfolioPositions(ctx context.Context, portfolioID string) ([]model.HoldingPosition, error) {
	holdings, err := repository.NewHoldingRepository(s.db).GetByPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	positions := []model.HoldingPosition{}
	for _, h := range holdings {
		p, err := s.positionForHolding(ctx, h)
		if err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, nil
}

func (s *PositionService) positionForHolding(ctx context.Context, holding model.Holding) (model.HoldingPosition, error) {
	asset, err := repository.NewAssetRepository(s.db).GetAsset(ctx, holding.AssetID)
	if err != nil {
		return model.HoldingPosition{}, err
	}

	// All legs for the (asset, portfolio) pair across every platform.
	transactions, err := repository.NewTransactionRepository(s.db).
		GetByAssetAndPortfolio(ctx, holding.AssetID, holding.PortfolioID)
	if err != nil {
		return model.HoldingPosition{}, err
	}

	platformNames, err := repository.NewPlatformRepository(s.db).GetPlatformNames(ctx)
	if err != nil {
		return model.HoldingPosition{}, err
	}

	accounts := replayAccounts(asset, transactions, platformNames)
	for i, a := range accounts {
		accounts[i] = roundAccountForDisplay(a)
	}

	multiplier := asset.Type.Multiplier()
	marketValue := holding.Quantity.Mul(asset.LastPrice).Mul(multiplier)
	costBasis := holding.Quantity.Mul(holding.AvgPricePerUnit).Mul(multiplier)
	pnl := marketValue.Sub(costBasis)
	pct := decimal.Zero
	if !costBasis.IsZero() {
		pct = pnl.Div(costBasis).Mul(hundred)
	}

	return model.HoldingPosition{
		HoldingID:        holding.ID,
		AssetID:          asset.ID,
		Symbol:           asset.Symbol,
		AssetName:        asset.Name,
		AssetType:        asset.Type,
		UnitLabel:        asset.Type.UnitLabel(),
		PortfolioID:      holding.PortfolioID,
		Quantity:         holding.Quantity,
		AvgPrice:         holding.AvgPricePerUnit,
		LastPrice:        asset.LastPrice,
		MarketValue:      marketValue.Round(0),
		CostBasis:        costBasis.Round(0),
		UnrealizedPnL:    pnl.Round(0),
		UnrealizedPnLPct: pct,
		Accounts:         accounts,
	}, nil
}
