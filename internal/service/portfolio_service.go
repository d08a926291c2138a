package service

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/model"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// PortfolioService manages savings-goal portfolios and their aggregate
// reporting views.
type PortfolioService struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewPortfolioService creates a new PortfolioService over the given database.
func NewPortfolioService(db *sql.DB, log zerolog.Logger) *PortfolioService {
	return &PortfolioService{
		db:  db,
		log: log.With().Str("service", "portfolio").Logger(),
	}
}

// PortfolioInput carries the user-settable portfolio fields.
type PortfolioInput struct {
	Name         string
	TargetAmount decimal.Decimal
	TargetDate   time.Time
	IsActive     bool
}

// CreatePortfolio stores a new portfolio.
func (s *PortfolioService) CreatePortfolio(ctx context.Context, in PortfolioInput) (*model.Portfolio, error) {
	now := time.Now().UTC()
	portfolio := &model.Portfolio{
		ID:           uuid.New().String(),
		Name:         in.Name,
		TargetAmount: in.TargetAmount,
		TargetDate:   in.TargetDate,
		IsActive:     in.IsActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repository.NewPortfolioRepository(s.db).Insert(ctx, portfolio); err != nil {
		return nil, err
	}

	s.log.Info().Str("portfolio_id", portfolio.ID).Str("name", portfolio.Name).Msg("created portfolio")
	return portfolio, nil
}

// GetPortfolio retrieves a single portfolio by its ID.
func (s *PortfolioService) GetPortfolio(ctx context.Context, portfolioID string) (model.Portfolio, error) {
	return repository.NewPortfolioRepository(s.db).GetPortfolio(ctx, portfolioID)
}

// GetPortfolios lists portfolios, filtered to active ones unless the filter
// asks for inactive too.
func (s *PortfolioService) GetPortfolios(ctx context.Context, filter model.PortfolioFilter) ([]model.Portfolio, error) {
	return repository.NewPortfolioRepository(s.db).GetPortfolios(ctx, filter)
}

// UpdatePortfolio rewrites the portfolio's user-settable fields.
func (s *PortfolioService) UpdatePortfolio(ctx context.Context, portfolioID string, in PortfolioInput) (*model.Portfolio, error) {
	repo := repository.NewPortfolioRepository(s.db)

	portfolio, err := repo.GetPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	portfolio.Name = in.Name
	portfolio.TargetAmount = in.TargetAmount
	portfolio.TargetDate = in.TargetDate
	portfolio.IsActive = in.IsActive
	portfolio.UpdatedAt = time.Now().UTC()
	if err := repo.Update(ctx, &portfolio); err != nil {
		return nil, err
	}

	s.log.Info().Str("portfolio_id", portfolioID).Msg("updated portfolio")
	return &portfolio, nil
}

// DeletePortfolio removes a portfolio. Its holdings and transactions go with
// it through the schema's cascading foreign keys.
func (s *PortfolioService) DeletePortfolio(ctx context.Context, portfolioID string) error {
	if err := repository.NewPortfolioRepository(s.db).Delete(ctx, portfolioID); err != nil {
		return err
	}

	s.log.Info().Str("portfolio_id", portfolioID).Msg("deleted portfolio")
	return nil
}

// GetPortfolioSummary aggregates market value, invested capital, and growth
// across the portfolio's holdings. Monetary amounts are rounded to whole
// units; the growth rate keeps its fractional precision.
func (s *PortfolioService) GetPortfolioSummary(ctx context.Context, portfolioID string) (model.PortfolioSummary, error) {
	portfolio, err := repository.NewPortfolioRepository(s.db).GetPortfolio(ctx, portfolioID)
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	holdings, err := repository.NewHoldingRepository(s.db).GetByPortfolio(ctx, portfolioID)
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	assets, err := s.assetsFor(ctx, holdings)
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	marketValue := decimal.Zero
	invested := decimal.Zero
	for _, h := range holdings {
		asset, ok := assets[h.AssetID]
		if !ok {
			continue
		}
		multiplier := asset.Type.Multiplier()
		marketValue = marketValue.Add(h.Quantity.Mul(asset.LastPrice).Mul(multiplier))
		invested = invested.Add(h.CostBasis().Mul(multiplier))
	}

	profit := marketValue.Sub(invested)
	growth := decimal.Zero
	if !invested.IsZero() {
		growth = profit.Div(invested).Mul(hundred)
	}

	return model.PortfolioSummary{
		ID:              portfolio.ID,
		Name:            portfolio.Name,
		MarketValue:     marketValue.Round(0),
		InvestedCapital: invested.Round(0),
		ProfitAmount:    profit.Round(0),
		GrowthRate:      growth,
		TargetAmount:    portfolio.TargetAmount,
		IsActive:        portfolio.IsActive,
	}, nil
}

// GetAllocationByType breaks the portfolio's market value down by asset type.
// An empty portfolioID aggregates across all portfolios.
func (s *PortfolioService) GetAllocationByType(ctx context.Context, portfolioID string) ([]model.AllocationSlice, error) {
	holdings, err := repository.NewHoldingRepository(s.db).GetByPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	assets, err := s.assetsFor(ctx, holdings)
	if err != nil {
		return nil, err
	}

	values := map[string]decimal.Decimal{}
	for _, h := range holdings {
		asset, ok := assets[h.AssetID]
		if !ok || h.Quantity.IsZero() {
			continue
		}
		mv := h.Quantity.Mul(asset.LastPrice).Mul(asset.Type.Multiplier())
		label := string(asset.Type)
		values[label] = values[label].Add(mv)
	}
	return toSlices(values), nil
}

// GetAllocationByPlatform breaks the portfolio's market value down by
// platform, using the per-platform replay so transfers and platform-scoped
// sells are attributed correctly.
func (s *PortfolioService) GetAllocationByPlatform(ctx context.Context, portfolioID string) ([]model.AllocationSlice, error) {
	holdings, err := repository.NewHoldingRepository(s.db).GetByPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	assets, err := s.assetsFor(ctx, holdings)
	if err != nil {
		return nil, err
	}
	platformNames, err := repository.NewPlatformRepository(s.db).GetPlatformNames(ctx)
	if err != nil {
		return nil, err
	}

	transactions := repository.NewTransactionRepository(s.db)
	values := map[string]decimal.Decimal{}
	for _, h := range holdings {
		asset, ok := assets[h.AssetID]
		if !ok {
			continue
		}
		legs, err := transactions.GetByAssetAndPortfolio(ctx, h.AssetID, h.PortfolioID)
		if err != nil {
			return nil, err
		}
		for _, a := range replayAccounts(asset, legs, platformNames) {
			label := a.PlatformName
			if label == "" {
				label = a.PlatformID
			}
			values[label] = values[label].Add(a.MarketValue)
		}
	}
	return toSlices(values), nil
}

// assetsFor loads the assets referenced by the given holdings, keyed by ID.
func (s *PortfolioService) assetsFor(ctx context.Context, holdings []model.Holding) (map[string]model.Asset, error) {
	ids := make([]string, 0, len(holdings))
	seen := map[string]bool{}
	for _, h := range holdings {
		if !seen[h.AssetID] {
			seen[h.AssetID] = true
			ids = append(ids, h.AssetID)
		}
	}
	return repository.NewAssetRepository(s.db).GetAssetsByIDs(ctx, ids)
}

// toSlices converts a label->value map into weight-annotated slices sorted by
// descending market value. Weights are percentages of the total.
func toSlices(values map[string]decimal.Decimal) []model.AllocationSlice {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}

	slices := make([]model.AllocationSlice, 0, len(values))
	for label, v := range values {
		weight := decimal.Zero
		if !total.IsZero() {
			weight = v.Div(total).Mul(hundred)
		}
		slices = append(slices, model.AllocationSlice{
			Label:       label,
			MarketValue: v.Round(0),
			Weight:      weight,
		})
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].MarketValue.Equal(slices[j].MarketValue) {
			return slices[i].Label < slices[j].Label
		}
		return slices[i].MarketValue.GreaterThan(slices[j].MarketValue)
	})
	return slices
}
