package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/apperrors"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/model"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/pricefeed"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/repository"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// quoteFetchConcurrency caps the number of in-flight feed requests during a
// bulk price refresh.
const quoteFetchConcurrency = 4

// QuoteFeed is the slice of the price feed the asset service consumes.
type QuoteFeed interface {
	GetQuote(ctx context.Context, symbol string) (pricefeed.Quote, error)
	GetExchangeRate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

// AssetService manages the asset registry and keeps prices current from the
// external feed.
type AssetService struct {
	db   *sql.DB
	feed QuoteFeed
	log  zerolog.Logger
}

// NewAssetService creates a new AssetService over the given database and feed.
func NewAssetService(db *sql.DB, feed QuoteFeed, log zerolog.Logger) *AssetService {
	return &AssetService{
		db:   db,
		feed: feed,
		log:  log.With().Str("service", "asset").Logger(),
	}
}

// AssetInput carries the user-settable asset fields.
type AssetInput struct {
	Symbol   string
	Name     string
	Type     model.AssetType
	Currency string
	Country  string
}

// CreateAsset registers a new asset and attempts an initial price fetch.
// A feed failure does not fail the create; the price stays zero until the
// next refresh.
func (s *AssetService) CreateAsset(ctx context.Context, in AssetInput) (*model.Asset, error) {
	now := time.Now().UTC()
	asset := &model.Asset{
		ID:        uuid.New().String(),
		Symbol:    in.Symbol,
		Name:      in.Name,
		Type:      in.Type,
		Currency:  in.Currency,
		Country:   in.Country,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if quote, err := s.feed.GetQuote(ctx, in.Symbol); err == nil {
		asset.LastPrice = quote.Price
		asset.PriceUpdatedAt = quote.AsOf
	} else {
		s.log.Warn().Err(err).Str("symbol", in.Symbol).Msg("initial price fetch failed")
	}

	if err := repository.NewAssetRepository(s.db).Insert(ctx, asset); err != nil {
		return nil, err
	}

	s.log.Info().Str("asset_id", asset.ID).Str("symbol", asset.Symbol).Msg("created asset")
	return asset, nil
}

// GetAsset retrieves a single asset by its ID.
func (s *AssetService) GetAsset(ctx context.Context, assetID string) (model.Asset, error) {
	return repository.NewAssetRepository(s.db).GetAsset(ctx, assetID)
}

// GetAssets lists all registered assets ordered by symbol.
func (s *AssetService) GetAssets(ctx context.Context) ([]model.Asset, error) {
	return repository.NewAssetRepository(s.db).GetAssets(ctx)
}

// UpdateAsset rewrites the asset's reference fields. Prices are not settable
// here; they only come from the feed.
func (s *AssetService) UpdateAsset(ctx context.Context, assetID string, in AssetInput) (*model.Asset, error) {
	repo := repository.NewAssetRepository(s.db)

	asset, err := repo.GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}

	asset.Symbol = in.Symbol
	asset.Name = in.Name
	asset.Type = in.Type
	asset.Currency = in.Currency
	asset.Country = in.Country
	if err := repo.Update(ctx, &asset); err != nil {
		return nil, err
	}

	s.log.Info().Str("asset_id", assetID).Msg("updated asset")
	return &asset, nil
}

// DeleteAsset removes an asset by ID.
func (s *AssetService) DeleteAsset(ctx context.Context, assetID string) error {
	if err := repository.NewAssetRepository(s.db).Delete(ctx, assetID); err != nil {
		return err
	}

	s.log.Info().Str("asset_id", assetID).Msg("deleted asset")
	return nil
}

// RefreshPrices fetches quotes for every registered asset and stores the new
// last prices. Quotes are fetched concurrently with a small cap; database
// writes happen from the collecting goroutine only. One symbol failing does
// not abort the rest, but a refresh where every fetch failed reports
// ErrFailedToRefreshPrices.
func (s *AssetService) RefreshPrices(ctx context.Context) error {
	assets, err := repository.NewAssetRepository(s.db).GetAssets(ctx)
	if err != nil {
		return err
	}
	if len(assets) == 0 {
		return nil
	}

	type result struct {
		assetID string
		quote   pricefeed.Quote
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(quoteFetchConcurrency)
	results := make(chan result, len(assets))

	failures := 0
	for _, asset := range assets {
		g.Go(func() error {
			quote, err := s.feed.GetQuote(gctx, asset.Symbol)
			if err != nil {
				s.log.Warn().Err(err).Str("symbol", asset.Symbol).Msg("price fetch failed")
				return nil
			}
			results <- result{assetID: asset.ID, quote: quote}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	close(results)

	repo := repository.NewAssetRepository(s.db)
	updated := 0
	for r := range results {
		if err := repo.UpdatePrice(ctx, r.assetID, r.quote.Price, r.quote.AsOf); err != nil {
			s.log.Error().Err(err).Str("asset_id", r.assetID).Msg("price store failed")
			continue
		}
		updated++
	}
	failures = len(assets) - updated

	s.log.Info().Int("updated", updated).Int("failed", failures).Msg("refreshed prices")
	if updated == 0 {
		return apperrors.ErrFailedToRefreshPrices
	}
	return nil
}

// RefreshExchangeRates fetches and stores today's rate for each currency pair
// in use, i.e. each distinct asset currency against the base currency.
func (s *AssetService) RefreshExchangeRates(ctx context.Context, baseCurrency string) error {
	assets, err := repository.NewAssetRepository(s.db).GetAssets(ctx)
	if err != nil {
		return err
	}

	rates := repository.NewRateRepository(s.db)
	today := time.Now().UTC()
	seen := map[string]bool{}
	for _, asset := range assets {
		if asset.Currency == baseCurrency || seen[asset.Currency] {
			continue
		}
		seen[asset.Currency] = true

		rate, err := s.feed.GetExchangeRate(ctx, asset.Currency, baseCurrency)
		if err != nil {
			s.log.Warn().Err(err).Str("from", asset.Currency).Str("to", baseCurrency).Msg("rate fetch failed")
			continue
		}
		if err := rates.Upsert(ctx, asset.Currency, baseCurrency, rate, today); err != nil {
			return err
		}
	}
	return nil
}

// GetLatestRate returns the most recent stored rate for a currency pair.
func (s *AssetService) GetLatestRate(ctx context.Context, from, to string) (decimal.Decimal, bool, error) {
	return repository.NewRateRepository(s.db).GetLatest(ctx, from, to)
}

// ScheduleRefresh registers the periodic price and rate refresh on the given
// cron runner. The schedule expression uses six fields with seconds, e.g.
// "0 30 17 * * MON-FRI" for 17:30 on weekdays.
func (s *AssetService) ScheduleRefresh(c *cron.Cron, spec, baseCurrency string) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if err := s.RefreshPrices(ctx); err != nil {
			s.log.Error().Err(err).Msg("scheduled price refresh failed")
		}
		if err := s.RefreshExchangeRates(ctx, baseCurrency); err != nil {
			s.log.Error().Err(err).Msg("scheduled rate refresh failed")
		}
	})
}
