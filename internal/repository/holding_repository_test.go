package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/apperrors"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/model"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/repository"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestHoldingRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("insert and read back by pair", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		asset := testutil.NewAsset().Build(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)

		repo := repository.NewHoldingRepository(db)
		now := time.Now().UTC()
		holding := &model.Holding{
			ID:              testutil.MakeID(),
			AssetID:         asset.ID,
			PortfolioID:     portfolio.ID,
			Quantity:        decimal.NewFromInt(10),
			AvgPricePerUnit: decimal.RequireFromString("1000.5"),
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		require.NoError(t, repo.Insert(ctx, holding))

		got, err := repo.GetByAssetAndPortfolio(ctx, asset.ID, portfolio.ID)
		require.NoError(t, err)
		require.Equal(t, holding.ID, got.ID)
		require.True(t, got.Quantity.Equal(holding.Quantity))
		require.True(t, got.AvgPricePerUnit.Equal(holding.AvgPricePerUnit))
	})

	t.Run("one holding per asset and portfolio pair", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		asset := testutil.NewAsset().Build(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)

		repo := repository.NewHoldingRepository(db)
		now := time.Now().UTC()
		first := &model.Holding{
			ID: testutil.MakeID(), AssetID: asset.ID, PortfolioID: portfolio.ID,
			CreatedAt: now, UpdatedAt: now,
		}
		require.NoError(t, repo.Insert(ctx, first))

		duplicate := &model.Holding{
			ID: testutil.MakeID(), AssetID: asset.ID, PortfolioID: portfolio.ID,
			CreatedAt: now, UpdatedAt: now,
		}
		require.Error(t, repo.Insert(ctx, duplicate))
	})

	t.Run("update position rewrites quantity and average only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		asset := testutil.NewAsset().Build(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)
		holding := testutil.NewHolding(asset.ID, portfolio.ID).
			WithPosition(decimal.NewFromInt(10), decimal.NewFromInt(1000)).
			Build(t, db)

		repo := repository.NewHoldingRepository(db)
		require.NoError(t, repo.UpdatePosition(ctx, holding.ID,
			decimal.NewFromInt(15), decimal.NewFromInt(1200)))

		got, err := repo.GetHolding(ctx, holding.ID)
		require.NoError(t, err)
		require.True(t, got.Quantity.Equal(decimal.NewFromInt(15)))
		require.True(t, got.AvgPricePerUnit.Equal(decimal.NewFromInt(1200)))
		require.Equal(t, asset.ID, got.AssetID)
	})

	t.Run("updating a missing holding reports not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		err := repository.NewHoldingRepository(db).UpdatePosition(ctx, testutil.MakeID(),
			decimal.NewFromInt(1), decimal.NewFromInt(1))
		require.ErrorIs(t, err, apperrors.ErrHoldingNotFound)
	})

	t.Run("deleting a portfolio cascades to its holdings and transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		platform := testutil.NewPlatform().Build(t, db)
		asset := testutil.NewAsset().Build(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)
		holding := testutil.NewHolding(asset.ID, portfolio.ID).
			WithPosition(decimal.NewFromInt(10), decimal.NewFromInt(1000)).
			Build(t, db)
		transaction := testutil.NewTransaction(platform.ID, asset.ID, portfolio.ID, holding.ID).Build(t, db)

		require.NoError(t, repository.NewPortfolioRepository(db).Delete(ctx, portfolio.ID))

		_, err := repository.NewHoldingRepository(db).GetHolding(ctx, holding.ID)
		require.ErrorIs(t, err, apperrors.ErrHoldingNotFound)
		_, err = repository.NewTransactionRepository(db).GetTransaction(ctx, transaction.ID)
		require.ErrorIs(t, err, apperrors.ErrTransactionNotFound)
	})
}
