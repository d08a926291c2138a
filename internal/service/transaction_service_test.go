package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/apperrors"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/model"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/repository"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/service"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func buyInput(platformID, assetID, portfolioID, qty, price string) service.BuyInput {
	return service.BuyInput{
		PlatformID:   platformID,
		AssetID:      assetID,
		PortfolioID:  portfolioID,
		Quantity:     dec(qty),
		Price:        dec(price),
		Date:         time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Currency:     "IDR",
		ExchangeRate: decimal.NewFromInt(1),
	}
}

func sellInput(platformID, holdingID, qty, price string) service.SellInput {
	return service.SellInput{
		PlatformID:   platformID,
		HoldingID:    holdingID,
		Quantity:     dec(qty),
		Price:        dec(price),
		Date:         time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Currency:     "IDR",
		ExchangeRate: decimal.NewFromInt(1),
	}
}

func TestTransactionService_RecordBuy(t *testing.T) {
	ctx := context.Background()

	t.Run("first buy creates the holding", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestTransactionService(t, db)

		platform := testutil.NewPlatform().Build(t, db)
		asset := testutil.NewAsset().Build(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)

		transaction, err := ts.RecordBuy(ctx, buyInput(platform.ID, asset.ID, portfolio.ID, "10", "1000"))
		require.NoError(t, err)
		require.Equal(t, model.TransactionTypeBuy, transaction.Type)
		require.Nil(t, transaction.CostBasisPerUnit)

		holding, err := repository.NewHoldingRepository(db).GetByAssetAndPortfolio(ctx, asset.ID, portfolio.ID)
		require.NoError(t, err)
		require.True(t, holding.Quantity.Equal(dec("10")), "quantity = %s", holding.Quantity)
		require.True(t, holding.AvgPricePerUnit.Equal(dec("1000")), "avgPrice = %s", holding.AvgPricePerUnit)
	})

	t.Run("second buy folds into the weighted average", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestTransactionService(t, db)

		platform := testutil.NewPlatform().Build(t, db)
		asset := testutil.NewAsset().Build(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)

		_, err := ts.RecordBuy(ctx, buyInput(platform.ID, asset.ID, portfolio.ID, "10", "1000"))
		require.NoError(t, err)
		_, err = ts.RecordBuy(ctx, buyInput(platform.ID, asset.ID, portfolio.ID, "10", "2000"))
		require.NoError(t, err)

		holding, err := repository.NewHoldingRepository(db).GetByAssetAndPortfolio(ctx, asset.ID, portfolio.ID)
		require.NoError(t, err)
		require.True(t, holding.Quantity.Equal(dec("20")), "quantity = %s", holding.Quantity)
		require.True(t, holding.AvgPricePerUnit.Equal(dec("1500")), "avgPrice = %s", holding.AvgPricePerUnit)
	})

	t.Run("non-positive quantity is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestTransactionService(t, db)

		platform := testutil.NewPlatform().Build(t, db)
		asset := testutil.NewAsset().Build(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)

		_, err := ts.RecordBuy(ctx, buyInput(platform.ID, asset.ID, portfolio.ID, "0", "1000"))
		require.ErrorIs(t, err, apperrors.ErrInsufficientQuantity)
	})

	t.Run("unknown references are rejected before any write", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestTransactionService(t, db)

		platform := testutil.NewPlatform().Build(t, db)
		asset := testutil.NewAsset().Build(t, db)

		_, err := ts.RecordBuy(ctx, buyInput(platform.ID, asset.ID, testutil.MakeID(), "10", "1000"))
		require.ErrorIs(t, err, apperrors.ErrPortfolioNotFound)

		transactions, err := ts.GetTransactionsPerPortfolio(ctx, "")
		require.NoError(t, err)
		require.Empty(t, transactions)
	})
}

func TestTransactionService_RecordSell(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*service.TransactionService, *testEnv) {
		db := testutil.SetupTestDB(t)
		env := &testEnv{
			db:        db,
			platform:  testutil.NewPlatform().Build(t, db),
			asset:     testutil.NewAsset().Build(t, db),
			portfolio: testutil.NewPortfolio().Build(t, db),
		}
		return testutil.NewTestTransactionService(t, db), env
	}

	t.Run("sell reduces quantity pro-rata and snapshots the basis", func(t *testing.T) {
		ts, env := setup(t)

		_, err := ts.RecordBuy(ctx, buyInput(env.platform.ID, env.asset.ID, env.portfolio.ID, "10", "1000"))
		require.NoError(t, err)
		_, err = ts.RecordBuy(ctx, buyInput(env.platform.ID, env.asset.ID, env.portfolio.ID, "10", "2000"))
		require.NoError(t, err)

		holding, err := repository.NewHoldingRepository(env.db).GetByAssetAndPortfolio(ctx, env.asset.ID, env.portfolio.ID)
		require.NoError(t, err)

		sell, err := ts.RecordSell(ctx, service.SellInput{
			PlatformID:   env.platform.ID,
			HoldingID:    holding.ID,
			Quantity:     dec("5"),
			Price:        dec("3000"),
			Date:         time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			Currency:     "IDR",
			ExchangeRate: decimal.NewFromInt(1),
		})
		require.NoError(t, err)
		require.NotNil(t, sell.CostBasisPerUnit)
		require.True(t, sell.CostBasisPerUnit.Equal(dec("1500")), "basis = %s", sell.CostBasisPerUnit)

		holding, err = repository.NewHoldingRepository(env.db).GetHolding(ctx, holding.ID)
		require.NoError(t, err)
		require.True(t, holding.Quantity.Equal(dec("15")), "quantity = %s", holding.Quantity)
		// Average cost is untouched by a sale.
		require.True(t, holding.AvgPricePerUnit.Equal(dec("1500")), "avgPrice = %s", holding.AvgPricePerUnit)
	})

	t.Run("sell is scoped to the platform position", func(t *testing.T) {
		ts, env := setup(t)
		other := testutil.NewPlatform().WithName("Other Platform").Build(t, env.db)

		_, err := ts.RecordBuy(ctx, buyInput(env.platform.ID, env.asset.ID, env.portfolio.ID, "10", "1000"))
		require.NoError(t, err)
		_, err = ts.RecordBuy(ctx, buyInput(other.ID, env.asset.ID, env.portfolio.ID, "10", "1000"))
		require.NoError(t, err)

		holding, err := repository.NewHoldingRepository(env.db).GetByAssetAndPortfolio(ctx, env.asset.ID, env.portfolio.ID)
		require.NoError(t, err)

		// 20 units in the holding, but only 10 on this platform.
		_, err = ts.RecordSell(ctx, service.SellInput{
			PlatformID:   env.platform.ID,
			HoldingID:    holding.ID,
			Quantity:     dec("15"),
			Price:        dec("1000"),
			Date:         time.Now().UTC(),
			Currency:     "IDR",
			ExchangeRate: decimal.NewFromInt(1),
		})
		require.ErrorIs(t, err, apperrors.ErrInsufficientQuantity)
	})

	t.Run("sell on a platform with no position reports account not found", func(t *testing.T) {
		ts, env := setup(t)
		other := testutil.NewPlatform().WithName("Other Platform").Build(t, env.db)

		_, err := ts.RecordBuy(ctx, buyInput(env.platform.ID, env.asset.ID, env.portfolio.ID, "10", "1000"))
		require.NoError(t, err)

		holding, err := repository.NewHoldingRepository(env.db).GetByAssetAndPortfolio(ctx, env.asset.ID, env.portfolio.ID)
		require.NoError(t, err)

		_, err = ts.RecordSell(ctx, service.SellInput{
			PlatformID:   other.ID,
			HoldingID:    holding.ID,
			Quantity:     dec("1"),
			Price:        dec("1000"),
			Date:         time.Now().UTC(),
			Currency:     "IDR",
			ExchangeRate: decimal.NewFromInt(1),
		})
		require.ErrorIs(t, err, apperrors.ErrAccountNotFound)
	})

	t.Run("failed sell leaves the holding untouched", func(t *testing.T) {
		ts, env := setup(t)

		_, err := ts.RecordBuy(ctx, buyInput(env.platform.ID, env.asset.ID, env.portfolio.ID, "10", "1000"))
		require.NoError(t, err)

		holding, err := repository.NewHoldingRepository(env.db).GetByAssetAndPortfolio(ctx, env.asset.ID, env.portfolio.ID)
		require.NoError(t, err)

		_, err = ts.RecordSell(ctx, service.SellInput{
			PlatformID:   env.platform.ID,
			HoldingID:    holding.ID,
			Quantity:     dec("99"),
			Price:        dec("1000"),
			Date:         time.Now().UTC(),
			Currency:     "IDR",
			ExchangeRate: decimal.NewFromInt(1),
		})
		require.ErrorIs(t, err, apperrors.ErrInsufficientQuantity)

		holding, err = repository.NewHoldingRepository(env.db).GetHolding(ctx, holding.ID)
		require.NoError(t, err)
		require.True(t, holding.Quantity.Equal(dec("10")), "quantity = %s", holding.Quantity)
	})
}

type testEnv struct {
	db        *sql.DB
	platform  model.Platform
	asset     model.Asset
	portfolio model.Portfolio
}
