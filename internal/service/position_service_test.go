package service_test

import (
	"context"
	"testing"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/model"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/repository"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPositionService_GetHoldingPosition(t *testing.T) {
	ctx := context.Background()

	t.Run("missing holding degrades to an empty position", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ps := testutil.NewTestPositionService(t, db)

		position, err := ps.GetHoldingPosition(ctx, testutil.MakeID())
		require.NoError(t, err)
		require.Empty(t, position.HoldingID)
		require.Empty(t, position.Accounts)
	})

	t.Run("consolidated view with per-platform breakdown", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestTransactionService(t, db)
		ps := testutil.NewTestPositionService(t, db)

		alpha := testutil.NewPlatform().WithName("Alpha").Build(t, db)
		beta := testutil.NewPlatform().WithName("Beta").Build(t, db)
		asset := testutil.NewAsset().WithLastPrice(decimal.NewFromInt(2000)).Build(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)

		_, err := ts.RecordBuy(ctx, buyInput(alpha.ID, asset.ID, portfolio.ID, "10", "1000"))
		require.NoError(t, err)
		_, err = ts.RecordBuy(ctx, buyInput(beta.ID, asset.ID, portfolio.ID, "10", "2000"))
		require.NoError(t, err)

		holding, err := repository.NewHoldingRepository(db).GetByAssetAndPortfolio(ctx, asset.ID, portfolio.ID)
		require.NoError(t, err)

		position, err := ps.GetHoldingPosition(ctx, holding.ID)
		require.NoError(t, err)

		require.True(t, position.Quantity.Equal(dec("20")), "quantity = %s", position.Quantity)
		require.True(t, position.AvgPrice.Equal(dec("1500")), "avgPrice = %s", position.AvgPrice)
		// 20 * 2000 market value against 20 * 1500 cost basis.
		require.True(t, position.MarketValue.Equal(dec("40000")), "marketValue = %s", position.MarketValue)
		require.True(t, position.CostBasis.Equal(dec("30000")), "costBasis = %s", position.CostBasis)
		require.True(t, position.UnrealizedPnL.Equal(dec("10000")), "pnl = %s", position.UnrealizedPnL)

		require.Len(t, position.Accounts, 2)
		byName := map[string]model.AccountPosition{}
		for _, a := range position.Accounts {
			byName[a.PlatformName] = a
		}
		require.True(t, byName["Alpha"].Quantity.Equal(dec("10")))
		require.True(t, byName["Alpha"].AvgPrice.Equal(dec("1000")))
		require.True(t, byName["Beta"].AvgPrice.Equal(dec("2000")))
	})

	t.Run("sold-out platform disappears from the breakdown but not history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestTransactionService(t, db)
		ps := testutil.NewTestPositionService(t, db)

		alpha := testutil.NewPlatform().WithName("Alpha").Build(t, db)
		beta := testutil.NewPlatform().WithName("Beta").Build(t, db)
		asset := testutil.NewAsset().Build(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)

		_, err := ts.RecordBuy(ctx, buyInput(alpha.ID, asset.ID, portfolio.ID, "10", "1000"))
		require.NoError(t, err)
		_, err = ts.RecordBuy(ctx, buyInput(beta.ID, asset.ID, portfolio.ID, "5", "1000"))
		require.NoError(t, err)

		holding, err := repository.NewHoldingRepository(db).GetByAssetAndPortfolio(ctx, asset.ID, portfolio.ID)
		require.NoError(t, err)

		_, err = ts.RecordSell(ctx, sellInput(beta.ID, holding.ID, "5", "1200"))
		require.NoError(t, err)

		position, err := ps.GetHoldingPosition(ctx, holding.ID)
		require.NoError(t, err)
		require.Len(t, position.Accounts, 1)
		require.Equal(t, "Alpha", position.Accounts[0].PlatformName)

		// The closed platform's transactions are still in the ledger.
		transactions, err := repository.NewTransactionRepository(db).GetByAssetAndPortfolio(ctx, asset.ID, portfolio.ID)
		require.NoError(t, err)
		require.Len(t, transactions, 3)
	})

	t.Run("monetary values are rounded to whole units", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestTransactionService(t, db)
		ps := testutil.NewTestPositionService(t, db)

		platform := testutil.NewPlatform().Build(t, db)
		asset := testutil.NewAsset().WithLastPrice(dec("1000.7")).Build(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)

		_, err := ts.RecordBuy(ctx, buyInput(platform.ID, asset.ID, portfolio.ID, "3", "333.33"))
		require.NoError(t, err)

		holding, err := repository.NewHoldingRepository(db).GetByAssetAndPortfolio(ctx, asset.ID, portfolio.ID)
		require.NoError(t, err)

		position, err := ps.GetHoldingPosition(ctx, holding.ID)
		require.NoError(t, err)

		// 3 * 1000.7 = 3002.1 rounds to 3002; 3 * 333.33 = 999.99 rounds to 1000.
		require.True(t, position.MarketValue.Equal(dec("3002")), "marketValue = %s", position.MarketValue)
		require.True(t, position.CostBasis.Equal(dec("1000")), "costBasis = %s", position.CostBasis)
		// Quantity and prices keep their precision.
		require.True(t, position.AvgPrice.Equal(dec("333.33")), "avgPrice = %s", position.AvgPrice)
	})
}

func TestPositionService_GetPortfolioPositions(t *testing.T) {
	ctx := context.Background()

	t.Run("one position per holding in the portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestTransactionService(t, db)
		ps := testutil.NewTestPositionService(t, db)

		platform := testutil.NewPlatform().Build(t, db)
		first := testutil.NewAsset().WithSymbol("AAA").Build(t, db)
		second := testutil.NewAsset().WithSymbol("BBB").Build(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)

		_, err := ts.RecordBuy(ctx, buyInput(platform.ID, first.ID, portfolio.ID, "10", "1000"))
		require.NoError(t, err)
		_, err = ts.RecordBuy(ctx, buyInput(platform.ID, second.ID, portfolio.ID, "5", "500"))
		require.NoError(t, err)

		positions, err := ps.GetPortfolioPositions(ctx, portfolio.ID)
		require.NoError(t, err)
		require.Len(t, positions, 2)
	})

	t.Run("empty portfolio yields an empty slice", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ps := testutil.NewTestPositionService(t, db)

		portfolio := testutil.NewPortfolio().Build(t, db)

		positions, err := ps.GetPortfolioPositions(ctx, portfolio.ID)
		require.NoError(t, err)
		require.NotNil(t, positions)
		require.Empty(t, positions)
	})
}
