package service

import (
	"testing"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/model"
	"github.com/stretchr/testify/require"
)

func makeLeg(platformID string, txType model.TransactionType, qty, price string) model.Transaction {
	return model.Transaction{
		PlatformID: platformID,
		Type:       txType,
		Quantity:   d(qty),
		Price:      d(price),
	}
}

func TestReplayPlatform(t *testing.T) {
	t.Run("buys accumulate weighted cost", func(t *testing.T) {
		state := replayPlatform([]model.Transaction{
			makeLeg("a", model.TransactionTypeBuy, "10", "1000"),
			makeLeg("a", model.TransactionTypeBuy, "10", "2000"),
		})
		require.True(t, state.qty.Equal(d("20")), "qty = %s", state.qty)
		require.True(t, state.avgCost().Equal(d("1500")), "avg = %s", state.avgCost())
	})

	t.Run("outgoing legs are valued at average cost, not their price", func(t *testing.T) {
		state := replayPlatform([]model.Transaction{
			makeLeg("a", model.TransactionTypeBuy, "10", "1000"),
			makeLeg("a", model.TransactionTypeSell, "5", "9999"),
		})
		require.True(t, state.qty.Equal(d("5")), "qty = %s", state.qty)
		// Sale price never leaks into the remaining cost basis.
		require.True(t, state.avgCost().Equal(d("1000")), "avg = %s", state.avgCost())
	})

	t.Run("allocate legs behave like buys and sells", func(t *testing.T) {
		state := replayPlatform([]model.Transaction{
			makeLeg("a", model.TransactionTypeAllocateIn, "8", "500"),
			makeLeg("a", model.TransactionTypeAllocateOut, "3", "500"),
		})
		require.True(t, state.qty.Equal(d("5")), "qty = %s", state.qty)
		require.True(t, state.avgCost().Equal(d("500")), "avg = %s", state.avgCost())
	})
}

func TestPlatformPosition(t *testing.T) {
	legs := []model.Transaction{
		makeLeg("a", model.TransactionTypeBuy, "10", "1000"),
		makeLeg("b", model.TransactionTypeBuy, "4", "2000"),
		makeLeg("a", model.TransactionTypeSell, "6", "1200"),
	}

	t.Run("only the requested platform's legs are replayed", func(t *testing.T) {
		qty, avg, found := platformPosition(legs, "a")
		require.True(t, found)
		require.True(t, qty.Equal(d("4")), "qty = %s", qty)
		require.True(t, avg.Equal(d("1000")), "avg = %s", avg)
	})

	t.Run("platform with no transactions is not found", func(t *testing.T) {
		_, _, found := platformPosition(legs, "c")
		require.False(t, found)
	})
}

func TestReplayAccounts(t *testing.T) {
	asset := model.Asset{
		Type:      model.AssetTypeStocks,
		LastPrice: d("2000"),
	}
	names := map[string]string{"a": "Alpha", "b": "Beta"}

	t.Run("closed platform groups are excluded", func(t *testing.T) {
		accounts := replayAccounts(asset, []model.Transaction{
			makeLeg("a", model.TransactionTypeBuy, "10", "1000"),
			makeLeg("b", model.TransactionTypeBuy, "5", "1000"),
			makeLeg("b", model.TransactionTypeSell, "5", "1500"),
		}, names)

		require.Len(t, accounts, 1)
		require.Equal(t, "a", accounts[0].PlatformID)
		require.Equal(t, "Alpha", accounts[0].PlatformName)
	})

	t.Run("per-platform valuation", func(t *testing.T) {
		accounts := replayAccounts(asset, []model.Transaction{
			makeLeg("a", model.TransactionTypeBuy, "10", "1000"),
		}, names)

		require.Len(t, accounts, 1)
		a := accounts[0]
		require.True(t, a.MarketValue.Equal(d("20000")), "marketValue = %s", a.MarketValue)
		require.True(t, a.CostBasis.Equal(d("10000")), "costBasis = %s", a.CostBasis)
		// Per-platform unrealized P&L tracks market value exposure.
		require.True(t, a.UnrealizedPnL.Equal(d("20000")), "unrealizedPnL = %s", a.UnrealizedPnL)
		require.True(t, a.UnrealizedPnLPct.Equal(d("200")), "pct = %s", a.UnrealizedPnLPct)
	})

	t.Run("lot multiplier applies to valuation only", func(t *testing.T) {
		lotAsset := model.Asset{
			Type:      model.AssetTypeStocksID,
			LastPrice: d("2000"),
		}
		accounts := replayAccounts(lotAsset, []model.Transaction{
			makeLeg("a", model.TransactionTypeBuy, "10", "1000"),
		}, names)

		require.Len(t, accounts, 1)
		a := accounts[0]
		require.True(t, a.Quantity.Equal(d("10")), "quantity = %s", a.Quantity)
		require.True(t, a.AvgPrice.Equal(d("1000")), "avgPrice = %s", a.AvgPrice)
		require.True(t, a.MarketValue.Equal(d("2000000")), "marketValue = %s", a.MarketValue)
		require.True(t, a.CostBasis.Equal(d("1000000")), "costBasis = %s", a.CostBasis)
	})
}
