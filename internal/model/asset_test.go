package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssetTypeValid(t *testing.T) {
	for at := range ValidAssetTypes {
		require.True(t, at.Valid(), "%s should be valid", at)
	}
	require.False(t, AssetType("commodities").Valid())
	require.False(t, AssetType("").Valid())
}

func TestAssetTypeUnitLabel(t *testing.T) {
	tests := []struct {
		assetType AssetType
		label     string
	}{
		{AssetTypeStocksID, "lot"},
		{AssetTypeStocks, "share"},
		{AssetTypeETF, "share"},
		{AssetTypeOptions, "contract"},
		{AssetTypeCrypto, "coin"},
		{AssetTypeBonds, "unit"},
		{AssetTypeMutualFunds, "unit"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.label, tt.assetType.UnitLabel(), "type %s", tt.assetType)
	}
}

func TestAssetTypeMultiplier(t *testing.T) {
	require.True(t, AssetTypeStocksID.Multiplier().Equal(lotMultiplier))
	for at := range ValidAssetTypes {
		if at == AssetTypeStocksID {
			continue
		}
		require.True(t, at.Multiplier().IsPositive())
		require.True(t, at.Multiplier().Equal(AssetTypeStocks.Multiplier()), "type %s", at)
	}
}

func TestTransactionTypeDirection(t *testing.T) {
	require.True(t, TransactionTypeBuy.Incoming())
	require.True(t, TransactionTypeAllocateIn.Incoming())
	require.False(t, TransactionTypeSell.Incoming())

	require.True(t, TransactionTypeSell.Outgoing())
	require.True(t, TransactionTypeAllocateOut.Outgoing())
	require.False(t, TransactionTypeAllocateIn.Outgoing())

	require.False(t, TransactionType("dividend").Valid())
}
