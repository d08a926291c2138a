package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestApplyIncoming(t *testing.T) {
	t.Run("first buy sets average to price", func(t *testing.T) {
		qty, avg := applyIncoming(decimal.Zero, decimal.Zero, d("10"), d("1000"))
		require.True(t, qty.Equal(d("10")), "qty = %s", qty)
		require.True(t, avg.Equal(d("1000")), "avg = %s", avg)
	})

	t.Run("second buy produces weighted mean", func(t *testing.T) {
		qty, avg := applyIncoming(d("10"), d("1000"), d("10"), d("2000"))
		require.True(t, qty.Equal(d("20")), "qty = %s", qty)
		require.True(t, avg.Equal(d("1500")), "avg = %s", avg)
	})

	t.Run("uneven weights", func(t *testing.T) {
		qty, avg := applyIncoming(d("30"), d("100"), d("10"), d("300"))
		require.True(t, qty.Equal(d("40")), "qty = %s", qty)
		require.True(t, avg.Equal(d("150")), "avg = %s", avg)
	})
}

func TestApplyOutgoing(t *testing.T) {
	t.Run("average unchanged by partial sale", func(t *testing.T) {
		qty, avg := applyOutgoing(d("20"), d("1500"), d("5"))
		require.True(t, qty.Equal(d("15")), "qty = %s", qty)
		require.True(t, avg.Equal(d("1500")), "avg = %s", avg)
	})

	t.Run("full sale leaves average as-is with zero quantity", func(t *testing.T) {
		qty, avg := applyOutgoing(d("20"), d("1500"), d("20"))
		require.True(t, qty.IsZero(), "qty = %s", qty)
		require.True(t, avg.Equal(d("1500")), "avg = %s", avg)
	})
}

func TestReversalsAreExactInverses(t *testing.T) {
	t.Run("reverseIncoming undoes applyIncoming", func(t *testing.T) {
		startQty, startAvg := d("10"), d("1000")
		qty, avg := applyIncoming(startQty, startAvg, d("10"), d("2000"))
		qty, avg = reverseIncoming(qty, avg, d("10"), d("2000"))
		require.True(t, qty.Equal(startQty), "qty = %s", qty)
		require.True(t, avg.Equal(startAvg), "avg = %s", avg)
	})

	t.Run("reverseIncoming on emptied position zeroes the average", func(t *testing.T) {
		qty, avg := applyIncoming(decimal.Zero, decimal.Zero, d("7"), d("350"))
		qty, avg = reverseIncoming(qty, avg, d("7"), d("350"))
		require.True(t, qty.IsZero(), "qty = %s", qty)
		require.True(t, avg.IsZero(), "avg = %s", avg)
	})

	t.Run("reverseOutgoing restores quantity at recorded basis", func(t *testing.T) {
		startQty, startAvg := d("20"), d("1500")
		qty, avg := applyOutgoing(startQty, startAvg, d("5"))
		qty, avg = reverseOutgoing(qty, avg, d("5"), d("1500"))
		require.True(t, qty.Equal(startQty), "qty = %s", qty)
		require.True(t, avg.Equal(startAvg), "avg = %s", avg)
	})

	t.Run("reverseOutgoing after intervening buy uses the old basis", func(t *testing.T) {
		// Sell 5 of 20@1500, then buy 10@3000, then reverse the sell.
		qty, avg := applyOutgoing(d("20"), d("1500"), d("5"))
		qty, avg = applyIncoming(qty, avg, d("10"), d("3000"))
		qty, avg = reverseOutgoing(qty, avg, d("5"), d("1500"))

		// 15*1500 + 10*3000 + 5*1500 = 60000 over 30 units.
		require.True(t, qty.Equal(d("30")), "qty = %s", qty)
		require.True(t, avg.Equal(d("2000")), "avg = %s", avg)
	})
}
