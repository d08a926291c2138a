package service

import "github.com/shopspring/decimal"

// Weighted-average position math shared by the record, edit, and delete
// paths. All four operations are exact inverses of each other so that a
// transaction applied and then reversed restores the holding's
// (quantity, average cost) pair bit-for-bit.

// applyIncoming folds an incoming leg (buy, allocate-in) into a position:
// the average cost becomes the quantity-weighted mean of the old position
// and the new units.
func applyIncoming(qty, avg, txQty, txPrice decimal.Decimal) (newQty, newAvg decimal.Decimal) {
	newQty = qty.Add(txQty)
	if newQty.IsZero() {
		return newQty, decimal.Zero
	}
	newAvg = qty.Mul(avg).Add(txQty.Mul(txPrice)).Div(newQty)
	return newQty, newAvg
}

// applyOutgoing folds an outgoing leg (sell, allocate-out) into a position.
// The reduction is pro-rata: quantity and cost basis shrink together and the
// average cost stays unchanged.
func applyOutgoing(qty, avg, txQty decimal.Decimal) (newQty, newAvg decimal.Decimal) {
	return qty.Sub(txQty), avg
}

// reverseIncoming removes a previously applied incoming leg, subtracting the
// units at the price they came in at. Restores the exact pre-leg average.
func reverseIncoming(qty, avg, txQty, txPrice decimal.Decimal) (newQty, newAvg decimal.Decimal) {
	newQty = qty.Sub(txQty)
	if newQty.IsZero() {
		return newQty, decimal.Zero
	}
	newAvg = qty.Mul(avg).Sub(txQty.Mul(txPrice)).Div(newQty)
	return newQty, newAvg
}

// reverseOutgoing adds back a previously applied outgoing leg at its recorded
// cost basis per unit. The caller must have verified the snapshot exists.
func reverseOutgoing(qty, avg, txQty, basisPerUnit decimal.Decimal) (newQty, newAvg decimal.Decimal) {
	newQty = qty.Add(txQty)
	if newQty.IsZero() {
		return newQty, decimal.Zero
	}
	newAvg = qty.Mul(avg).Add(txQty.Mul(basisPerUnit)).Div(newQty)
	return newQty, newAvg
}
