package strategy

import (
	"fmt"
	"math"
)

// classify compares the unrounded liquidation price with the entry price.
// Equality counts as unsafe.
func classify(liqPrice, entryPrice float64) Status {
	if liqPrice > entryPrice {
		return StatusSafe
	}
	return StatusUnsafe
}

// distancePct is how far liq sits above ref, as a percentage of ref
func distancePct(liqPrice, ref float64) float64 {
	if ref <= 0 {
		return 0
	}
	return (liqPrice - ref) / ref * 100
}

// CheckStep explains the status of a single derived row
func CheckStep(d DerivedStep) (bool, string) {
	if d.Status == StatusSafe {
		if math.IsInf(d.LiquidationPrice, 1) {
			return true, fmt.Sprintf("Step %d: no margin deployed, cannot be liquidated", d.Index)
		}
		return true, fmt.Sprintf("Step %d: entry %.4f below liquidation %.4f", d.Index, d.EntryPrice, d.LiquidationPrice)
	}
	return false, fmt.Sprintf("⛔ Step %d: entry %.4f at or above liquidation %.4f", d.Index, d.EntryPrice, d.LiquidationPrice)
}

// FirstUnsafe returns the first row that would be liquidated on entry, or nil
func FirstUnsafe(rows []DerivedStep) *DerivedStep {
	for i := range rows {
		if rows[i].Status == StatusUnsafe {
			return &rows[i]
		}
	}
	return nil
}
