package analysis

import "dca-simulator/internal/strategy"

// Summary is the dashboard view of a derived table
type Summary struct {
	AverageEntryPrice  float64
	LiquidationPrice   float64
	CumulativeMargin   float64
	CumulativeNotional float64
	CumulativeVolume   float64

	// Set only for extended tables
	HasProtection      bool
	TotalProtectionPct float64

	Steps            int
	UnsafeSteps      int
	FirstUnsafeIndex int // 0 when every step is safe
}

// Summarize reads position totals off the last row and counts unsafe entries.
// Returns false for an empty table.
func Summarize(rows []strategy.DerivedStep) (Summary, bool) {
	if len(rows) == 0 {
		return Summary{}, false
	}

	last := rows[len(rows)-1]
	s := Summary{
		AverageEntryPrice:  last.AverageEntryPrice,
		LiquidationPrice:   last.LiquidationPrice,
		CumulativeMargin:   last.CumulativeMargin,
		CumulativeNotional: last.CumulativeNotional,
		CumulativeVolume:   last.CumulativeVolume,
		HasProtection:      last.Extended,
		TotalProtectionPct: last.TotalProtectionPct,
		Steps:              len(rows),
	}

	for _, r := range rows {
		if r.Status == strategy.StatusUnsafe {
			s.UnsafeSteps++
		}
	}
	if first := strategy.FirstUnsafe(rows); first != nil {
		s.FirstUnsafeIndex = first.Index
	}

	return s, true
}
