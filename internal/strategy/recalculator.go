package strategy

import "math"

// Options toggles optional derived columns
type Options struct {
	Extended bool // Adds safety margin and total protection percentages
}

// Recalculator derives the full position table from a step sequence.
// It holds no state between calls.
type Recalculator struct {
	opts Options
}

// NewRecalculator creates a recalculator for the given column set
func NewRecalculator(opts Options) *Recalculator {
	return &Recalculator{opts: opts}
}

// Extended reports whether the extended columns are emitted
func (r *Recalculator) Extended() bool {
	return r.opts.Extended
}

// Recalculate runs one forward pass over steps and returns a new table.
// Accumulators keep full precision, only the emitted rows are rounded.
// Rows are not validated: a negative volume or a zero leverage flows
// straight into the arithmetic.
func (r *Recalculator) Recalculate(steps []Step) []DerivedStep {
	out := make([]DerivedStep, 0, len(steps))

	var cumMargin, cumVolume, cumNotional float64
	firstPrice := 0.0
	if len(steps) > 0 {
		firstPrice = steps[0].EntryPrice
	}

	for _, s := range steps {
		// 1. Per-step deltas
		addedNotional := s.VolumeAdded * s.EntryPrice
		addedMargin := addedNotional / s.Leverage

		cumMargin += addedMargin
		cumVolume += s.VolumeAdded
		cumNotional += addedNotional

		// 2. Average entry
		avgPrice := 0.0
		if cumVolume > 0 {
			avgPrice = cumNotional / cumVolume
		}

		// 3. Liquidation from the blended leverage
		effLeverage := 0.0
		liqPrice := math.Inf(1)
		if cumMargin > 0 {
			effLeverage = cumNotional / cumMargin
			liqPrice = avgPrice * (1 + 1/effLeverage)
		}

		d := DerivedStep{
			Step:               s,
			AddedNotional:      roundMoney(addedNotional),
			AddedMargin:        roundMoney(addedMargin),
			CumulativeMargin:   roundMoney(cumMargin),
			CumulativeVolume:   roundVolume(cumVolume),
			CumulativeNotional: roundMoney(cumNotional),
			AverageEntryPrice:  roundPrice(avgPrice),
			EffectiveLeverage:  roundTo(effLeverage, leveragePlaces),
			LiquidationPrice:   roundPrice(liqPrice),
			Status:             classify(liqPrice, s.EntryPrice),
		}

		// 4. Optional percentage columns
		if r.opts.Extended {
			d.Extended = true
			d.SafetyMarginPct = roundPercent(distancePct(liqPrice, s.EntryPrice))
			d.TotalProtectionPct = roundPercent(distancePct(liqPrice, firstPrice))
		}

		out = append(out, d)
	}

	return out
}
