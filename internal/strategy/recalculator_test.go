package strategy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalculate_GoldenScenario(t *testing.T) {
	steps, err := Generate(scenarioParams())
	require.NoError(t, err)

	rows := NewRecalculator(Options{Extended: true}).Recalculate(steps)
	require.Len(t, rows, 3)

	want := []struct {
		notional, margin, cumMargin, cumVolume, cumNotional float64
		avg, liq, safety, protection                        float64
	}{
		{1.0, 0.67, 0.67, 2.0, 1.0, 0.5, 0.8333, 66.7, 66.7},
		{1.21, 0.81, 1.47, 4.4, 2.21, 0.5027, 0.8379, 65.9, 67.6},
		{1.47, 0.98, 2.45, 7.28, 3.68, 0.5056, 0.8427, 65.2, 68.5},
	}

	for i, w := range want {
		r := rows[i]
		assert.Equal(t, i+1, r.Index, "step %d", i+1)
		assert.Equal(t, w.notional, r.AddedNotional, "step %d notional", i+1)
		assert.Equal(t, w.margin, r.AddedMargin, "step %d margin", i+1)
		assert.Equal(t, w.cumMargin, r.CumulativeMargin, "step %d cumulative margin", i+1)
		assert.Equal(t, w.cumVolume, r.CumulativeVolume, "step %d cumulative volume", i+1)
		assert.Equal(t, w.cumNotional, r.CumulativeNotional, "step %d cumulative notional", i+1)
		assert.Equal(t, w.avg, r.AverageEntryPrice, "step %d average", i+1)
		assert.Equal(t, 1.5, r.EffectiveLeverage, "step %d leverage", i+1)
		assert.Equal(t, w.liq, r.LiquidationPrice, "step %d liquidation", i+1)
		assert.Equal(t, StatusSafe, r.Status, "step %d status", i+1)
		assert.True(t, r.Extended)
		assert.Equal(t, w.safety, r.SafetyMarginPct, "step %d safety", i+1)
		assert.Equal(t, w.protection, r.TotalProtectionPct, "step %d protection", i+1)
	}
}

func TestRecalculate_Deterministic(t *testing.T) {
	steps, err := Generate(GenerateParams{
		StartPrice: 0.37, PriceStepPct: 2.5, StartVolume: 3.3, VolumeIncreasePct: 15, Leverage: 3, NumSteps: 40,
	})
	require.NoError(t, err)

	r := NewRecalculator(Options{Extended: true})
	first := r.Recalculate(steps)
	for run := 0; run < 5; run++ {
		assert.Equal(t, first, r.Recalculate(steps), "run %d", run)
	}
}

func TestRecalculate_DoesNotMutateInput(t *testing.T) {
	steps, err := Generate(scenarioParams())
	require.NoError(t, err)
	before := append([]Step(nil), steps...)

	NewRecalculator(Options{Extended: true}).Recalculate(steps)
	assert.Equal(t, before, steps)
}

func TestRecalculate_CumulativeConsistency(t *testing.T) {
	steps, err := Generate(GenerateParams{
		StartPrice: 10, PriceStepPct: 1.5, StartVolume: 1, VolumeIncreasePct: 25, Leverage: 4, NumSteps: 20,
	})
	require.NoError(t, err)
	steps[7].Leverage = 2 // mixed leverage

	rows := NewRecalculator(Options{}).Recalculate(steps)
	require.Len(t, rows, len(steps))

	var margin, volume, notional float64
	for i, s := range steps {
		n := s.VolumeAdded * s.EntryPrice
		margin += n / s.Leverage
		volume += s.VolumeAdded
		notional += n

		assert.Equal(t, i+1, rows[i].Index)
		assert.Equal(t, roundMoney(margin), rows[i].CumulativeMargin, "step %d", i+1)
		assert.Equal(t, roundVolume(volume), rows[i].CumulativeVolume, "step %d", i+1)
		assert.Equal(t, roundMoney(notional), rows[i].CumulativeNotional, "step %d", i+1)
		assert.Equal(t, roundPrice(notional/volume), rows[i].AverageEntryPrice, "step %d", i+1)

		if i > 0 {
			assert.GreaterOrEqual(t, rows[i].CumulativeVolume, rows[i-1].CumulativeVolume)
			assert.GreaterOrEqual(t, rows[i].CumulativeMargin, rows[i-1].CumulativeMargin)
		}
	}
}

func TestRecalculate_ZeroVolume(t *testing.T) {
	steps := []Step{
		{Index: 1, EntryPrice: 1, VolumeAdded: 0, Leverage: 2},
		{Index: 2, EntryPrice: 1.1, VolumeAdded: 0, Leverage: 2},
		{Index: 3, EntryPrice: 1.2, VolumeAdded: 0, Leverage: 2},
	}

	rows := NewRecalculator(Options{Extended: true}).Recalculate(steps)
	for _, r := range rows {
		assert.Equal(t, 0.0, r.AverageEntryPrice)
		assert.True(t, math.IsInf(r.LiquidationPrice, 1))
		assert.Equal(t, 0.0, r.EffectiveLeverage)
		assert.Equal(t, StatusSafe, r.Status)
		assert.True(t, math.IsInf(r.SafetyMarginPct, 1))
	}
}

func TestRecalculate_StatusBoundary(t *testing.T) {
	// Step 1 fixes liquidation at exactly 2.0, later steps add nothing
	steps := []Step{
		{Index: 1, EntryPrice: 1, VolumeAdded: 1, Leverage: 1},
		{Index: 2, EntryPrice: 2, VolumeAdded: 0, Leverage: 1},
		{Index: 3, EntryPrice: 1.9999, VolumeAdded: 0, Leverage: 1},
		{Index: 4, EntryPrice: 2.5, VolumeAdded: 0, Leverage: 1},
	}

	rows := NewRecalculator(Options{}).Recalculate(steps)
	require.Len(t, rows, 4)
	for _, r := range rows {
		assert.Equal(t, 2.0, r.LiquidationPrice)
	}
	assert.Equal(t, StatusSafe, rows[0].Status)
	assert.Equal(t, StatusUnsafe, rows[1].Status, "equality is unsafe")
	assert.Equal(t, StatusSafe, rows[2].Status)
	assert.Equal(t, StatusUnsafe, rows[3].Status)
}

func TestRecalculate_BasicOmitsExtendedColumns(t *testing.T) {
	steps, err := Generate(scenarioParams())
	require.NoError(t, err)

	for _, r := range NewRecalculator(Options{}).Recalculate(steps) {
		assert.False(t, r.Extended)
		assert.Zero(t, r.SafetyMarginPct)
		assert.Zero(t, r.TotalProtectionPct)
	}
}

func TestRecalculate_Empty(t *testing.T) {
	rows := NewRecalculator(Options{Extended: true}).Recalculate(nil)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestRecalculate_RemoveMiddleStep(t *testing.T) {
	steps, err := Generate(GenerateParams{
		StartPrice: 1, PriceStepPct: 5, StartVolume: 1, VolumeIncreasePct: 50, Leverage: 2, NumSteps: 5,
	})
	require.NoError(t, err)

	s := NewSession("t", 0)
	require.NoError(t, s.Reset(steps))
	r := NewRecalculator(Options{Extended: true})
	before := s.Derive(r)

	require.NoError(t, s.Remove(3))
	after := s.Derive(r)
	require.Len(t, after, 4)

	fresh := []Step{steps[0], steps[1], steps[3], steps[4]}
	for i := range fresh {
		fresh[i].Index = i + 1
	}
	assert.Equal(t, r.Recalculate(fresh), after)

	// Rows after the removed one are recomputed, not carried over
	assert.Equal(t, before[1], after[1])
	assert.NotEqual(t, before[3].CumulativeVolume, after[2].CumulativeVolume)
	assert.Equal(t, 3, after[2].Index)
}

func TestRecalculate_NegativeVolumePropagates(t *testing.T) {
	steps := []Step{
		{Index: 1, EntryPrice: 1, VolumeAdded: 4, Leverage: 2},
		{Index: 2, EntryPrice: 1, VolumeAdded: -1, Leverage: 2},
	}
	rows := NewRecalculator(Options{}).Recalculate(steps)
	assert.Equal(t, 3.0, rows[1].CumulativeVolume)
	assert.Equal(t, 1.5, rows[1].CumulativeMargin)
	assert.Less(t, rows[1].CumulativeVolume, rows[0].CumulativeVolume)
}

func TestCheckStep(t *testing.T) {
	ok, msg := CheckStep(DerivedStep{Step: Step{Index: 2, EntryPrice: 1}, LiquidationPrice: 1.5, Status: StatusSafe})
	assert.True(t, ok)
	assert.Contains(t, msg, "Step 2")

	ok, msg = CheckStep(DerivedStep{Step: Step{Index: 1, EntryPrice: 1}, LiquidationPrice: math.Inf(1), Status: StatusSafe})
	assert.True(t, ok)
	assert.Contains(t, msg, "no margin")

	ok, msg = CheckStep(DerivedStep{Step: Step{Index: 4, EntryPrice: 2}, LiquidationPrice: 1.5, Status: StatusUnsafe})
	assert.False(t, ok)
	assert.Contains(t, msg, "Step 4")
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 0.67, roundMoney(2.0/3.0))
	assert.Equal(t, 0.8333, roundPrice(0.5*(1+1/1.5)))
	assert.Equal(t, 66.7, roundPercent(66.666))
	assert.Equal(t, -1.24, roundMoney(-1.235))
	assert.True(t, math.IsInf(roundPrice(math.Inf(1)), 1))
	assert.True(t, math.IsNaN(roundPrice(math.NaN())))
}
