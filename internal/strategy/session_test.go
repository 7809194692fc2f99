package strategy

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScenarioSession(t *testing.T, maxSteps int) *Session {
	t.Helper()
	steps, err := Generate(scenarioParams())
	require.NoError(t, err)

	s := NewSession("test", maxSteps)
	require.NoError(t, s.Reset(steps))
	return s
}

func indices(steps []Step) []int {
	out := make([]int, len(steps))
	for i, s := range steps {
		out[i] = s.Index
	}
	return out
}

func TestSession_ResetReindexes(t *testing.T) {
	s := NewSession("test", 0)
	require.NoError(t, s.Reset([]Step{
		{Index: 7, EntryPrice: 1, VolumeAdded: 1, Leverage: 1},
		{Index: 3, EntryPrice: 2, VolumeAdded: 1, Leverage: 1},
	}))
	assert.Equal(t, []int{1, 2}, indices(s.Steps()))
}

func TestSession_StepsReturnsCopy(t *testing.T) {
	s := newScenarioSession(t, 0)
	got := s.Steps()
	got[0].EntryPrice = 999

	assert.Equal(t, 0.5, s.Steps()[0].EntryPrice)
}

func TestSession_EditFields(t *testing.T) {
	s := newScenarioSession(t, 0)

	require.NoError(t, s.SetEntryPrice(2, 0.6))
	require.NoError(t, s.SetVolume(3, 10))
	require.NoError(t, s.SetLeverage(1, 5))

	steps := s.Steps()
	assert.Equal(t, 0.6, steps[1].EntryPrice)
	assert.Equal(t, 10.0, steps[2].VolumeAdded)
	assert.Equal(t, 5.0, steps[0].Leverage)

	// Derived rows follow the edit on the next read
	rows := s.Derive(NewRecalculator(Options{}))
	assert.Equal(t, 0.2, rows[0].AddedMargin)
}

func TestSession_EditValidation(t *testing.T) {
	s := newScenarioSession(t, 0)

	assert.True(t, errors.Is(s.SetEntryPrice(0, 1), ErrStepNotFound))
	assert.True(t, errors.Is(s.SetEntryPrice(4, 1), ErrStepNotFound))
	assert.True(t, errors.Is(s.SetEntryPrice(1, 0), ErrInvalidParameter))
	assert.True(t, errors.Is(s.SetEntryPrice(1, -3), ErrInvalidParameter))
	assert.True(t, errors.Is(s.SetLeverage(1, 0), ErrInvalidParameter))
	assert.True(t, errors.Is(s.SetLeverage(1, math.Inf(1)), ErrInvalidParameter))
	assert.True(t, errors.Is(s.SetVolume(1, math.NaN()), ErrInvalidParameter))

	// Withdrawals are allowed
	require.NoError(t, s.SetVolume(2, -1))
	assert.Equal(t, -1.0, s.Steps()[1].VolumeAdded)
}

func TestSession_InsertAndAppend(t *testing.T) {
	s := newScenarioSession(t, 0)

	require.NoError(t, s.Insert(1, Step{EntryPrice: 0.4, VolumeAdded: 1, Leverage: 2}))
	require.NoError(t, s.Insert(3, Step{EntryPrice: 0.45, VolumeAdded: 1, Leverage: 2}))
	require.NoError(t, s.Append(Step{EntryPrice: 0.6, VolumeAdded: 1, Leverage: 2}))

	steps := s.Steps()
	require.Len(t, steps, 6)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, indices(steps))
	assert.Equal(t, 0.4, steps[0].EntryPrice)
	assert.Equal(t, 0.5, steps[1].EntryPrice)
	assert.Equal(t, 0.45, steps[2].EntryPrice)
	assert.Equal(t, 0.6, steps[5].EntryPrice)

	assert.True(t, errors.Is(s.Insert(0, Step{EntryPrice: 1, Leverage: 1}), ErrStepNotFound))
	assert.True(t, errors.Is(s.Insert(8, Step{EntryPrice: 1, Leverage: 1}), ErrStepNotFound))
	assert.True(t, errors.Is(s.Append(Step{EntryPrice: 1, Leverage: 0}), ErrInvalidParameter))
}

func TestSession_Remove(t *testing.T) {
	s := newScenarioSession(t, 0)

	require.NoError(t, s.Remove(1))
	steps := s.Steps()
	require.Len(t, steps, 2)
	assert.Equal(t, []int{1, 2}, indices(steps))
	assert.Equal(t, 2.4, steps[0].VolumeAdded)

	assert.True(t, errors.Is(s.Remove(3), ErrStepNotFound))

	require.NoError(t, s.Remove(2))
	require.NoError(t, s.Remove(1))
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Derive(NewRecalculator(Options{})))
}

func TestSession_MaxSteps(t *testing.T) {
	s := newScenarioSession(t, 3)

	err := s.Append(Step{EntryPrice: 1, VolumeAdded: 1, Leverage: 1})
	assert.True(t, errors.Is(err, ErrTooManySteps))

	steps, genErr := Generate(GenerateParams{StartPrice: 1, StartVolume: 1, Leverage: 1, NumSteps: 4})
	require.NoError(t, genErr)
	assert.True(t, errors.Is(s.Reset(steps), ErrTooManySteps))
	assert.Equal(t, 3, s.Len(), "failed reset keeps the old sequence")
}
