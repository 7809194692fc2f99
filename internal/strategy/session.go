package strategy

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrStepNotFound = errors.New("step not found")
	ErrTooManySteps = errors.New("too many steps")
)

// Session holds the live step sequence of one what-if scenario.
// Indices are always 1..n in sequence order.
type Session struct {
	Name     string
	MaxSteps int // 0 means unbounded

	steps []Step
}

// NewSession creates an empty session
func NewSession(name string, maxSteps int) *Session {
	return &Session{Name: name, MaxSteps: maxSteps}
}

// Reset replaces the whole sequence, typically with Generate output
func (s *Session) Reset(steps []Step) error {
	if s.MaxSteps > 0 && len(steps) > s.MaxSteps {
		return fmt.Errorf("%w: %d > %d", ErrTooManySteps, len(steps), s.MaxSteps)
	}
	s.steps = append(make([]Step, 0, len(steps)), steps...)
	s.reindex()
	return nil
}

// Steps returns a copy of the current sequence
func (s *Session) Steps() []Step {
	return append([]Step(nil), s.steps...)
}

func (s *Session) Len() int {
	return len(s.steps)
}

// Derive recomputes the full table from the current steps
func (s *Session) Derive(r *Recalculator) []DerivedStep {
	return r.Recalculate(s.steps)
}

// SetEntryPrice edits the price of a 1-based step
func (s *Session) SetEntryPrice(index int, v float64) error {
	if err := checkPositive("entry_price", v); err != nil {
		return err
	}
	return s.edit(index, func(st *Step) { st.EntryPrice = v })
}

// SetVolume edits the added volume. Negative values are accepted as withdrawals.
func (s *Session) SetVolume(index int, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InvalidParameterError{Param: "volume_added", Value: v, Reason: "must be finite"}
	}
	return s.edit(index, func(st *Step) { st.VolumeAdded = v })
}

// SetLeverage edits the leverage of a 1-based step
func (s *Session) SetLeverage(index int, v float64) error {
	if err := checkPositive("leverage", v); err != nil {
		return err
	}
	return s.edit(index, func(st *Step) { st.Leverage = v })
}

// Append adds a step at the end
func (s *Session) Append(st Step) error {
	return s.Insert(len(s.steps)+1, st)
}

// Insert places st before the 1-based position at; at == Len()+1 appends
func (s *Session) Insert(at int, st Step) error {
	if at < 1 || at > len(s.steps)+1 {
		return fmt.Errorf("%w: insert position %d", ErrStepNotFound, at)
	}
	if s.MaxSteps > 0 && len(s.steps) >= s.MaxSteps {
		return fmt.Errorf("%w: limit is %d", ErrTooManySteps, s.MaxSteps)
	}
	if err := validateRow(st); err != nil {
		return err
	}

	s.steps = append(s.steps, Step{})
	copy(s.steps[at:], s.steps[at-1:])
	s.steps[at-1] = st
	s.reindex()
	return nil
}

// Remove deletes the 1-based step and renumbers the rest
func (s *Session) Remove(index int) error {
	if index < 1 || index > len(s.steps) {
		return fmt.Errorf("%w: %d", ErrStepNotFound, index)
	}
	s.steps = append(s.steps[:index-1], s.steps[index:]...)
	s.reindex()
	return nil
}

func (s *Session) edit(index int, fn func(*Step)) error {
	if index < 1 || index > len(s.steps) {
		return fmt.Errorf("%w: %d", ErrStepNotFound, index)
	}
	fn(&s.steps[index-1])
	return nil
}

func (s *Session) reindex() {
	for i := range s.steps {
		s.steps[i].Index = i + 1
	}
}

func validateRow(st Step) error {
	if err := checkPositive("entry_price", st.EntryPrice); err != nil {
		return err
	}
	if err := checkPositive("leverage", st.Leverage); err != nil {
		return err
	}
	if math.IsNaN(st.VolumeAdded) || math.IsInf(st.VolumeAdded, 0) {
		return &InvalidParameterError{Param: "volume_added", Value: st.VolumeAdded, Reason: "must be finite"}
	}
	return nil
}

func checkPositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return &InvalidParameterError{Param: name, Value: v, Reason: "must be a finite number > 0"}
	}
	return nil
}
