package strategy

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is matched by every generator input error
var ErrInvalidParameter = errors.New("invalid parameter")

// InvalidParameterError names the offending generator input
type InvalidParameterError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Param, e.Value, e.Reason)
}

func (e *InvalidParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// GenerateParams seeds a geometric averaging ladder
type GenerateParams struct {
	StartPrice        float64 `yaml:"start_price"`
	PriceStepPct      float64 `yaml:"price_step_pct"`      // Price change between steps, percent
	StartVolume       float64 `yaml:"start_volume"`
	VolumeIncreasePct float64 `yaml:"volume_increase_pct"` // Volume change between steps, percent
	Leverage          float64 `yaml:"leverage"`            // Same leverage on every step
	NumSteps          int     `yaml:"num_steps"`
}

// Validate checks every parameter against its domain
func (p GenerateParams) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"start_price", p.StartPrice},
		{"price_step_pct", p.PriceStepPct},
		{"start_volume", p.StartVolume},
		{"volume_increase_pct", p.VolumeIncreasePct},
		{"leverage", p.Leverage},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &InvalidParameterError{Param: f.name, Value: f.v, Reason: "must be finite"}
		}
	}

	if p.StartPrice <= 0 {
		return &InvalidParameterError{Param: "start_price", Value: p.StartPrice, Reason: "must be > 0"}
	}
	if p.StartVolume < 0 {
		return &InvalidParameterError{Param: "start_volume", Value: p.StartVolume, Reason: "must be >= 0"}
	}
	if p.Leverage <= 0 {
		return &InvalidParameterError{Param: "leverage", Value: p.Leverage, Reason: "must be > 0"}
	}
	if p.NumSteps < 1 {
		return &InvalidParameterError{Param: "num_steps", Value: float64(p.NumSteps), Reason: "must be >= 1"}
	}
	// At -100% or below the ladder collapses to zero or flips sign
	if p.PriceStepPct <= -100 {
		return &InvalidParameterError{Param: "price_step_pct", Value: p.PriceStepPct, Reason: "must be > -100"}
	}
	if p.VolumeIncreasePct <= -100 {
		return &InvalidParameterError{Param: "volume_increase_pct", Value: p.VolumeIncreasePct, Reason: "must be > -100"}
	}
	return nil
}

// Generate builds NumSteps steps with price and volume growing geometrically.
// Only the emitted volume is rounded, the running volume keeps full precision.
func Generate(p GenerateParams) ([]Step, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	steps := make([]Step, 0, p.NumSteps)
	price := p.StartPrice
	volume := p.StartVolume

	for i := 1; i <= p.NumSteps; i++ {
		steps = append(steps, Step{
			Index:       i,
			EntryPrice:  price,
			VolumeAdded: roundVolume(volume),
			Leverage:    p.Leverage,
		})
		price *= 1 + p.PriceStepPct/100
		volume *= 1 + p.VolumeIncreasePct/100
	}

	return steps, nil
}
