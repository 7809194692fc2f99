package simulator

import (
	"fmt"
	"strconv"
	"strings"

	"dca-simulator/internal/strategy"
)

// ParseGenerateArgs applies key=value overrides on top of base
func ParseGenerateArgs(base strategy.GenerateParams, args []string) (strategy.GenerateParams, error) {
	p := base
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok {
			return p, fmt.Errorf("expected key=value, got '%s'", arg)
		}

		if strings.ToLower(key) == "steps" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return p, fmt.Errorf("steps: '%s' is not an integer", raw)
			}
			p.NumSteps = n
			continue
		}

		v, err := parseNumber(raw)
		if err != nil {
			return p, fmt.Errorf("%s: %w", key, err)
		}
		switch strings.ToLower(key) {
		case "price":
			p.StartPrice = v
		case "step":
			p.PriceStepPct = v
		case "volume":
			p.StartVolume = v
		case "growth":
			p.VolumeIncreasePct = v
		case "leverage", "lev":
			p.Leverage = v
		default:
			return p, fmt.Errorf("unknown key '%s'", key)
		}
	}
	return p, nil
}

func parseStep(args []string) (strategy.Step, error) {
	if len(args) != 3 {
		return strategy.Step{}, fmt.Errorf("expected 3 values, got %d", len(args))
	}
	var vals [3]float64
	for i, a := range args {
		v, err := parseNumber(a)
		if err != nil {
			return strategy.Step{}, err
		}
		vals[i] = v
	}
	return strategy.Step{EntryPrice: vals[0], VolumeAdded: vals[1], Leverage: vals[2]}, nil
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("step '%s' is not an integer", s)
	}
	return n, nil
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("'%s' is not a number", s)
	}
	return v, nil
}
