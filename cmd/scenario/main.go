package main

import (
	"fmt"
	"log"

	"dca-simulator/internal/analysis"
	"dca-simulator/internal/strategy"
	"dca-simulator/internal/ui"
)

// Prints the reference three-step ladder used by the regression tests
func main() {
	fmt.Println("🧪 Reference scenario: 0.5$ +1%/step, 2.0 +20%/step, x1.5, 3 steps")

	steps, err := strategy.Generate(strategy.GenerateParams{
		StartPrice:        0.5,
		PriceStepPct:      1.0,
		StartVolume:       2.0,
		VolumeIncreasePct: 20.0,
		Leverage:          1.5,
		NumSteps:          3,
	})
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	rows := strategy.NewRecalculator(strategy.Options{Extended: true}).Recalculate(steps)

	console := ui.NewConsoleUI(nil, "LAZ", true)
	console.PrintTable(rows, true)
	if s, ok := analysis.Summarize(rows); ok {
		console.PrintSummary(s)
	}
}
