package main

import (
	"fmt"
	"os"

	"dca-simulator/internal/config"
)

// Shows which config file and env overrides the simulator would pick up
func main() {
	cwd, _ := os.Getwd()
	fmt.Printf("📂 CWD: %s\n", cwd)

	for _, p := range config.SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			fmt.Printf("   FOUND %s\n", p)
		} else {
			fmt.Printf("   missing %s\n", p)
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("❌ Config invalid: %v\n", err)
		os.Exit(1)
	}

	src := cfg.Source
	if src == "" {
		src = "[defaults]"
	}
	fmt.Printf("✅ Loaded %s\n", src)
	g := cfg.Generator
	fmt.Printf("   Generator: price=%.4f step=%.2f%% volume=%.2f growth=%.2f%% leverage=%.2f steps=%d\n",
		g.StartPrice, g.PriceStepPct, g.StartVolume, g.VolumeIncreasePct, g.Leverage, g.NumSteps)
	fmt.Printf("   Limits: %d..%d steps\n", cfg.Limits.MinSteps, cfg.Limits.MaxSteps)
	fmt.Printf("   Display: extended=%v color=%v asset=%s\n", cfg.Display.Extended, cfg.Display.Color, cfg.Display.Asset)
	fmt.Printf("   Logging: level=%s format=%s output=%s\n", cfg.System.LogLevel, cfg.System.LogFormat, cfg.System.LogOutput)
}
