package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"dca-simulator/internal/config"
	"dca-simulator/internal/logger"
	"dca-simulator/internal/simulator"
	"dca-simulator/internal/ui"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.System)
	if err != nil {
		log.Fatalf("❌ Failed to build logger: %v", err)
	}
	defer zl.Sync()

	console := ui.NewConsoleUI(nil, cfg.Display.Asset, cfg.Display.Color)
	if cfg.Source == "" {
		console.LogWarning("No config.yaml found, using built-in defaults")
	} else {
		console.LogInfo(fmt.Sprintf("Configuration loaded from %s", cfg.Source))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Unblock the stdin reader on Ctrl+C
	go func() {
		<-ctx.Done()
		os.Stdin.Close()
	}()

	engine := simulator.NewEngine(cfg, console, zl)
	console.PrintBanner(engine.Session.Name, engine.Recalc.Extended())

	// Seed the default session so the first screen is not empty
	if err := engine.Execute("gen"); err != nil {
		console.LogError(err.Error())
	}

	if err := engine.Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		log.Fatalf("❌ Input error: %v", err)
	}
	fmt.Println("👋 Bye")
}
