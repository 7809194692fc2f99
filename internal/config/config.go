package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"dca-simulator/internal/strategy"
)

// AppConfig holds the entire application configuration
type AppConfig struct {
	Generator strategy.GenerateParams `yaml:"generator"`
	Limits    LimitsConfig            `yaml:"limits"`
	Display   DisplayConfig           `yaml:"display"`
	System    SystemConfig            `yaml:"system"`

	// Path the yaml was read from, empty when defaults are used
	Source string `yaml:"-"`
}

type LimitsConfig struct {
	MinSteps int `yaml:"min_steps"`
	MaxSteps int `yaml:"max_steps"`
}

type DisplayConfig struct {
	Extended bool   `yaml:"extended"` // Safety margin and total protection columns
	Color    bool   `yaml:"color"`
	Asset    string `yaml:"asset"` // Label for volume columns
}

type SystemConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // json or console
	LogOutput string `yaml:"log_output"` // zap output path, e.g. stderr or a file
}

// Default mirrors the generator sidebar of the original calculator
func Default() *AppConfig {
	return &AppConfig{
		Generator: strategy.GenerateParams{
			StartPrice:        0.5,
			PriceStepPct:      1.0,
			StartVolume:       2.0,
			VolumeIncreasePct: 20.0,
			Leverage:          1.5,
			NumSteps:          20,
		},
		Limits: LimitsConfig{MinSteps: 1, MaxSteps: 100},
		Display: DisplayConfig{
			Extended: true,
			Color:    true,
			Asset:    "LAZ",
		},
		System: SystemConfig{
			LogLevel:  "info",
			LogFormat: "console",
			LogOutput: "stderr",
		},
	}
}

// SearchPaths lists where LoadConfig looks for config.yaml
func SearchPaths() []string {
	paths := []string{}
	if p := os.Getenv("SIM_CONFIG"); p != "" {
		paths = append(paths, p)
	}
	return append(paths, "config.yaml", "../../config.yaml")
}

// LoadConfig reads .env and the first config.yaml found, falling back to defaults
func LoadConfig() (*AppConfig, error) {
	// 1. .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	// 2. First readable yaml wins
	cfg := Default()
	for _, path := range SearchPaths() {
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if cfg, err = Parse(data); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		cfg.Source = path
		break
	}

	// 3. Env overrides
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse overlays yaml onto the defaults
func Parse(data []byte) (*AppConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("SIM_LOG_LEVEL"); v != "" {
		cfg.System.LogLevel = v
	}
	if v := os.Getenv("SIM_EXTENDED"); v != "" {
		cfg.Display.Extended = parseBool(v)
	}
	if v := os.Getenv("SIM_NO_COLOR"); v != "" && parseBool(v) {
		cfg.Display.Color = false
	}
	if v := os.Getenv("SIM_ASSET"); v != "" {
		cfg.Display.Asset = v
	}
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// Validate rejects settings the simulator cannot run with
func (c *AppConfig) Validate() error {
	if c.Limits.MinSteps < 1 {
		return fmt.Errorf("limits.min_steps must be >= 1, got %d", c.Limits.MinSteps)
	}
	if c.Limits.MaxSteps < c.Limits.MinSteps {
		return fmt.Errorf("limits.max_steps (%d) must be >= limits.min_steps (%d)", c.Limits.MaxSteps, c.Limits.MinSteps)
	}
	if err := c.Generator.Validate(); err != nil {
		return fmt.Errorf("generator defaults: %w", err)
	}
	if err := c.CheckStepCount(c.Generator.NumSteps); err != nil {
		return fmt.Errorf("generator defaults: %w", err)
	}
	switch strings.ToLower(c.System.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("system.log_level must be debug, info, warn or error, got '%s'", c.System.LogLevel)
	}
	if c.System.LogFormat != "json" && c.System.LogFormat != "console" {
		return fmt.Errorf("system.log_format must be 'json' or 'console', got '%s'", c.System.LogFormat)
	}
	return nil
}

// CheckStepCount enforces the configured generator range
func (c *AppConfig) CheckStepCount(n int) error {
	if n < c.Limits.MinSteps || n > c.Limits.MaxSteps {
		return fmt.Errorf("num_steps must be between %d and %d, got %d", c.Limits.MinSteps, c.Limits.MaxSteps, n)
	}
	return nil
}
