// Package config loads and validates backtest run configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"stockbt/market"
)

// Config represents a complete backtest run configuration.
type Config struct {
	Account  AccountConfig  `json:"account" yaml:"account"`
	Engine   EngineConfig   `json:"engine" yaml:"engine"`
	Strategy StrategyConfig `json:"strategy" yaml:"strategy"`
	Data     DataConfig     `json:"data" yaml:"data"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	LogLevel string         `json:"log_level" yaml:"log_level"`
}

// AccountConfig contains account initialization parameters.
type AccountConfig struct {
	InitialCash float64 `json:"initial_cash" yaml:"initial_cash"`
}

// EngineConfig contains execution parameters.
type EngineConfig struct {
	CommissionRate float64 `json:"commission_rate" yaml:"commission_rate"`
	MinCashToBuy   float64 `json:"min_cash_to_buy" yaml:"min_cash_to_buy"`
	RiskFreeRate   float64 `json:"risk_free_rate" yaml:"risk_free_rate"`
}

// StrategyConfig contains strategy selection and sizing parameters.
type StrategyConfig struct {
	Name          string  `json:"name" yaml:"name"`
	ShortWindow   int     `json:"short_window,omitempty" yaml:"short_window,omitempty"`
	LongWindow    int     `json:"long_window,omitempty" yaml:"long_window,omitempty"`
	MaxPositions  int     `json:"max_positions" yaml:"max_positions"`
	AllocationPct float64 `json:"allocation_pct,omitempty" yaml:"allocation_pct,omitempty"`
	LotSize       int     `json:"lot_size,omitempty" yaml:"lot_size,omitempty"`
}

// DataConfig selects the bar database and the replay range.
type DataConfig struct {
	DBPath  string   `json:"db_path" yaml:"db_path"`
	Symbols []string `json:"symbols,omitempty" yaml:"symbols,omitempty"`
	Start   string   `json:"start" yaml:"start"` // YYYYMMDD
	End     string   `json:"end" yaml:"end"`     // YYYYMMDD
}

// JournalConfig contains journaling parameters.
type JournalConfig struct {
	Type           string `json:"type" yaml:"type"` // "sqlite", "csv" or "none"
	DBPath         string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	TradesFile     string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	ValuationsFile string `json:"valuations_file,omitempty" yaml:"valuations_file,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Account.InitialCash <= 0 {
		return fmt.Errorf("account initial_cash must be positive, got %v", c.Account.InitialCash)
	}
	if c.Engine.CommissionRate < 0 || c.Engine.CommissionRate >= 1 {
		return fmt.Errorf("engine commission_rate must be in [0, 1), got %v", c.Engine.CommissionRate)
	}
	if c.Strategy.Name == "" {
		return fmt.Errorf("strategy name required")
	}
	if c.Strategy.MaxPositions < 0 {
		return fmt.Errorf("strategy max_positions must not be negative, got %d", c.Strategy.MaxPositions)
	}
	if c.Strategy.AllocationPct < 0 || c.Strategy.AllocationPct > 1 {
		return fmt.Errorf("strategy allocation_pct must be in [0, 1], got %v", c.Strategy.AllocationPct)
	}
	if c.Data.DBPath == "" {
		return fmt.Errorf("data db_path required")
	}
	if c.Data.Start == "" || c.Data.End == "" {
		return fmt.Errorf("data start and end dates required")
	}
	if _, err := market.ParseDate(c.Data.Start); err != nil {
		return err
	}
	if _, err := market.ParseDate(c.Data.End); err != nil {
		return err
	}
	if c.Data.Start > c.Data.End {
		return fmt.Errorf("data start %s is after end %s", c.Data.Start, c.Data.End)
	}

	switch c.Journal.Type {
	case "", "none":
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for sqlite type")
		}
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.ValuationsFile == "" {
			return fmt.Errorf("journal trades_file and valuations_file required for csv type")
		}
	default:
		return fmt.Errorf("unknown journal type %q", c.Journal.Type)
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			InitialCash: 100_000,
		},
		Engine: EngineConfig{
			CommissionRate: 0.0003,
			MinCashToBuy:   1000,
			RiskFreeRate:   0.03,
		},
		Strategy: StrategyConfig{
			Name:         "simple-ma",
			ShortWindow:  5,
			LongWindow:   20,
			MaxPositions: 5,
			LotSize:      100,
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./backtests.sqlite",
		},
		LogLevel: "info",
	}
}
