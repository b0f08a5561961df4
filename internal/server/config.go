package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lockhart/holdem/internal/game"
)

// Config is the complete server configuration.
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Tables []TableConfig  `hcl:"table,block"`
}

// ServerSettings contains server-level configuration.
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// TableConfig defines one table.
type TableConfig struct {
	Name              string `hcl:"name,label"`
	SmallBlind        int    `hcl:"small_blind"`
	BigBlind          int    `hcl:"big_blind"`
	DefaultChips      int    `hcl:"default_chips,optional"`
	Mode              string `hcl:"mode,optional"`
	BurnCards         *bool  `hcl:"burn_cards,optional"`
	DecisionTimeoutMS int    `hcl:"decision_timeout_ms,optional"`
}

// DefaultConfig returns a single-table cash game on localhost.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Tables: []TableConfig{
			{
				Name:       "main",
				SmallBlind: 10,
				BigBlind:   20,
			},
		},
	}
}

// Load reads HCL configuration from a file, falling back to defaults
// if the file does not exist.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %s", filename, diags.Error())
	}

	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("decoding %s: %s", filename, diags.Error())
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if len(cfg.Tables) == 0 {
		cfg.Tables = DefaultConfig().Tables
	}
	return &cfg, nil
}

// Addr returns the listen address.
func (s ServerSettings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Address, s.Port)
}

// GameConfig converts a table block into engine rules.
func (tc TableConfig) GameConfig() (game.Config, error) {
	mode, err := game.ParseMode(tc.Mode)
	if err != nil {
		return game.Config{}, err
	}

	cfg := game.DefaultConfig()
	cfg.SmallBlind = tc.SmallBlind
	cfg.BigBlind = tc.BigBlind
	cfg.Mode = mode
	if tc.DefaultChips > 0 {
		cfg.DefaultChips = tc.DefaultChips
	}
	if tc.BurnCards != nil {
		cfg.BurnCards = *tc.BurnCards
	}
	if tc.DecisionTimeoutMS > 0 {
		cfg.DecisionTimeout = time.Duration(tc.DecisionTimeoutMS) * time.Millisecond
	}
	return cfg, cfg.Validate()
}
