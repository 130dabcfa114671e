package simulator

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete simulation configuration.
type Config struct {
	Simulation Settings       `hcl:"simulation,block"`
	Players    []PlayerConfig `hcl:"player,block"`
}

// Settings contains run-level configuration.
type Settings struct {
	Hands      int    `hcl:"hands,optional"`
	Tables     int    `hcl:"tables,optional"`
	Seed       int64  `hcl:"seed,optional"`
	SmallBlind int    `hcl:"small_blind,optional"`
	BigBlind   int    `hcl:"big_blind,optional"`
	LogLevel   string `hcl:"log_level,optional"`
}

// PlayerConfig seats one strategy at every table.
type PlayerConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy"`
	BuyIn    int    `hcl:"buy_in,optional"`
}

// DefaultConfig returns a playable default: four baseline strategies at
// a single 5/10 table.
func DefaultConfig() *Config {
	return &Config{
		Simulation: Settings{
			Hands:      1000,
			Tables:     1,
			Seed:       1,
			SmallBlind: 5,
			BigBlind:   10,
			LogLevel:   "info",
		},
		Players: []PlayerConfig{
			{Name: "caller", Strategy: "caller", BuyIn: 1000},
			{Name: "folder", Strategy: "folder", BuyIn: 1000},
			{Name: "raiser", Strategy: "raiser", BuyIn: 1000},
			{Name: "random", Strategy: "random", BuyIn: 1000},
		},
	}
}

// LoadConfig loads simulation configuration from an HCL file. A missing
// file yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Simulation.Hands == 0 {
		config.Simulation.Hands = 1000
	}
	if config.Simulation.Tables == 0 {
		config.Simulation.Tables = 1
	}
	if config.Simulation.Seed == 0 {
		config.Simulation.Seed = 1
	}
	if config.Simulation.SmallBlind == 0 {
		config.Simulation.SmallBlind = 5
	}
	if config.Simulation.BigBlind == 0 {
		config.Simulation.BigBlind = config.Simulation.SmallBlind * 2
	}
	if config.Simulation.LogLevel == "" {
		config.Simulation.LogLevel = "info"
	}
	for i := range config.Players {
		if config.Players[i].BuyIn == 0 {
			config.Players[i].BuyIn = config.Simulation.BigBlind * 100
		}
	}

	return &config, nil
}

// Validate checks the configuration for playability.
func (c *Config) Validate() error {
	if c.Simulation.Hands <= 0 {
		return fmt.Errorf("hands must be positive")
	}
	if c.Simulation.Tables <= 0 {
		return fmt.Errorf("tables must be positive")
	}
	if c.Simulation.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive")
	}
	if c.Simulation.BigBlind < c.Simulation.SmallBlind {
		return fmt.Errorf("big blind must be at least the small blind")
	}
	if len(c.Players) < 2 {
		return fmt.Errorf("at least two players must be configured")
	}

	seen := make(map[string]bool)
	for _, p := range c.Players {
		if seen[p.Name] {
			return fmt.Errorf("player %s: duplicate name", p.Name)
		}
		seen[p.Name] = true
		if !validStrategies[p.Strategy] {
			return fmt.Errorf("player %s: invalid strategy %s", p.Name, p.Strategy)
		}
		if p.BuyIn < c.Simulation.BigBlind {
			return fmt.Errorf("player %s: buy-in %d cannot cover the big blind", p.Name, p.BuyIn)
		}
	}

	return nil
}
