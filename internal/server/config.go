package server

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete server configuration
type Config struct {
	Server   ServerSettings   `hcl:"server,block"`
	Game     GameSettings     `hcl:"game,block"`
	Database DatabaseSettings `hcl:"database,block"`
	Bots     []BotConfig      `hcl:"bot,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// GameSettings contains the table rules applied to every room.
// RebuyAmount omitted or zero falls back to the default; a configured
// server always refills busted humans, disabling the rebuy is only
// possible when constructing a table directly.
type GameSettings struct {
	SmallBlind    int `hcl:"small_blind,optional"`
	BigBlind      int `hcl:"big_blind,optional"`
	StartingChips int `hcl:"starting_chips,optional"`
	RebuyAmount   int `hcl:"rebuy_amount,optional"`
	BotDelayMs    int `hcl:"bot_delay_ms,optional"`
	HandDelayMs   int `hcl:"hand_delay_ms,optional"`
}

// DatabaseSettings locates the account store
type DatabaseSettings struct {
	Path string `hcl:"path,optional"`
}

// BotConfig defines one automated player seated in every room. The
// difficulty tier is read from the name: "easy" and "hard" substrings
// select those tiers, anything else plays the normal game.
type BotConfig struct {
	Name string `hcl:"name,label"`
}

// DefaultConfig returns the default server configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Game: GameSettings{
			SmallBlind:    50,
			BigBlind:      100,
			StartingChips: 10000,
			RebuyAmount:   10000,
			BotDelayMs:    500,
			HandDelayMs:   2000,
		},
		Database: DatabaseSettings{
			Path: "cardroom.db",
		},
		Bots: []BotConfig{
			{Name: "easy-eddie"},
			{Name: "norman"},
			{Name: "hard-harry"},
		},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to
// defaults when the file does not exist
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

	defaults := DefaultConfig()
	if config.Server.Address == "" {
		config.Server.Address = defaults.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = defaults.Server.LogLevel
	}
	if config.Game.SmallBlind == 0 {
		config.Game.SmallBlind = defaults.Game.SmallBlind
	}
	if config.Game.BigBlind == 0 {
		config.Game.BigBlind = defaults.Game.BigBlind
	}
	if config.Game.StartingChips == 0 {
		config.Game.StartingChips = defaults.Game.StartingChips
	}
	if config.Game.RebuyAmount == 0 {
		config.Game.RebuyAmount = defaults.Game.RebuyAmount
	}
	if config.Game.BotDelayMs == 0 {
		config.Game.BotDelayMs = defaults.Game.BotDelayMs
	}
	if config.Game.HandDelayMs == 0 {
		config.Game.HandDelayMs = defaults.Game.HandDelayMs
	}
	if config.Database.Path == "" {
		config.Database.Path = defaults.Database.Path
	}

	return &config, nil
}

// Validate validates the server configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	if c.Game.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive")
	}
	if c.Game.BigBlind <= c.Game.SmallBlind {
		return fmt.Errorf("big blind must be greater than small blind")
	}
	if c.Game.StartingChips < c.Game.BigBlind {
		return fmt.Errorf("starting chips must cover at least the big blind")
	}
	if c.Game.RebuyAmount < 0 {
		return fmt.Errorf("rebuy amount cannot be negative")
	}

	seen := make(map[string]bool)
	for _, bot := range c.Bots {
		name := strings.TrimSpace(bot.Name)
		if name == "" {
			return fmt.Errorf("bot name cannot be empty")
		}
		if seen[name] {
			return fmt.Errorf("duplicate bot name: %s", name)
		}
		seen[name] = true
	}

	return nil
}

// ListenAddress returns the full listen address
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
