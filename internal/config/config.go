// Package config provides configuration management for the inventory.
//
// The config file says where the database lives, how to log, and which
// inventory policies apply. The database holds the inventory itself.
//
// Config file locations (priority order):
//  1. $INVENTORY_CONFIG
//  2. ./inventory.yaml
//  3. $XDG_CONFIG_HOME/inventory/config.yaml
//  4. ~/.config/inventory/config.yaml
//  5. /etc/inventory/config.yaml
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// EnvLogLevel overrides logging.level
	EnvLogLevel = "LOGLEVEL"
	// EnvDatabasePath overrides database.path
	EnvDatabasePath = "INVENTORY_DB"

	defaultDatabasePath = "./inventory.db"
)

// Load finds and loads the config file, or returns defaults if none found.
// Environment overrides are applied either way.
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		cfg := DefaultConfig()
		cfg.applyEnv()
		return cfg, "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		Database: DatabaseConfig{Path: defaultDatabasePath},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
		Inventory: InventoryConfig{GroupUniqueness: GroupScopeCompany},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Database.Path == "" {
		c.Database.Path = defaultDatabasePath
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format != "json" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stderr"
	}

	// Unknown scopes fall back to the company-wide check
	c.Inventory.GroupUniqueness = ParseGroupScope(string(c.Inventory.GroupUniqueness))
}

// applyEnv applies environment variable overrides
func (c *Config) applyEnv() {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
	if path := os.Getenv(EnvDatabasePath); path != "" {
		c.Database.Path = path
	}
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	return fmt.Sprintf("Database: %s, Log: %s/%s, Group uniqueness: %s",
		c.Database.Path, c.Logging.Level, c.Logging.Format, c.Inventory.GroupUniqueness)
}
