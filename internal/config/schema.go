package config

// Config is the root configuration structure
type Config struct {
	Version   int             `yaml:"version"`
	Database  DatabaseConfig  `yaml:"database"`
	Logging   LoggingConfig   `yaml:"logging"`
	Inventory InventoryConfig `yaml:"inventory"`
}

// DatabaseConfig locates the SQLite database
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig controls the zap logger
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
	Output string `yaml:"output"` // stderr, stdout, or a file path
}

// InventoryConfig holds inventory rules that are a policy choice
type InventoryConfig struct {
	// GroupUniqueness scopes the duplicate check add-group performs
	// before writing. The store always enforces (name, company, office).
	GroupUniqueness GroupScope `yaml:"group_uniqueness"`
}
