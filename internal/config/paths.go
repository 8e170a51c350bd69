package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath is the environment variable for explicit config path
	EnvConfigPath = "INVENTORY_CONFIG"
	// ConfigFileName is the config file name looked for in the working directory
	ConfigFileName = "inventory.yaml"
	// ConfigDirName is the config directory name under XDG and /etc
	ConfigDirName = "inventory"

	userConfigFile = "config.yaml"
)

// SearchPaths returns the config file candidates in priority order. Entries
// whose variables are unset are left out.
func SearchPaths() []string {
	var paths []string
	if path := os.Getenv(EnvConfigPath); path != "" {
		paths = append(paths, path)
	}

	local := ConfigFileName
	if abs, err := filepath.Abs(local); err == nil {
		local = abs
	}
	paths = append(paths, local)

	if dir := userConfigDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, userConfigFile))
	}
	if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", ConfigDirName, userConfigFile))
	}

	return append(paths, filepath.Join("/etc", ConfigDirName, userConfigFile))
}

// FindConfigPath returns the first existing entry of SearchPaths, or "" if
// there is none
func FindConfigPath() string {
	for _, path := range SearchPaths() {
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// DefaultConfigPath returns where a new config file should go: the XDG
// config home, then ~/.config, then the working directory
func DefaultConfigPath() string {
	if dir := userConfigDir(); dir != "" {
		return filepath.Join(dir, userConfigFile)
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", ConfigDirName, userConfigFile)
	}
	return ConfigFileName
}

func userConfigDir() string {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, ConfigDirName)
	}
	return ""
}

// EnsureConfigDir creates the directory that will hold configPath
func EnsureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
