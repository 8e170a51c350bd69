package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseGroupScope(t *testing.T) {
	tests := []struct {
		input string
		want  GroupScope
	}{
		{"company", GroupScopeCompany},
		{"office", GroupScopeOffice},
		{"invalid", GroupScopeCompany}, // Default
		{"", GroupScopeCompany},        // Default
	}

	for _, tt := range tests {
		if got := ParseGroupScope(tt.input); got != tt.want {
			t.Errorf("ParseGroupScope(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestGroupScopePerOffice(t *testing.T) {
	if GroupScopeCompany.PerOffice() {
		t.Error("company scope should not be per office")
	}
	if !GroupScopeOffice.PerOffice() {
		t.Error("office scope should be per office")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Database.Path != "./inventory.db" {
		t.Errorf("Database.Path = %q, want ./inventory.db", cfg.Database.Path)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Inventory.GroupUniqueness != GroupScopeCompany {
		t.Errorf("GroupUniqueness = %s, want %s", cfg.Inventory.GroupUniqueness, GroupScopeCompany)
	}
}

func TestLoadFromPath(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvDatabasePath, "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
database:
  path: /var/lib/inventory/inventory.db
logging:
  level: debug
  format: json
inventory:
  group_uniqueness: office
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, loadedPath, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if loadedPath != path {
		t.Errorf("path = %q, want %q", loadedPath, path)
	}
	if cfg.Database.Path != "/var/lib/inventory/inventory.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want debug/json", cfg.Logging)
	}
	if cfg.Logging.Output != "stderr" {
		t.Errorf("Logging.Output = %q, want stderr (default)", cfg.Logging.Output)
	}
	if cfg.Inventory.GroupUniqueness != GroupScopeOffice {
		t.Errorf("GroupUniqueness = %s, want office", cfg.Inventory.GroupUniqueness)
	}
	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1 (default)", cfg.Version)
	}
}

func TestLoadFromPathDefaultsUnknownValues(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvDatabasePath, "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "logging:\n  format: xml\ninventory:\n  group_uniqueness: galaxy\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
	if cfg.Inventory.GroupUniqueness != GroupScopeCompany {
		t.Errorf("GroupUniqueness = %s, want company", cfg.Inventory.GroupUniqueness)
	}
}

func TestLoadFromPathErrors(t *testing.T) {
	if _, _, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("database: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadFromPath(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvDatabasePath, "/tmp/override.db")

	cfg, path, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if path != "" && filepath.Dir(path) != "/etc/inventory" {
		t.Errorf("unexpected config path %q", path)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Database.Path != "/tmp/override.db" {
		t.Errorf("Database.Path = %q, want /tmp/override.db", cfg.Database.Path)
	}
}

func TestSaveAndReload(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvDatabasePath, "")

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Inventory.GroupUniqueness = GroupScopeOffice

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, _, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if loaded.Inventory.GroupUniqueness != GroupScopeOffice {
		t.Errorf("GroupUniqueness = %s, want office", loaded.Inventory.GroupUniqueness)
	}
}

func TestFindConfigPathEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("version: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfigPath, path)

	if got := FindConfigPath(); got != path {
		t.Errorf("FindConfigPath() = %q, want %q", got, path)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	want := filepath.Join(xdg, "inventory", "config.yaml")
	if got := DefaultConfigPath(); got != want {
		t.Errorf("DefaultConfigPath() = %q, want %q", got, want)
	}
}

func TestSearchPathsOrder(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigPath, filepath.Join(dir, "explicit.yaml"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", filepath.Join(dir, "home"))
	t.Chdir(dir)

	want := []string{
		filepath.Join(dir, "explicit.yaml"),
		filepath.Join(dir, "inventory.yaml"),
		filepath.Join(dir, "xdg", "inventory", "config.yaml"),
		filepath.Join(dir, "home", ".config", "inventory", "config.yaml"),
		"/etc/inventory/config.yaml",
	}
	got := SearchPaths()
	if len(got) != len(want) {
		t.Fatalf("SearchPaths() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SearchPaths()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFindConfigPathSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	if err := os.Mkdir(filepath.Join(dir, ConfigFileName), 0755); err != nil {
		t.Fatal(err)
	}

	if got := FindConfigPath(); got != "" && got != "/etc/inventory/config.yaml" {
		t.Errorf("FindConfigPath() = %q, want no match", got)
	}
}
