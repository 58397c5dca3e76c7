package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Routes.Dir != DefaultRoutesDir {
		t.Errorf("Routes.Dir = %q, want %q", cfg.Routes.Dir, DefaultRoutesDir)
	}
	if cfg.Version != "0.1.0" {
		t.Errorf("Version = %q, want %q", cfg.Version, "0.1.0")
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	// Test loading non-existent config
	_, err := Load(tmpDir)
	if err == nil {
		t.Error("Expected error for missing config")
	}

	// Create a config file
	configPath := filepath.Join(tmpDir, ConfigFileName)
	configJSON := `{
  "name": "travelapp",
  "routes": {
    "dir": "app/screens"
  },
  "fallback": "not-found",
  "links": {
    "schemes": ["travelapp"],
    "domains": ["links.travelapp.example"],
    "appId": "TEAM123.com.example.travelapp"
  }
}
`
	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	// Load the config
	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Name != "travelapp" {
		t.Errorf("Name = %q, want %q", cfg.Name, "travelapp")
	}
	if cfg.Fallback != "not-found" {
		t.Errorf("Fallback = %q, want %q", cfg.Fallback, "not-found")
	}
	if len(cfg.Links.Schemes) != 1 || cfg.Links.Schemes[0] != "travelapp" {
		t.Errorf("Links.Schemes = %v, want [travelapp]", cfg.Links.Schemes)
	}
	if cfg.Links.AppID != "TEAM123.com.example.travelapp" {
		t.Errorf("Links.AppID = %q", cfg.Links.AppID)
	}
	if cfg.Path() != configPath {
		t.Errorf("Path() = %q, want %q", cfg.Path(), configPath)
	}
	if cfg.Dir() != tmpDir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), tmpDir)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(tmpDir)
	if err == nil {
		t.Fatal("Expected error for invalid JSON")
	}
	if !strings.Contains(err.Error(), "W061") {
		t.Errorf("error = %v, want W061", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	// Empty config gets the default routes dir.
	if err := os.WriteFile(configPath, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Routes.Dir != DefaultRoutesDir {
		t.Errorf("Routes.Dir = %q, want default %q", cfg.Routes.Dir, DefaultRoutesDir)
	}

	// A manifest-only config does not get a routes dir forced on it.
	manifestJSON := `{"routes": {"manifest": "routes.yaml"}}`
	if err := os.WriteFile(configPath, []byte(manifestJSON), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Routes.Dir != "" {
		t.Errorf("Routes.Dir = %q, want empty for manifest project", cfg.Routes.Dir)
	}
	if got := cfg.ManifestPath(); got != filepath.Join(tmpDir, "routes.yaml") {
		t.Errorf("ManifestPath() = %q", got)
	}
}

func TestSaveAndReload(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	cfg := New()
	cfg.Name = "demo"
	cfg.Fallback = "not-found"
	cfg.Links.Schemes = []string{"demo"}
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	loaded, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Name != "demo" || loaded.Fallback != "not-found" {
		t.Errorf("reloaded config = %+v", loaded)
	}
	if len(loaded.Links.Schemes) != 1 || loaded.Links.Schemes[0] != "demo" {
		t.Errorf("Links.Schemes = %v", loaded.Links.Schemes)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"good links", func(c *Config) {
			c.Links.Schemes = []string{"myapp"}
			c.Links.Domains = []string{"links.example.com"}
		}, false},
		{"bad scheme", func(c *Config) {
			c.Links.Schemes = []string{"My App"}
		}, true},
		{"scheme starts with digit", func(c *Config) {
			c.Links.Schemes = []string{"1app"}
		}, true},
		{"bad domain", func(c *Config) {
			c.Links.Domains = []string{"https://links.example.com"}
		}, true},
		{"package without fingerprints", func(c *Config) {
			c.Links.Package = "com.example.app"
		}, true},
		{"package with fingerprints", func(c *Config) {
			c.Links.Package = "com.example.app"
			c.Links.Fingerprints = []string{"AA:BB"}
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFindProjectRoot(t *testing.T) {
	tmpDir := t.TempDir()
	nested := filepath.Join(tmpDir, "a", "b", "c")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	root, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot error: %v", err)
	}
	// Resolve symlinks before comparing; t.TempDir may live behind one.
	wantRoot, _ := filepath.EvalSymlinks(tmpDir)
	gotRoot, _ := filepath.EvalSymlinks(root)
	if gotRoot != wantRoot {
		t.Errorf("FindProjectRoot = %q, want %q", gotRoot, wantRoot)
	}

	if _, err := FindProjectRoot(os.TempDir()); err == nil {
		t.Skip("unexpected wayfind.json above the temp dir")
	}
}

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()
	if Exists(tmpDir) {
		t.Error("Exists = true for empty dir")
	}
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if !Exists(tmpDir) {
		t.Error("Exists = false after writing config")
	}
}
