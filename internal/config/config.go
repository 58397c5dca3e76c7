package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/wayfind-dev/wayfind/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "wayfind.json"

	// DefaultRoutesDir is the default screens directory scanned for
	// routes.
	DefaultRoutesDir = "app/screens"
)

// Config represents the complete wayfind.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Version is the project version.
	Version string `json:"version,omitempty"`

	// Routes configures where the route table comes from.
	Routes RoutesConfig `json:"routes,omitempty"`

	// Fallback is the route id opened when a path matches nothing,
	// typically a not-found screen.
	Fallback string `json:"fallback,omitempty"`

	// Links configures deep linking: accepted schemes and domains plus
	// the app identities for the site-association files.
	Links LinksConfig `json:"links,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RoutesConfig selects the route table source. When both a directory
// and a manifest are set, the manifest wins; a directory alone means
// file-based discovery.
type RoutesConfig struct {
	// Dir is the screens directory scanned for route files.
	Dir string `json:"dir,omitempty"`

	// Manifest is the path to a routes.yaml or routes.json manifest.
	Manifest string `json:"manifest,omitempty"`
}

// LinksConfig contains deep-link settings.
type LinksConfig struct {
	// Schemes are the custom URL schemes the app claims, e.g. "myapp".
	Schemes []string `json:"schemes,omitempty"`

	// Domains are the associated HTTPS domains for universal links,
	// e.g. "links.example.com".
	Domains []string `json:"domains,omitempty"`

	// AppID is the Apple app identifier, "TEAMID.com.example.app".
	AppID string `json:"appId,omitempty"`

	// Package is the Android application id, "com.example.app".
	Package string `json:"package,omitempty"`

	// Fingerprints are SHA-256 signing certificate fingerprints for the
	// Android app.
	Fingerprints []string `json:"fingerprints,omitempty"`

	// Publish configures where `wayfind links publish` uploads the
	// association files.
	Publish PublishConfig `json:"publish,omitempty"`
}

// PublishConfig contains association-file upload settings.
type PublishConfig struct {
	// Bucket is the S3 bucket fronting the link domain.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is the key prefix inside the bucket ("" for the root).
	Prefix string `json:"prefix,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Version: "0.1.0",
		Routes: RoutesConfig{
			Dir: DefaultRoutesDir,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for wayfind.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("W060").
				WithDetail("No wayfind.json found in " + filepath.Dir(path)).
				WithSuggestion("Run 'wayfind init' to create a new project or create wayfind.json manually")
		}
		return nil, errors.New("W061").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("W061").
			WithDetail("Failed to parse wayfind.json: " + err.Error()).
			WithSuggestion("Check that wayfind.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("W061").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("W061").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Routes.Dir == "" && c.Routes.Manifest == "" {
		c.Routes.Dir = DefaultRoutesDir
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	for _, scheme := range c.Links.Schemes {
		if !isValidScheme(scheme) {
			return errors.New("W062").
				WithDetail("Invalid URL scheme '" + scheme + "'").
				WithSuggestion("Schemes are lowercase letters, digits, '+', '-' and '.', starting with a letter")
		}
	}
	for _, domain := range c.Links.Domains {
		if domain == "" || strings.ContainsAny(domain, "/ ") {
			return errors.New("W062").
				WithDetail("Invalid associated domain '" + domain + "'").
				WithSuggestion("Domains are bare host names such as links.example.com")
		}
	}
	if c.Links.Package != "" && len(c.Links.Fingerprints) == 0 {
		return errors.New("W062").
			WithDetail("links.package is set but links.fingerprints is empty").
			WithSuggestion("assetlinks.json requires at least one SHA-256 certificate fingerprint")
	}
	return nil
}

// RoutesPath returns the absolute path to the routes directory, or ""
// when the project uses a manifest instead.
func (c *Config) RoutesPath() string {
	if c.Routes.Dir == "" {
		return ""
	}
	if filepath.IsAbs(c.Routes.Dir) {
		return c.Routes.Dir
	}
	return filepath.Join(c.Dir(), c.Routes.Dir)
}

// ManifestPath returns the absolute path to the route manifest, or ""
// when the project scans a directory instead.
func (c *Config) ManifestPath() string {
	if c.Routes.Manifest == "" {
		return ""
	}
	if filepath.IsAbs(c.Routes.Manifest) {
		return c.Routes.Manifest
	}
	return filepath.Join(c.Dir(), c.Routes.Manifest)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing wayfind.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("W060").
				WithDetail("No wayfind.json found in " + startDir + " or any parent directory").
				WithSuggestion("Run 'wayfind init' to create a new project")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}

// isValidScheme reports whether s is a well-formed URL scheme.
func isValidScheme(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
