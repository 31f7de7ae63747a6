// Package config loads fiberna settings from an optional config file.
//
// Precedence (lowest to highest): defaults < config file < command-line flags.
// Environment variables are not consulted.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/roach88/fiberna/internal/store"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "fiberna.toml"

// Config is the full set of fiberna settings.
type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Charts  ChartsConfig  `mapstructure:"charts"`

	// File is the config file that was read, or "" when defaults were used.
	File string `mapstructure:"-"`
}

// StoreConfig selects the record store.
type StoreConfig struct {
	Path    string `mapstructure:"path"`
	Backend string `mapstructure:"backend"` // csv or sqlite
}

// CatalogConfig points at a material catalog file. Empty means built-in.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// ChartsConfig configures chart output.
type ChartsConfig struct {
	Dir string `mapstructure:"dir"`
}

// SetDefaults configures default values for all options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("store.path", store.DefaultCSVPath)
	v.SetDefault("store.backend", string(store.BackendCSV))
	v.SetDefault("catalog.path", "")
	v.SetDefault("charts.dir", ".")
}

// LoadWithViper unmarshals and validates the settings held by v.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.resolvePaths(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads settings from path. With an empty path it looks for
// DefaultFile in dir, and uses defaults alone when that file does not exist.
// An explicit path that cannot be read is an error.
// Relative paths in the file are resolved against the file's directory.
func Load(path, dir string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if path == "" {
		candidate := filepath.Join(dir, DefaultFile)
		if _, err := os.Stat(candidate); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return LoadWithViper(v)
			}
			return nil, fmt.Errorf("stat config file %s: %w", candidate, err)
		}
		path = candidate
	}

	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("toml")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return LoadWithViper(v)
}

// resolvePaths makes relative paths set in the config file relative to the
// file's directory. Defaults and flag overrides stay relative to the working
// directory.
func (c *Config) resolvePaths(v *viper.Viper) {
	if c.File == "" {
		return
	}
	base := filepath.Dir(c.File)
	for key, p := range map[string]*string{
		"store.path":   &c.Store.Path,
		"catalog.path": &c.Catalog.Path,
		"charts.dir":   &c.Charts.Dir,
	} {
		if !v.InConfig(key) || strings.TrimSpace(*p) == "" || filepath.IsAbs(*p) {
			continue
		}
		*p = filepath.Join(base, *p)
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Store.Path) == "" {
		return errors.New("store.path cannot be empty")
	}
	if _, err := store.ParseBackend(c.Store.Backend); err != nil {
		return fmt.Errorf("store.backend: %w", err)
	}
	if strings.TrimSpace(c.Charts.Dir) == "" {
		return errors.New("charts.dir cannot be empty (use \".\" for the working directory)")
	}
	return nil
}

// Overrides holds command-line values that take precedence over the file.
// Empty fields leave the file value in place.
type Overrides struct {
	StorePath   string
	Backend     string
	CatalogPath string
}

// Apply merges o into c and re-validates.
func (c *Config) Apply(o Overrides) error {
	if o.StorePath != "" {
		c.Store.Path = o.StorePath
	}
	if o.Backend != "" {
		c.Store.Backend = o.Backend
	}
	if o.CatalogPath != "" {
		c.Catalog.Path = o.CatalogPath
	}
	return c.Validate()
}

// ChartPath returns the path of a chart file inside the charts directory.
// Absolute names are returned unchanged.
func (c *Config) ChartPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Charts.Dir, name)
}
