// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jacklambert122/NursingSalaryByStateComparison/core/compare"
	"github.com/jacklambert122/NursingSalaryByStateComparison/core/tax"
	"github.com/jacklambert122/NursingSalaryByStateComparison/internal/errors"
	"github.com/jacklambert122/NursingSalaryByStateComparison/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" validate:"required"`

	// Brackets selects the jurisdiction tables
	Brackets BracketsConfig `json:"brackets"`

	// Sweep is the default hourly range for sweeps and rate tables
	Sweep SweepConfig `json:"sweep"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// BracketsConfig selects bracket tables
type BracketsConfig struct {
	// File is an HCL tables file; empty uses the built-in tables
	File string `json:"file,omitempty"`

	// Reference is the jurisdiction others are compared against
	Reference string `json:"reference" validate:"required"`
}

// SweepConfig is an hourly wage range, end exclusive
type SweepConfig struct {
	Start decimal.Decimal `json:"start"`
	End   decimal.Decimal `json:"end"`
	Step  decimal.Decimal `json:"step"`
}

// Range converts the sweep settings into a compare.Range
func (s SweepConfig) Range() compare.Range {
	return compare.Range{Start: s.Start, End: s.End, Step: s.Step}
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// Format is the default output format
	Format string `json:"format" validate:"oneof=cli json"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr" validate:"required,hostname_port"`
}

// DefaultPath returns $HOME/.statetax.json
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".statetax.json")
}

// Default returns a default configuration
func Default() *Config {
	r := compare.DefaultRange()
	return &Config{
		Version: "1.0",
		Brackets: BracketsConfig{
			Reference: tax.DefaultReference,
		},
		Sweep: SweepConfig{
			Start: r.Start,
			End:   r.End,
			Step:  r.Step,
		},
		Output: OutputConfig{
			Format: "cli",
		},
		Server: ServerConfig{
			Addr: "localhost:8080",
		},
		Logging: logging.DefaultConfig(),
	}
}

var validate = validator.New()

// Validate checks field constraints and the sweep range
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Config("invalid configuration", err)
	}
	if err := c.Sweep.Range().Validate(); err != nil {
		return errors.Config("invalid sweep range", err)
	}
	return nil
}

// Load loads configuration from a file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("failed to read config", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Parsing("failed to parse config "+path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Registry builds the jurisdiction registry the config selects.
func (c *Config) Registry(load func(path string) (*tax.Registry, error)) (*tax.Registry, error) {
	if c.Brackets.File == "" {
		return tax.DefaultRegistry(), nil
	}
	return load(c.Brackets.File)
}

// Reference returns the configured reference jurisdiction's name in reg.
// Only comparisons that fall back to the reference need it to exist.
func (c *Config) Reference(reg *tax.Registry) (string, error) {
	j, err := reg.Get(c.Brackets.Reference)
	if err != nil {
		return "", errors.Config("reference jurisdiction not in bracket tables", err)
	}
	return j.Name, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
