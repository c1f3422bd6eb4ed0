package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/iniget/iniget/internal/inifile"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML settings file > Defaults
type Config struct {
	// The lookup target is only ever supplied on the command line.
	FilePath string `yaml:"-"`
	Section  string `yaml:"-"`
	Key      string `yaml:"-"`

	TopSection string `yaml:"top_section"`
	Fallback   string `yaml:"fallback"`
	Verbose    bool   `yaml:"verbose"`
}

// yamlConfig represents the YAML settings file structure.
type yamlConfig struct {
	TopSection string `yaml:"top_section"`
	Fallback   string `yaml:"fallback"`
	Verbose    bool   `yaml:"verbose"`
}

// CLIOverrides holds command-line arguments and flag overrides.
type CLIOverrides struct {
	ConfigFile string
	FilePath   string
	Section    string
	Key        string
	TopSection *string
	Fallback   *string
	Verbose    *bool
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML settings file > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	// Load from YAML settings file if specified
	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML settings: %w", err)
		}
		applyYAMLConfig(&cfg, yamlCfg)
	}

	// Apply CLI overrides (highest precedence)
	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	// Validate final configuration
	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		TopSection: inifile.DefaultTopSection,
	}
}

// loadFromFile loads settings from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML settings to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) {
	if yamlCfg.TopSection != "" {
		cfg.TopSection = yamlCfg.TopSection
	}

	if yamlCfg.Fallback != "" {
		cfg.Fallback = yamlCfg.Fallback
	}

	if yamlCfg.Verbose {
		cfg.Verbose = true
	}
}

// applyCLIOverrides applies command-line arguments and flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	cfg.FilePath = overrides.FilePath
	cfg.Section = overrides.Section
	cfg.Key = overrides.Key

	if overrides.TopSection != nil && *overrides.TopSection != "" {
		cfg.TopSection = *overrides.TopSection
	}

	if overrides.Fallback != nil && *overrides.Fallback != "" {
		cfg.Fallback = *overrides.Fallback
	}

	if overrides.Verbose != nil && *overrides.Verbose {
		cfg.Verbose = true
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.TopSection == "" {
		return fmt.Errorf("top section name cannot be empty")
	}
	if strings.ContainsAny(cfg.TopSection, "]\r\n") {
		return fmt.Errorf("top section name %q must not contain ']' or line breaks", cfg.TopSection)
	}
	return nil
}
