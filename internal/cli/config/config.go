package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the fieldmeta project configuration
type Config struct {
	ProjectName string         `mapstructure:"project_name"`
	Schema      SchemaConfig   `mapstructure:"schema"`
	Generate    GenerateConfig `mapstructure:"generate"`
}

// SchemaConfig locates the schema sources
type SchemaConfig struct {
	Dir string `mapstructure:"dir"`
}

// GenerateConfig controls code generation output
type GenerateConfig struct {
	Dir     string `mapstructure:"dir"`
	Package string `mapstructure:"package"`
}

// Load loads the configuration from fieldmeta.yml or fieldmeta.yaml
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("schema.dir", "schema")
	v.SetDefault("generate.dir", "gen")
	v.SetDefault("generate.package", "gen")

	v.SetConfigName("fieldmeta")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// InProject checks if the current directory is a fieldmeta project
func InProject() bool {
	if _, err := os.Stat("fieldmeta.yml"); err == nil {
		return true
	}
	if _, err := os.Stat("fieldmeta.yaml"); err == nil {
		return true
	}
	return false
}

// GetProjectRoot tries to find the project root by looking for fieldmeta.yml
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "fieldmeta.yml")); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "fieldmeta.yaml")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a fieldmeta project (no fieldmeta.yml found)")
		}
		dir = parent
	}
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.Generate.Package != "" {
		pkg := cfg.Generate.Package
		if strings.ContainsAny(pkg, "/\\. -") {
			return fmt.Errorf("generate.package must be a plain Go package name, got: %s", pkg)
		}
	}
	return nil
}
