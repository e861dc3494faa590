// Package config loads perfcmp settings from a YAML file, .env files and the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultSettingsFile is read from the working directory when no settings file is named.
const DefaultSettingsFile = ".perfcmp.yaml"

// Config holds the application configuration.
type Config struct {
	LogLevel string `yaml:"log_level"`
	// Exclude lists functions left out of charts
	Exclude []string `yaml:"exclude"`
	// ChartWidth and ChartHeight are in inches
	ChartWidth  float64 `yaml:"chart_width"`
	ChartHeight float64 `yaml:"chart_height"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:    "info",
		Exclude:     []string{"slam process"},
		ChartWidth:  12,
		ChartHeight: 8,
	}
}

// Load builds the configuration. Values from the settings file override the
// defaults, and environment variables (including those from .env) override both.
// An empty path falls back to DefaultSettingsFile when it exists.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultSettingsFile
	}
	if err := cfg.readFile(path, explicit); err != nil {
		return nil, err
	}

	for _, envPath := range getEnvPaths() {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return nil, errors.Wrapf(err, "failed to load %s", envPath)
			}
			break
		}
	}
	cfg.applyEnv()

	if cfg.ChartWidth <= 0 || cfg.ChartHeight <= 0 {
		return nil, errors.Errorf("chart size must be positive, got %gx%g", cfg.ChartWidth, cfg.ChartHeight)
	}
	return cfg, nil
}

func (c *Config) readFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return errors.Wrapf(err, "failed to read settings %s", path)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "failed to parse settings %s", path)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.LogLevel = getEnvString("PERFCMP_LOG_LEVEL", c.LogLevel)
	if value := os.Getenv("PERFCMP_EXCLUDE"); value != "" {
		c.Exclude = splitList(value)
	}
	c.ChartWidth = getEnvFloat("PERFCMP_CHART_WIDTH", c.ChartWidth)
	c.ChartHeight = getEnvFloat("PERFCMP_CHART_HEIGHT", c.ChartHeight)
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "perfcmp", ".env"))
	}
	return paths
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvFloat retrieves a float environment variable or returns the default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
