package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"spacex-dashboard/pkg/utils"
)

// Config holds the dashboard server settings
type Config struct {
	DataPath        string `yaml:"data_path" env:"DATA_PATH"`
	Addr            string `yaml:"addr" env:"ADDR"`
	DBPath          string `yaml:"db_path" env:"DB_PATH"`
	LogLevel        string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat       string `yaml:"log_format" env:"LOG_FORMAT"`
	ChartWidth      int    `yaml:"chart_width" env:"CHART_WIDTH"`
	ChartHeight     int    `yaml:"chart_height" env:"CHART_HEIGHT"`
	OutputDir       string `yaml:"output_dir" env:"OUTPUT_DIR"`
	ShutdownTimeout string `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"` // e.g., "5s"
}

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "DASHBOARD_"

// DefaultConfig returns the settings used when nothing is configured
func DefaultConfig() *Config {
	return &Config{
		DataPath:        "spacex_launch_dash.csv",
		Addr:            "0.0.0.0:8050",
		DBPath:          "dashboard.db",
		LogLevel:        "info",
		LogFormat:       "json",
		ChartWidth:      800,
		ChartHeight:     450,
		OutputDir:       "outputs",
		ShutdownTimeout: "5s",
	}
}

// Load applies, in order, the defaults, the YAML file at path (skipped when
// path is empty or the file does not exist) and DASHBOARD_* environment
// variables.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	if c.DataPath == "" {
		return errors.New("config: data_path is required")
	}
	if c.Addr == "" {
		return errors.New("config: addr is required")
	}
	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return fmt.Errorf("config: chart size must be positive, got %dx%d", c.ChartWidth, c.ChartHeight)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("config: log_format must be json or console, got %q", c.LogFormat)
	}
	return nil
}

// Shutdown returns the graceful shutdown timeout
func (c *Config) Shutdown() time.Duration {
	return utils.ParseDuration(c.ShutdownTimeout, 5*time.Second)
}
