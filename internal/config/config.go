package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the ropdemo configuration.
type Config struct {
	Name string `yaml:"name"`

	// Workers caps concurrent units; 0 means unlimited.
	Workers    int    `yaml:"workers"`
	ScratchDir string `yaml:"scratch_dir"` // empty means in-memory

	Scenarios []string       `yaml:"scenarios"`
	Pipeline  PipelineConfig `yaml:"pipeline"`
	Logging   LoggingConfig  `yaml:"logging"`
}

type PipelineConfig struct {
	Lines            int  `yaml:"lines"`
	ProcessRemaining bool `yaml:"process_remaining"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`    // debug, info, warn, error
	Encoding string `yaml:"encoding"` // json, console
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "ropdemo",
		Workers: 4,
		Scenarios: []string{
			"options", "outcomes", "propagation", "conversion",
			"panics", "files", "ownership", "pipeline",
		},
		Pipeline: PipelineConfig{
			Lines:            2,
			ProcessRemaining: true,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.Pipeline.Lines < 1 {
		return fmt.Errorf("pipeline.lines must be at least 1, got %d", c.Pipeline.Lines)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("ROPDEMO_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid ROPDEMO_WORKERS: %w", err)
		}
		c.Workers = n
	}
	if v := os.Getenv("ROPDEMO_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("ROPDEMO_SCRATCH_DIR"); v != "" {
		c.ScratchDir = v
	}
	return nil
}
