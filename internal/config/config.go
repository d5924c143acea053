package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// APIConfig holds the HTTP server settings.
type APIConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// DatasetConfig points at the CSV record table loaded at startup.
type DatasetConfig struct {
	Path string `yaml:"path"`
}

// DisplayConfig bounds what the presentation layers render. Aggregation
// always runs over the full view; only rendered rows are capped.
type DisplayConfig struct {
	RowLimit int `yaml:"row_limit"`
	TopN     int `yaml:"top_n"`
}

// Config is the top-level configuration struct for the entire application.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Dataset DatasetConfig `yaml:"dataset"`
	Display DisplayConfig `yaml:"display"`
}

// Defaults applied when the corresponding YAML keys are absent.
const (
	DefaultListenAddr = ":5000"
	DefaultRowLimit   = 200
	DefaultTopN       = 5
)

// LoadConfig reads the configuration from a YAML file and returns a Config
// struct with defaults filled in.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.API.ListenAddr == "" {
		c.API.ListenAddr = DefaultListenAddr
	}
	if c.Display.RowLimit <= 0 {
		c.Display.RowLimit = DefaultRowLimit
	}
	if c.Display.TopN <= 0 {
		c.Display.TopN = DefaultTopN
	}
}
