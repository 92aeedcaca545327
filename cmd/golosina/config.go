package main

import (
	"os"

	"github.com/oarkflow/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the settings a YAML config file may provide. Command line
// flags win over the file.
type Config struct {
	Trace        bool   `yaml:"trace"`
	TraceFilter  string `yaml:"trace_filter"`
	LogLevel     string `yaml:"log_level"`
	MaxCallDepth int    `yaml:"max_call_depth"`
	HistoryFile  string `yaml:"history_file"`
}

func defaultConfig() *Config {
	return &Config{LogLevel: "warn"}
}

// loadConfig reads path over the defaults
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("reading config " + path + ": " + err.Error())
	}
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("parsing config " + path + ": " + err.Error())
	}
	if cfg.MaxCallDepth < 0 {
		return nil, errors.New("max_call_depth must not be negative")
	}
	return cfg, nil
}
