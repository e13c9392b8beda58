package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the defaults a YAML file may set. Flags given on the command
// line win over the file.
type Config struct {
	MaxSteps int           `yaml:"max_steps"`
	Timeout  time.Duration `yaml:"timeout"`
	Jobs     int           `yaml:"jobs"`
	DeBruijn bool          `yaml:"debruijn"`
	Verbose  bool          `yaml:"verbose"`
}

func defaultConfig() Config {
	return Config{
		MaxSteps: 100000,
		Jobs:     runtime.GOMAXPROCS(0),
	}
}

func loadConfig(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg.validate()
}

func (c Config) validate() error {
	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must not be negative, got %d", c.MaxSteps)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %v", c.Timeout)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	return nil
}
