package app

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pouriyajamshidi/tcprobe"
)

// ErrInvalidConcurrency is returned when the concurrency limit is below 1.
var ErrInvalidConcurrency = errors.New("concurrency must be at least 1")

// Config is the content of the optional YAML configuration file.
type Config struct {
	Timeout     string   `yaml:"timeout"`
	Retries     uint     `yaml:"retries"`
	Concurrency int      `yaml:"concurrency"`
	Targets     []string `yaml:"targets"`
	File        string   `yaml:"file"`
}

// DefaultConfig returns the values used when neither a configuration file
// nor flags set them.
func DefaultConfig() Config {
	return Config{
		Timeout:     "5s",
		Concurrency: tcprobe.DefaultConcurrency,
	}
}

// LoadConfig reads the configuration file at path. An empty path yields
// the defaults; a path that cannot be read is an error.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Timeout == "" {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.Concurrency < 1 {
		return Config{}, fmt.Errorf("config %s: %w", path, ErrInvalidConcurrency)
	}

	return cfg, nil
}
