// Package vimpconfig is the ambient configuration layer for the
// type-checker and interpreter CLIs: logging, recursion limits, and cache
// sizing, loaded from an optional YAML file per spec.md §6's CLI surface.
// Grounded on pkg/config's Logger/Validate() convention.
package vimpconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Logger contains logging configuration, matching pkg/config.Logger's
// shape and YAML tags.
type Logger struct {
	LogEncoding string `yaml:"LogEncoding"`
	LogLevel    string `yaml:"LogLevel"`
	LogPath     string `yaml:"LogPath"`
}

// Validate returns an error if the logger configuration is not valid.
func (l Logger) Validate() error {
	if len(l.LogEncoding) > 0 && l.LogEncoding != "console" && l.LogEncoding != "json" {
		return fmt.Errorf("invalid LogEncoding: %s", l.LogEncoding)
	}
	return nil
}

// Limits bounds the interpreter's recursion depth, resolving spec.md §9's
// open question on stack depth in favor of a configurable limit.
type Limits struct {
	MaxDepth int `yaml:"max-depth"`
}

// Validate returns an error if MaxDepth is non-positive.
func (l Limits) Validate() error {
	if l.MaxDepth <= 0 {
		return fmt.Errorf("limits.max-depth must be positive, got %d", l.MaxDepth)
	}
	return nil
}

// Cache bounds the executor's certcache.
type Cache struct {
	Capacity int `yaml:"capacity"`
}

// Validate returns an error if Capacity is non-positive.
func (c Cache) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("cache.capacity must be positive, got %d", c.Capacity)
	}
	return nil
}

// Config is the top-level YAML document loaded via --config.
type Config struct {
	Logger Logger `yaml:"logger"`
	Limits Limits `yaml:"limits"`
	Cache  Cache  `yaml:"cache"`
}

// Validate checks every sub-section.
func (c Config) Validate() error {
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Limits.Validate(); err != nil {
		return err
	}
	return c.Cache.Validate()
}

// Default returns the documented fallback configuration used when no
// --config file is given.
func Default() Config {
	return Config{
		Logger: Logger{LogEncoding: "console", LogLevel: "info"},
		Limits: Limits{MaxDepth: 4096},
		Cache:  Cache{Capacity: 256},
	}
}

// Load reads and validates a YAML configuration file, overlaying it on top
// of Default() so a partial file only needs to name the fields it
// overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
