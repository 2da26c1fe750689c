// SPDX-License-Identifier: MIT

// Package config provides configuration loading for the magiccube host.
//
// Precedence: DefaultConfig < YAML file (LoadFromFile) < environment
// (ApplyEnv, MAGICCUBE_* variables) < command-line flags applied by the host.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/magiccube/definition"
	"github.com/katalvlaran/magiccube/fractal"
	"github.com/katalvlaran/magiccube/rule"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "MAGICCUBE_"

// ErrInvalidConfig indicates a configuration that fails Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config represents the complete magiccube configuration
type Config struct {
	Fractal FractalConfig `yaml:"fractal"`
	Limits  LimitsConfig  `yaml:"limits"`
	Log     LogConfig     `yaml:"log"`
}

// FractalConfig is the initial fractal definition and root cube placement
type FractalConfig struct {
	// Matrix is the rule in text form, e.g. "1,0|0,1"
	Matrix string `yaml:"matrix" env:"MATRIX"`
	// Depth is the number of subdivision levels
	Depth int `yaml:"depth" env:"DEPTH"`
	// BaseScale is the edge length of the root cube
	BaseScale float64 `yaml:"base_scale" env:"BASE_SCALE"`
	// BasePosition is the root cube position [x, y, z]
	BasePosition [3]float64 `yaml:"base_position"`
}

// LimitsConfig bounds what an edit or an expansion may request
type LimitsConfig struct {
	// MaxDepth is the largest accepted depth (inclusive)
	MaxDepth int `yaml:"max_depth" env:"MAX_DEPTH"`
	// MaxLeaves is the leaf-count ceiling of a single expansion
	MaxLeaves uint64 `yaml:"max_leaves" env:"MAX_LEAVES"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Fractal: FractalConfig{
			Matrix:    rule.Encode(rule.Default()),
			Depth:     0,
			BaseScale: definition.DefaultBaseScale,
		},
		Limits: LimitsConfig{
			MaxDepth:  definition.DefaultMaxDepth,
			MaxLeaves: fractal.DefaultMaxLeaves,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := rule.Decode(c.Fractal.Matrix); err != nil {
		return fmt.Errorf("fractal.matrix: %w: %w", ErrInvalidConfig, err)
	}
	if c.Limits.MaxDepth < 0 {
		return fmt.Errorf("limits.max_depth must be >= 0: %w", ErrInvalidConfig)
	}
	if c.Fractal.Depth < 0 || c.Fractal.Depth > c.Limits.MaxDepth {
		return fmt.Errorf("fractal.depth must be between 0 and %d: %w", c.Limits.MaxDepth, ErrInvalidConfig)
	}
	s := c.Fractal.BaseScale
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return fmt.Errorf("fractal.base_scale must be finite and > 0: %w", ErrInvalidConfig)
	}
	for _, v := range c.Fractal.BasePosition {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("fractal.base_position must be finite: %w", ErrInvalidConfig)
		}
	}
	if c.Limits.MaxLeaves == 0 {
		return fmt.Errorf("limits.max_leaves must be > 0: %w", ErrInvalidConfig)
	}
	if _, err := c.SlogLevel(); err != nil {
		return fmt.Errorf("log.level: %w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// SlogLevel parses Log.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}

// Definition decodes the configured fractal definition.
func (c *Config) Definition() (definition.Definition, error) {
	m, err := rule.Decode(c.Fractal.Matrix)
	if err != nil {
		return definition.Definition{}, fmt.Errorf("fractal.matrix: %w", err)
	}
	return definition.Definition{Matrix: m, Depth: c.Fractal.Depth}, nil
}

// SlotOptions translates the configuration into definition.Slot options.
// The configuration must be valid.
func (c *Config) SlotOptions() ([]definition.Option, error) {
	def, err := c.Definition()
	if err != nil {
		return nil, err
	}
	p := c.Fractal.BasePosition
	return []definition.Option{
		definition.WithMaxDepth(c.Limits.MaxDepth),
		definition.WithInitial(def),
		definition.WithBaseScale(c.Fractal.BaseScale),
		definition.WithBasePosition(fractal.Vec3{X: p[0], Y: p[1], Z: p[2]}),
		definition.WithExpandOptions(fractal.WithMaxLeaves(c.Limits.MaxLeaves)),
	}, nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides fields from MAGICCUBE_* variables. A nil environ reads
// the process environment; unset variables leave fields untouched.
func (c *Config) ApplyEnv(environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load builds a Config from defaults, the optional YAML file at path and the
// process environment. It does not validate; callers apply flags first.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = LoadFromFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		return nil, err
	}
	return cfg, nil
}
