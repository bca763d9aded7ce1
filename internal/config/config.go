// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - All functions accept context.Context as the first parameter.
// - Validation failures wrap ErrInvalidConfig; source failures wrap ErrLoadConfig.
package config

import (
	"context"
	"fmt"
	"math"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// InitialHue0 and InitialHue1 seed the two page inputs, in degrees.
	InitialHue0 float64 `koanf:"initial_hue0"`
	InitialHue1 float64 `koanf:"initial_hue1"`

	// DegenerateEpsilon is the midpoint length below which a blend of two
	// nearly opposite hues is reported as degenerate.
	DegenerateEpsilon float64 `koanf:"degenerate_epsilon"`

	// StreamBuffer is the per-subscriber snapshot buffer of /display/stream.
	StreamBuffer int `koanf:"stream_buffer"`

	// MaxSubscribers caps concurrent /display/stream connections.
	MaxSubscribers int `koanf:"max_subscribers"`

	// MetricsNamespace prefixes every Prometheus metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`
}

// New creates a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		InitialHue0:       0,
		InitialHue1:       120,
		DegenerateEpsilon: 1e-9,
		StreamBuffer:      8,
		MaxSubscribers:    64,
		MetricsNamespace:  "hueblend",
	}
}

// Validate checks field ranges.
func (c *Config) Validate(_ context.Context) error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case !displayHue(c.InitialHue0):
		return fmt.Errorf("%w: initial_hue0 must be within [0, 360], got %v", ErrInvalidConfig, c.InitialHue0)
	case !displayHue(c.InitialHue1):
		return fmt.Errorf("%w: initial_hue1 must be within [0, 360], got %v", ErrInvalidConfig, c.InitialHue1)
	case !(c.DegenerateEpsilon > 0) || math.IsInf(c.DegenerateEpsilon, 0):
		return fmt.Errorf("%w: degenerate_epsilon must be positive, got %v", ErrInvalidConfig, c.DegenerateEpsilon)
	case c.StreamBuffer < 1:
		return fmt.Errorf("%w: stream_buffer must be at least 1, got %d", ErrInvalidConfig, c.StreamBuffer)
	case c.MaxSubscribers < 1:
		return fmt.Errorf("%w: max_subscribers must be at least 1, got %d", ErrInvalidConfig, c.MaxSubscribers)
	}
	return nil
}

func displayHue(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 360
}
