package config

import "errors"

var (
	// ErrInvalidConfig wraps every Validate failure, such as an initial hue
	// outside [0, 360] or a non-positive degenerate epsilon.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig wraps failures reading HUEBLEND_CONFIG or the
	// HUEBLEND_ environment.
	ErrLoadConfig = errors.New("load config failed")
)
