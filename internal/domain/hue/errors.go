package hue

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidAngle       = errors.New("invalid angle")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)
