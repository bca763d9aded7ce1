package display

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrUnknownHue         = errors.New("unknown hue")
	ErrHueOutOfRange      = errors.New("hue out of display range")
	ErrUnknownInput       = errors.New("unknown input")
	ErrTooManySubscribers = errors.New("too many subscribers")
	ErrClosed             = errors.New("display closed")
)
