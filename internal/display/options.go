package display

import "github.com/okian/hueblend/internal/diagnostics"

// Option applies a configuration option to the Display.
type Option func(*Display)

// WithRecorder sets the diagnostics recorder.
func WithRecorder(r diagnostics.Recorder) Option {
	return func(d *Display) {
		if r != nil {
			d.recorder = r
		}
	}
}

// WithInitialInputs sets the text of both inputs before the first blend.
func WithInitialInputs(hue0, hue1 string) Option {
	return func(d *Display) {
		d.inputs = [InputCount]string{hue0, hue1}
	}
}

// WithMaxSubscribers caps concurrent snapshot listeners.
func WithMaxSubscribers(n int) Option {
	return func(d *Display) {
		if n > 0 {
			d.maxSubscribers = n
		}
	}
}
