package blend

import "github.com/okian/hueblend/internal/diagnostics"

// Option applies a configuration option to the Blender.
type Option func(*Blender)

// WithRecorder sets the diagnostics recorder.
func WithRecorder(r diagnostics.Recorder) Option {
	return func(b *Blender) {
		if r != nil {
			b.recorder = r
		}
	}
}

// WithEpsilon sets the midpoint length below which a blend is degenerate.
func WithEpsilon(eps float64) Option {
	return func(b *Blender) {
		if eps > 0 {
			b.epsilon = eps
		}
	}
}
