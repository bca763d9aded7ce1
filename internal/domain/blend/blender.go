// Package blend averages two hues on the colour wheel.
//
// Hues are averaged as unit vectors rather than as numbers, so 350° and 10°
// blend to 0° instead of 180°. Opposite hues cancel out: their midpoint is
// (numerically close to) the origin, which has no direction. Such blends do
// not fail; they are flagged Degenerate and their hue is whatever atan2
// returns for the residual rounding error.
package blend

import (
	"context"
	"fmt"

	"github.com/okian/hueblend/internal/diagnostics"
	"github.com/okian/hueblend/internal/domain/hue"
)

// DefaultEpsilon is the midpoint length below which a blend is degenerate.
const DefaultEpsilon = 1e-9

// Blend returns the circular mean of a and b.
func Blend(a, b hue.Angle) (hue.Angle, error) {
	return hue.FromPoint(a.Point().Midpoint(b.Point()))
}

// Result carries a blended hue together with the geometry behind it.
type Result struct {
	Hue      hue.Angle
	Midpoint hue.Point
	// Resultant is the midpoint's distance from the origin: 1 for identical
	// hues, 0 for opposite ones.
	Resultant  float64
	Degenerate bool
}

// Blender blends hues and reports degenerate cases to a diagnostics
// Recorder. It holds no per-blend state and is safe for concurrent use.
type Blender struct {
	recorder diagnostics.Recorder
	epsilon  float64
}

// New creates a Blender.
func New(opts ...Option) *Blender {
	b := &Blender{
		recorder: diagnostics.Nop,
		epsilon:  DefaultEpsilon,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Blend averages x and y.
func (b *Blender) Blend(ctx context.Context, x, y hue.Angle) (Result, error) {
	mid := x.Point().Midpoint(y.Point())
	h, err := hue.FromPoint(mid)
	if err != nil {
		return Result{}, err
	}
	res := Result{
		Hue:        h,
		Midpoint:   mid,
		Resultant:  mid.Len(),
		Degenerate: mid.Len() < b.epsilon,
	}
	if res.Degenerate {
		b.recorder.Record(ctx, diagnostics.Warning,
			fmt.Sprintf("Hues %v and %v are opposite; their blend has no stable hue.", x, y))
	}
	return res, nil
}

// BlendDegrees constructs both angles and blends them. Construction errors
// (hue.ErrInvalidAngle) are returned unchanged.
func (b *Blender) BlendDegrees(ctx context.Context, x, y float64) (Result, error) {
	hx, err := hue.FromDegrees(x)
	if err != nil {
		return Result{}, err
	}
	hy, err := hue.FromDegrees(y)
	if err != nil {
		return Result{}, err
	}
	return b.Blend(ctx, hx, hy)
}

// Epsilon returns the degeneracy threshold in use.
func (b *Blender) Epsilon() float64 { return b.epsilon }
