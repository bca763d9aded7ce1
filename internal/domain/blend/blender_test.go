package blend_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/okian/hueblend/internal/diagnostics"
	"github.com/okian/hueblend/internal/domain/blend"
	"github.com/okian/hueblend/internal/domain/hue"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// circularDistance is the shortest distance between two angles in degrees.
func circularDistance(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	return math.Min(d, 360-d)
}

func mustAngle(t *testing.T, deg float64) hue.Angle {
	t.Helper()
	a, err := hue.FromDegrees(deg)
	require.NoError(t, err)
	return a
}

func TestBlend(t *testing.T) {
	Convey("Given a blender with a memory recorder", t, func() {
		rec := diagnostics.NewMemory()
		b := blend.New(blend.WithRecorder(rec))
		ctx := context.Background()

		Convey("When blending a hue with itself", func() {
			res, err := b.BlendDegrees(ctx, 0, 0)

			Convey("Then the result is that hue on the unit circle", func() {
				So(err, ShouldBeNil)
				So(res.Hue.Degrees(), ShouldAlmostEqual, 0, 1e-9)
				So(res.Resultant, ShouldAlmostEqual, 1, 1e-9)
				So(res.Degenerate, ShouldBeFalse)
				So(rec.Events(), ShouldBeEmpty)
			})
		})

		Convey("When blending across the 0/360 seam", func() {
			res, err := b.BlendDegrees(ctx, 350, 10)

			Convey("Then the result is near 0 rather than the naive 180", func() {
				So(err, ShouldBeNil)
				So(circularDistance(res.Hue.Degrees(), 0), ShouldBeLessThan, 1e-6)
				So(res.Hue.Degrees(), ShouldBeGreaterThanOrEqualTo, 0)
				So(res.Hue.Degrees(), ShouldBeLessThan, 360)
			})
		})

		Convey("When blending opposite hues", func() {
			for _, pair := range [][2]float64{{90, 270}, {0, 180}, {45, 225}} {
				res, err := b.BlendDegrees(ctx, pair[0], pair[1])

				So(err, ShouldBeNil)
				So(res.Degenerate, ShouldBeTrue)
				So(res.Resultant, ShouldBeLessThan, blend.DefaultEpsilon)
				So(res.Hue.Degrees(), ShouldBeBetweenOrEqual, 0, 360)
			}

			Convey("Then a warning is recorded for each", func() {
				So(rec.Count(diagnostics.Warning), ShouldEqual, 3)
				So(rec.Events()[0].Message, ShouldContainSubstring, "opposite")
			})
		})

		Convey("When an input is not a finite number", func() {
			_, errA := b.BlendDegrees(ctx, math.NaN(), 10)
			_, errB := b.BlendDegrees(ctx, 10, math.Inf(1))

			Convey("Then the construction error propagates", func() {
				So(errors.Is(errA, hue.ErrInvalidAngle), ShouldBeTrue)
				So(errors.Is(errB, hue.ErrInvalidAngle), ShouldBeTrue)
			})
		})

		Convey("When the epsilon is widened", func() {
			wide := blend.New(blend.WithEpsilon(0.5), blend.WithRecorder(rec))
			res, err := wide.BlendDegrees(ctx, 0, 150)

			Convey("Then nearly opposite hues count as degenerate", func() {
				So(err, ShouldBeNil)
				So(wide.Epsilon(), ShouldEqual, 0.5)
				So(res.Resultant, ShouldBeLessThan, 0.5)
				So(res.Degenerate, ShouldBeTrue)
			})
		})

		Convey("When options carry invalid values", func() {
			b := blend.New(blend.WithEpsilon(-1), blend.WithRecorder(nil))

			Convey("Then defaults are kept", func() {
				So(b.Epsilon(), ShouldEqual, blend.DefaultEpsilon)
				_, err := b.BlendDegrees(ctx, 90, 270)
				So(err, ShouldBeNil)
			})
		})
	})
}

func TestBlendKnownValues(t *testing.T) {
	cases := []struct {
		a, b, want float64
	}{
		{0, 90, 45},
		{300, 60, 0},
		{200, 280, 240},
		{10, 50, 30},
		{170, 190, 180},
		{-30, 30, 0},
		{720, 90, 45},
	}
	for _, tc := range cases {
		got, err := blend.Blend(mustAngle(t, tc.a), mustAngle(t, tc.b))
		require.NoError(t, err)
		assert.Less(t, circularDistance(got.Degrees(), tc.want), 1e-6, "blend(%v, %v) = %v", tc.a, tc.b, got.Degrees())
		assert.GreaterOrEqual(t, got.Degrees(), 0.0)
		assert.Less(t, got.Degrees(), 360.0)
	}
}

func TestBlendCommutative(t *testing.T) {
	b := blend.New()
	ctx := context.Background()
	for a := 0.0; a < 360; a += 17 {
		for c := 0.0; c < 360; c += 23 {
			ab, err := b.BlendDegrees(ctx, a, c)
			require.NoError(t, err)
			ba, err := b.BlendDegrees(ctx, c, a)
			require.NoError(t, err)
			if ab.Degenerate {
				continue
			}
			assert.InDelta(t, ab.Hue.Degrees(), ba.Hue.Degrees(), 1e-9, "blend(%v, %v)", a, c)
		}
	}
}

func TestBlendMatchesBlender(t *testing.T) {
	b := blend.New()
	x, y := mustAngle(t, 123), mustAngle(t, 321)

	plain, err := blend.Blend(x, y)
	require.NoError(t, err)
	res, err := b.Blend(context.Background(), x, y)
	require.NoError(t, err)

	assert.Equal(t, plain, res.Hue)
	assert.Equal(t, x.Point().Midpoint(y.Point()), res.Midpoint)
}
