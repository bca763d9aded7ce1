package display_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/hueblend/internal/diagnostics"
	"github.com/okian/hueblend/internal/display"
	"github.com/okian/hueblend/internal/domain/blend"
	"github.com/okian/hueblend/internal/domain/hue"
	. "github.com/smartystreets/goconvey/convey"
)

type failingBlender struct{}

func (failingBlender) Blend(context.Context, hue.Angle, hue.Angle) (blend.Result, error) {
	return blend.Result{}, hue.ErrInvalidCoordinates
}

func strPtr(s string) *string { return &s }

func TestDisplayBlend(t *testing.T) {
	Convey("Given a display with two inputs", t, func() {
		ctx := context.Background()
		rec := diagnostics.NewMemory()
		d := display.New(blend.New(), display.WithRecorder(rec), display.WithInitialInputs("350", "10"))

		Convey("Then before any blend the average is 0", func() {
			So(d.Average(), ShouldEqual, 0)
			So(d.Snapshot().Version, ShouldEqual, 0)
		})

		Convey("When blending the initial inputs", func() {
			snap, err := d.Blend(ctx)

			Convey("Then the average crosses the seam correctly", func() {
				So(err, ShouldBeNil)
				So(snap.Version, ShouldEqual, 1)
				So(snap.Average < 1e-6 || snap.Average > 360-1e-6, ShouldBeTrue)
				So(snap.Swatch.Hex, ShouldEqual, "#ff0000")
				So(snap.Inputs[0].Valid, ShouldBeTrue)
				So(snap.Inputs[0].Swatch, ShouldNotBeNil)
				So(snap.Error, ShouldBeEmpty)
			})
		})

		Convey("When one input changes", func() {
			snap, err := d.SetInput(ctx, 1, "90")

			Convey("Then the average is re-blended", func() {
				So(err, ShouldBeNil)
				So(snap.Inputs[1].Raw, ShouldEqual, "90")
				So(snap.Average, ShouldAlmostEqual, 40, 1e-9)
				So(d.Average(), ShouldAlmostEqual, 40, 1e-9)
			})
		})

		Convey("When both inputs change at once", func() {
			snap, err := d.SetInputs(ctx, strPtr("0"), strPtr("120"))

			Convey("Then one blend happens", func() {
				So(err, ShouldBeNil)
				So(snap.Version, ShouldEqual, 1)
				So(snap.Average, ShouldAlmostEqual, 60, 1e-9)
			})
		})

		Convey("When only one of SetInputs is provided", func() {
			snap, err := d.SetInputs(ctx, nil, strPtr("30"))

			Convey("Then the other input is kept", func() {
				So(err, ShouldBeNil)
				So(snap.Inputs[0].Raw, ShouldEqual, "350")
				So(snap.Average, ShouldAlmostEqual, 10, 1e-9)
			})
		})

		Convey("When an input becomes invalid after a good blend", func() {
			_, err := d.SetInput(ctx, 0, "60")
			So(err, ShouldBeNil)
			before := d.Average()

			snap, err := d.SetInput(ctx, 0, "")

			Convey("Then the previous average is kept and an error is recorded", func() {
				So(errors.Is(err, hue.ErrInvalidAngle), ShouldBeTrue)
				So(snap.Average, ShouldEqual, before)
				So(snap.Inputs[0].Valid, ShouldBeFalse)
				So(snap.Inputs[0].Swatch, ShouldBeNil)
				So(snap.Error, ShouldContainSubstring, "Invalid or missing hue(s)")
				So(rec.Count(diagnostics.Error), ShouldEqual, 1)
			})

			Convey("And fixing it clears the error", func() {
				snap, err := d.SetInput(ctx, 0, "60")
				So(err, ShouldBeNil)
				So(snap.Error, ShouldBeEmpty)
			})
		})

		Convey("When the input index is unknown", func() {
			_, err := d.SetInput(ctx, 2, "10")

			Convey("Then it is rejected without touching state", func() {
				So(errors.Is(err, display.ErrUnknownInput), ShouldBeTrue)
				So(d.Snapshot().Version, ShouldEqual, 0)
			})
		})

		Convey("When an input is outside the display range", func() {
			snap, err := d.SetInput(ctx, 0, "400")

			Convey("Then it still blends and previews wrapped with a warning", func() {
				So(err, ShouldBeNil)
				So(snap.Inputs[0].Swatch, ShouldNotBeNil)
				So(snap.Inputs[0].Swatch.Hue, ShouldAlmostEqual, 40, 1e-9)
				So(snap.Average, ShouldAlmostEqual, 25, 1e-9)
				So(rec.Count(diagnostics.Warning), ShouldEqual, 1)
			})
		})

		Convey("When the inputs are opposite", func() {
			snap, err := d.SetInputs(ctx, strPtr("90"), strPtr("270"))

			Convey("Then the snapshot is flagged degenerate", func() {
				So(err, ShouldBeNil)
				So(snap.Degenerate, ShouldBeTrue)
			})
		})
	})

	Convey("Given a display whose blender fails", t, func() {
		rec := diagnostics.NewMemory()
		d := display.New(failingBlender{}, display.WithRecorder(rec))

		_, err := d.Blend(context.Background())

		Convey("Then the error surfaces and is recorded", func() {
			So(errors.Is(err, hue.ErrInvalidCoordinates), ShouldBeTrue)
			So(rec.Count(diagnostics.Error), ShouldEqual, 1)
			So(d.Snapshot().Error, ShouldNotBeEmpty)
		})
	})
}

func TestDisplaySubscribe(t *testing.T) {
	Convey("Given a display with a subscriber", t, func() {
		ctx := context.Background()
		d := display.New(blend.New(), display.WithMaxSubscribers(1))
		id, ch, cancel, err := d.Subscribe(4)
		So(err, ShouldBeNil)
		So(id, ShouldNotBeEmpty)
		Reset(cancel)

		Convey("Then the current snapshot is delivered first", func() {
			snap := <-ch
			So(snap.Version, ShouldEqual, 0)
			So(d.Subscribers(), ShouldEqual, 1)
		})

		Convey("When the state changes", func() {
			<-ch
			_, err := d.SetInput(ctx, 1, "180")
			So(err, ShouldBeNil)

			Convey("Then the update is pushed", func() {
				select {
				case snap := <-ch:
					So(snap.Version, ShouldEqual, 1)
					So(snap.Inputs[1].Raw, ShouldEqual, "180")
				case <-time.After(time.Second):
					So("timeout", ShouldBeEmpty)
				}
			})
		})

		Convey("When the limit is reached", func() {
			_, _, _, err := d.Subscribe(1)

			Convey("Then new subscribers are refused", func() {
				So(errors.Is(err, display.ErrTooManySubscribers), ShouldBeTrue)
			})
		})

		Convey("When cancelled", func() {
			cancel()
			cancel()

			Convey("Then the channel is closed once and the slot freed", func() {
				<-ch
				_, ok := <-ch
				So(ok, ShouldBeFalse)
				So(d.Subscribers(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a slow subscriber with a single slot", t, func() {
		ctx := context.Background()
		d := display.New(blend.New())
		_, ch, cancel, err := d.Subscribe(1)
		So(err, ShouldBeNil)
		defer cancel()

		for _, raw := range []string{"10", "20", "30"} {
			_, err := d.SetInput(ctx, 0, raw)
			So(err, ShouldBeNil)
		}

		Convey("Then only the latest snapshot is waiting", func() {
			snap := <-ch
			So(snap.Version, ShouldEqual, 3)
			So(snap.Inputs[0].Raw, ShouldEqual, "30")
		})
	})

	Convey("Given a closed display", t, func() {
		d := display.New(blend.New())
		_, ch, _, err := d.Subscribe(2)
		So(err, ShouldBeNil)
		d.Close()
		d.Close()

		Convey("Then subscribers are disconnected and updates refused", func() {
			<-ch
			_, ok := <-ch
			So(ok, ShouldBeFalse)

			_, err := d.Blend(context.Background())
			So(errors.Is(err, display.ErrClosed), ShouldBeTrue)

			_, _, _, err = d.Subscribe(1)
			So(errors.Is(err, display.ErrClosed), ShouldBeTrue)
		})
	})
}
