package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun(t *testing.T) {
	convey.Convey("Given the hueblend command", t, func() {
		convey.Convey("When blending 0 and 90", func() {
			code, out, errOut := runCLI("0", "90")

			convey.Convey("Then it should print hue, css and hex without colour", func() {
				convey.So(code, convey.ShouldEqual, exitOK)
				convey.So(out, convey.ShouldEqual, "45°  hsl(45, 100%, 50%)  #ffbf00\n")
				convey.So(errOut, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When blending across 0° as JSON", func() {
			code, out, _ := runCLI("-json", "350", "10")

			convey.Convey("Then the JSON should describe red", func() {
				convey.So(code, convey.ShouldEqual, exitOK)
				var got output
				convey.So(json.Unmarshal([]byte(out), &got), convey.ShouldBeNil)
				convey.So(got.Hue, convey.ShouldAlmostEqual, 0, 1e-9)
				convey.So(got.Hex, convey.ShouldEqual, "#ff0000")
				convey.So(got.RGB, convey.ShouldResemble, [3]uint8{255, 0, 0})
				convey.So(got.Degenerate, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When blending opposite hues", func() {
			code, out, errOut := runCLI("-json", "0", "180")

			convey.Convey("Then it should succeed with a warning on stderr", func() {
				convey.So(code, convey.ShouldEqual, exitOK)
				convey.So(out, convey.ShouldContainSubstring, `"degenerate":true`)
				convey.So(errOut, convey.ShouldStartWith, "Warning: ")
			})
		})

		convey.Convey("When a hue is not a number", func() {
			code, out, errOut := runCLI("10", "green")

			convey.Convey("Then it should exit 2 with an error line", func() {
				convey.So(code, convey.ShouldEqual, exitUsage)
				convey.So(out, convey.ShouldBeEmpty)
				convey.So(errOut, convey.ShouldEqual, "Error: Cannot blend colors: Invalid or missing hue(s): \"10\", \"green\"\n")
			})
		})

		convey.Convey("When the argument count is wrong", func() {
			code, _, errOut := runCLI("10")

			convey.Convey("Then it should print usage and exit 2", func() {
				convey.So(code, convey.ShouldEqual, exitUsage)
				convey.So(errOut, convey.ShouldContainSubstring, "usage: hueblend")
			})
		})

		convey.Convey("When a hue is negative", func() {
			code, out, errOut := runCLI("-30", "30")

			convey.Convey("Then it should be read as a hue and blend to 0°", func() {
				convey.So(code, convey.ShouldEqual, exitOK)
				convey.So(errOut, convey.ShouldBeEmpty)
				convey.So(out, convey.ShouldStartWith, "0°")
			})
		})

		convey.Convey("When flags follow the hues", func() {
			code, out, _ := runCLI("-40", "-epsilon", "1e-6", "40", "-json")

			convey.Convey("Then both flags and hues should be honoured", func() {
				convey.So(code, convey.ShouldEqual, exitOK)
				var got output
				convey.So(json.Unmarshal([]byte(out), &got), convey.ShouldBeNil)
				convey.So(got.Hue, convey.ShouldAlmostEqual, 0, 1e-9)
			})
		})

		convey.Convey("When hues come after --", func() {
			code, out, _ := runCLI("-json", "--", "-90", "90")

			convey.Convey("Then they should be taken verbatim", func() {
				convey.So(code, convey.ShouldEqual, exitOK)
				convey.So(out, convey.ShouldContainSubstring, `"degenerate":true`)
			})
		})

		convey.Convey("When an unknown flag is given", func() {
			code, _, _ := runCLI("-nope", "1", "2")

			convey.Convey("Then it should exit 2", func() {
				convey.So(code, convey.ShouldEqual, exitUsage)
			})
		})

		convey.Convey("When the epsilon is widened", func() {
			_, out, _ := runCLI("-json", "-epsilon", "0.9", "0", "90")

			convey.Convey("Then a quarter-turn blend counts as degenerate", func() {
				convey.So(out, convey.ShouldContainSubstring, `"degenerate":true`)
			})
		})
	})
}
