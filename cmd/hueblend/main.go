// Command hueblend prints the blend of two hues.
//
//	hueblend [-json] [-epsilon 1e-9] <hue0> <hue1>
//
// Negative hues such as -30 are read as hues, not flags.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/okian/hueblend/internal/diagnostics"
	"github.com/okian/hueblend/internal/display"
	"github.com/okian/hueblend/internal/domain/blend"
	"github.com/okian/hueblend/internal/domain/hue"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type output struct {
	Hue        float64  `json:"hue"`
	CSS        string   `json:"css"`
	Hex        string   `json:"hex"`
	RGB        [3]uint8 `json:"rgb"`
	Resultant  float64  `json:"resultant"`
	Degenerate bool     `json:"degenerate"`
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("hueblend", flag.ContinueOnError)
	fs.SetOutput(stderr)
	asJSON := fs.Bool("json", false, "Print the result as JSON")
	epsilon := fs.Float64("epsilon", blend.DefaultEpsilon, "Midpoint length below which hues count as opposite")
	fs.Usage = func() {
		_, _ = fmt.Fprintln(stderr, "usage: hueblend [-json] [-epsilon N] [--] <hue0> <hue1>")
		fs.PrintDefaults()
	}
	flags, hues := splitArgs(args)
	if err := fs.Parse(flags); err != nil {
		return exitUsage
	}
	hues = append(fs.Args(), hues...)
	if len(hues) != 2 {
		fs.Usage()
		return exitUsage
	}

	rec := diagnostics.NewConsole(stderr)
	raw0, raw1 := hues[0], hues[1]
	x, errX := hue.ParseDegrees(raw0)
	y, errY := hue.ParseDegrees(raw1)
	if errX != nil || errY != nil {
		rec.Record(ctx, diagnostics.Error, fmt.Sprintf("Cannot blend colors: Invalid or missing hue(s): %q, %q", raw0, raw1))
		return exitUsage
	}

	b := blend.New(blend.WithRecorder(rec), blend.WithEpsilon(*epsilon))
	res, err := b.Blend(ctx, x, y)
	if err != nil {
		rec.Record(ctx, diagnostics.Error, fmt.Sprintf("Cannot blend colors: %v", err))
		return exitFailure
	}
	sw, err := display.AngleSwatch(res.Hue)
	if err != nil {
		rec.Record(ctx, diagnostics.Error, err.Error())
		return exitFailure
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		if err := enc.Encode(output{
			Hue:        res.Hue.Degrees(),
			CSS:        sw.CSS,
			Hex:        sw.Hex,
			RGB:        sw.RGB,
			Resultant:  res.Resultant,
			Degenerate: res.Degenerate,
		}); err != nil {
			return exitFailure
		}
		return exitOK
	}

	line := fmt.Sprintf("%s  %s  %s", res.Hue, sw.CSS, sw.Hex)
	if diagnostics.IsTerminal(stdout) {
		line = paint(line, sw)
	}
	_, _ = fmt.Fprintln(stdout, line)
	return exitOK
}

// splitArgs separates flags from hues so that numbers like -30 never reach
// the flag parser. Everything after "--" is a hue.
func splitArgs(args []string) (flags, hues []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return flags, append(hues, args[i+1:]...)
		case !strings.HasPrefix(arg, "-") || isNumber(arg):
			hues = append(hues, arg)
		default:
			flags = append(flags, arg)
			if name := strings.TrimLeft(arg, "-"); name == "epsilon" && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		}
	}
	return flags, hues
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// paint renders s on the swatch colour with its readable text colour.
func paint(s string, sw display.Swatch) string {
	fg := "38;2;0;0;0"
	if sw.Text == "#ffffff" {
		fg = "38;2;255;255;255"
	}
	return fmt.Sprintf("\x1b[48;2;%d;%d;%d;%sm %s \x1b[0m", sw.RGB[0], sw.RGB[1], sw.RGB[2], fg, s)
}
