package display

import (
	"fmt"
	"math"
	"strconv"

	"github.com/crazy3lf/colorconv"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/okian/hueblend/internal/domain/hue"
)

// Fixed HSL components. Only the hue varies.
const (
	SaturationPercent = 100
	LightnessPercent  = 50

	maxDisplayHue = 360
	// WCAG relative luminance above which black text reads better than white.
	textLuminanceThreshold = 0.179
)

// Swatch is everything a view needs to paint one hue.
type Swatch struct {
	Hue float64  `json:"hue"`
	CSS string   `json:"css"`
	Hex string   `json:"hex"`
	RGB [3]uint8 `json:"rgb"`
	// Text is the label colour that stays readable on top of the swatch.
	Text string `json:"text"`
}

// HSL formats a hue as a CSS hsl() colour with the fixed saturation and
// lightness.
func HSL(h float64) (string, error) {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return "", fmt.Errorf("%w: Hue %v does not exist", ErrUnknownHue, h)
	}
	return fmt.Sprintf("hsl(%s, %d%%, %d%%)", strconv.FormatFloat(h, 'f', -1, 64), SaturationPercent, LightnessPercent), nil
}

// NewSwatch builds a swatch for a hue in [0,360].
func NewSwatch(h float64) (Swatch, error) {
	css, err := HSL(h)
	if err != nil {
		return Swatch{}, err
	}
	if h < 0 || h > maxDisplayHue {
		return Swatch{}, fmt.Errorf("%w: %v is outside [0, %d]", ErrHueOutOfRange, h, maxDisplayHue)
	}

	// 360 and 0 are the same colour; the converters only take [0,360).
	wheel := h
	if wheel == maxDisplayHue {
		wheel = 0
	}
	s, l := float64(SaturationPercent)/100, float64(LightnessPercent)/100

	r, g, b, err := colorconv.HSLToRGB(wheel, s, l)
	if err != nil {
		return Swatch{}, fmt.Errorf("%w: %v", ErrHueOutOfRange, err)
	}
	c := colorful.Hsl(wheel, s, l).Clamped()

	return Swatch{
		Hue:  h,
		CSS:  css,
		Hex:  c.Hex(),
		RGB:  [3]uint8{r, g, b},
		Text: textColor(c),
	}, nil
}

// AngleSwatch builds a swatch for any angle, wrapping it into [0,360) first.
func AngleSwatch(a hue.Angle) (Swatch, error) {
	return NewSwatch(a.Normalized().Degrees())
}

func textColor(c colorful.Color) string {
	r, g, b := c.LinearRgb()
	if 0.2126*r+0.7152*g+0.0722*b > textLuminanceThreshold {
		return "#000000"
	}
	return "#ffffff"
}
