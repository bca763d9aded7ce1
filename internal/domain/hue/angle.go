// Package hue models a hue as an angle on the colour wheel and converts it
// to and from a point on the unit circle.
package hue

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	fullTurnDegrees = 360
	fullTurnRadians = 2 * math.Pi
)

// Angle is a hue in degrees. The zero value is 0°, which is a valid hue.
//
// Degrees are expected in [0,360) but only non-finite values are rejected;
// use Normalized to wrap arbitrary input.
type Angle struct {
	deg float64
}

// Point is a Cartesian coordinate. A single hue lies on the unit circle; the
// midpoint of two hues generally does not.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FromDegrees constructs an Angle. NaN and ±Inf fail with ErrInvalidAngle.
func FromDegrees(v float64) (Angle, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Angle{}, fmt.Errorf("%w: %v is not a finite number", ErrInvalidAngle, v)
	}
	return Angle{deg: v}, nil
}

// ParseDegrees constructs an Angle from user text. Blank input counts as a
// missing value.
func ParseDegrees(raw string) (Angle, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Angle{}, fmt.Errorf("%w: missing value", ErrInvalidAngle)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Angle{}, fmt.Errorf("%w: %q is not a number", ErrInvalidAngle, raw)
	}
	return FromDegrees(v)
}

// FromPoint converts a Cartesian point back to an Angle in [0,360).
//
// atan2 answers in (-180°,180°]. Quadrant 3 (x<0, y<0) and the rest of the
// lower half plane come back negative and are shifted by a full turn.
// The origin has no direction; it maps to 0°.
func FromPoint(p Point) (Angle, error) {
	if !p.valid() {
		return Angle{}, fmt.Errorf("%w: (%v, %v)", ErrInvalidCoordinates, p.X, p.Y)
	}
	rad := math.Atan2(p.Y, p.X)
	if rad < 0 {
		rad += fullTurnRadians
	}
	deg := Degrees(rad)
	// -tiny + 2π rounds to exactly 2π.
	if deg >= fullTurnDegrees {
		deg -= fullTurnDegrees
	}
	return Angle{deg: deg}, nil
}

// PointFromXY builds a Point from optional coordinates, as decoded from
// loosely typed input. A nil coordinate fails with ErrInvalidCoordinates.
func PointFromXY(x, y *float64) (Point, error) {
	switch {
	case x == nil && y == nil:
		return Point{}, fmt.Errorf("%w: missing x and y", ErrInvalidCoordinates)
	case x == nil:
		return Point{}, fmt.Errorf("%w: missing x", ErrInvalidCoordinates)
	case y == nil:
		return Point{}, fmt.Errorf("%w: missing y", ErrInvalidCoordinates)
	}
	p := Point{X: *x, Y: *y}
	if !p.valid() {
		return Point{}, fmt.Errorf("%w: (%v, %v)", ErrInvalidCoordinates, p.X, p.Y)
	}
	return p, nil
}

// Degrees returns the angle in degrees, exactly as constructed.
func (a Angle) Degrees() float64 { return a.deg }

// Radians returns the angle in radians.
func (a Angle) Radians() float64 { return Radians(a.deg) }

// Point returns the unit-circle point for this angle.
func (a Angle) Point() Point {
	rad := a.Radians()
	return Point{X: math.Cos(rad), Y: math.Sin(rad)}
}

// Normalized wraps the angle into [0,360).
func (a Angle) Normalized() Angle {
	d := math.Mod(a.deg, fullTurnDegrees)
	if d < 0 {
		d += fullTurnDegrees
	}
	if d >= fullTurnDegrees {
		d = 0
	}
	return Angle{deg: d}
}

func (a Angle) String() string {
	return strconv.FormatFloat(a.deg, 'f', -1, 64) + "°"
}

// Midpoint returns the arithmetic mean of p and q.
func (p Point) Midpoint(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Len is the distance from the origin.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

func (p Point) valid() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * (math.Pi / 180) }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * (180 / math.Pi) }
