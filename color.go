package serenity

import (
	"fmt"
	"image/color"
	"math"
)

// Color represents an RGBA color. Red, green and blue are in [0, 255] and
// alpha is in [0, 1]. Channels are clamped whenever a Color is constructed
// or derived, so a Color never holds an out-of-range value. The zero value
// is transparent black.
type Color struct {
	r, g, b, a float64
}

// Predefined colors.
var (
	ColorBlack       = Color{0, 0, 0, 1}
	ColorWhite       = Color{255, 255, 255, 1}
	ColorTransparent = Color{}
)

// NewColor returns a color with each channel clamped to its range.
func NewColor(r, g, b, a float64) Color {
	return Color{
		r: clampChannel(r, 255),
		g: clampChannel(g, 255),
		b: clampChannel(b, 255),
		a: clampChannel(a, 1),
	}
}

// RGB returns an opaque color.
func RGB(r, g, b float64) Color {
	return NewColor(r, g, b, 1)
}

// clampChannel clamps v to [0, hi]. NaN collapses to 0.
func clampChannel(v, hi float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}

// R returns the red channel in [0, 255].
func (c Color) R() float64 { return c.r }

// G returns the green channel in [0, 255].
func (c Color) G() float64 { return c.g }

// B returns the blue channel in [0, 255].
func (c Color) B() float64 { return c.b }

// A returns the alpha channel in [0, 1].
func (c Color) A() float64 { return c.a }

// Blend returns the component-wise average of c and o.
func (c Color) Blend(o Color) Color {
	return NewColor(
		(c.r+o.r)/2,
		(c.g+o.g)/2,
		(c.b+o.b)/2,
		(c.a+o.a)/2,
	)
}

// Lerp interpolates from c toward o. t is clamped to [0, 1].
func (c Color) Lerp(o Color, t float64) Color {
	return NewColor(
		Lerp(c.r, o.r, t),
		Lerp(c.g, o.g, t),
		Lerp(c.b, o.b, t),
		Lerp(c.a, o.a, t),
	)
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	return NewColor(c.r, c.g, c.b, a)
}

// NRGBA converts c to a non-premultiplied 8-bit color for image APIs.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(math.Round(c.r)),
		G: uint8(math.Round(c.g)),
		B: uint8(math.Round(c.b)),
		A: uint8(math.Round(c.a * 255)),
	}
}

// Normalized returns the channels scaled to [0, 1].
func (c Color) Normalized() (r, g, b, a float64) {
	return c.r / 255, c.g / 255, c.b / 255, c.a
}

func (c Color) String() string {
	return fmt.Sprintf("rgba(%g, %g, %g, %g)", c.r, c.g, c.b, c.a)
}
