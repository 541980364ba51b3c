package scene

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an RGBA colour with components in [0,1].
type Color struct {
	R, G, B, A float64
}

// RGB returns an opaque colour.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA returns a colour with alpha a.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Mix interpolates linearly from c to d; t is clamped to [0,1].
func (c Color) Mix(d Color, t float64) Color {
	t = clamp01(t)
	return Color{
		R: c.R + (d.R-c.R)*t,
		G: c.G + (d.G-c.G)*t,
		B: c.B + (d.B-c.B)*t,
		A: c.A + (d.A-c.A)*t,
	}
}

// ParseHex parses "#rrggbb" (case-insensitive) into an opaque colour.
func ParseHex(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if len(s) != 7 || s[0] != '#' {
		return Color{}, fmt.Errorf("parse colour %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	return RGB(
		float64(v>>16&0xff)/255,
		float64(v>>8&0xff)/255,
		float64(v&0xff)/255,
	), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
