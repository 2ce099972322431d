// Package color defines the fixed-point RGBA color model used throughout the
// rendering pipeline, along with the per-block shading derivations described
// for the Block data type.
package color

import "math"

// Color is a straight (non-premultiplied) RGBA8 color plus a precomputed
// perceptual brightness. Equality is bytewise.
type Color struct {
	R, G, B, A byte
	Brightness byte
}

// New builds a Color and precomputes its brightness.
func New(r, g, b, a byte) Color {
	return Color{R: r, G: g, B: b, A: a, Brightness: brightness(r, g, b)}
}

// brightness mirrors colors.h's GETBRIGHTNESS macro: a weighted RMS of the
// channels with green weighted heaviest, matching the human eye's sensitivity
// curve used for the vertical shading profile.
func brightness(r, g, b byte) byte {
	v := math.Sqrt(float64(b)*float64(b)*0.236 + float64(g)*float64(g)*0.601 + float64(r)*float64(r)*0.163)
	if v > 255 {
		v = 255
	}
	return byte(math.Round(v))
}

// Empty reports whether the color is fully unset (R=G=B=A=0).
func (c Color) Empty() bool { return c.R == 0 && c.G == 0 && c.B == 0 && c.A == 0 }

// Transparent reports whether the color has zero alpha.
func (c Color) Transparent() bool { return c.A == 0 }

// Opaque reports whether the color has full alpha.
func (c Color) Opaque() bool { return c.A == 255 }

func clampByte(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

// shadeOffset is the fixed per-channel offset used to derive Dark and Light
// shades from a primary color, matching the original renderer's constant
// contrast step for cube side faces.
const shadeOffset = 45

// Dark returns the primary color darkened by the fixed shading offset,
// clamped per-channel, used for a cube's left/unlit face.
func Dark(primary Color) Color {
	return New(
		clampByte(int(primary.R)-shadeOffset),
		clampByte(int(primary.G)-shadeOffset),
		clampByte(int(primary.B)-shadeOffset),
		primary.A,
	)
}

// Light returns the primary color lightened by the fixed shading offset,
// clamped per-channel, used for a cube's right/lit face.
func Light(primary Color) Color {
	return New(
		clampByte(int(primary.R)+shadeOffset),
		clampByte(int(primary.G)+shadeOffset),
		clampByte(int(primary.B)+shadeOffset),
		primary.A,
	)
}

// Blend applies the source-over rule used everywhere a drawer or a canvas
// merge composites one pixel onto another: an opaque source replaces the
// destination outright; a fully transparent source leaves it untouched;
// anything in between blends straight-alpha.
func Blend(d, s Color) Color {
	if d.A == 0 || s.A == 255 {
		return s
	}
	if s.A == 0 {
		return d
	}
	sa := int(s.A)
	da := int(d.A)
	r := (int(s.R)*sa + int(d.R)*(255-sa)) / 255
	g := (int(s.G)*sa + int(d.G)*(255-sa)) / 255
	b := (int(s.B)*sa + int(d.B)*(255-sa)) / 255
	a := da + sa*(255-da)/255
	return New(clampByte(r), clampByte(g), clampByte(b), clampByte(a))
}

// Mod offsets every channel of c by delta, clamped independently, matching
// the original's modColor used for shading and grown-top modulation.
func Mod(c Color, delta int) Color {
	return New(
		clampByte(int(c.R)+delta),
		clampByte(int(c.G)+delta),
		clampByte(int(c.B)+delta),
		c.A,
	)
}
