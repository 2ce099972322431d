package color

import "math"

// BrightnessLookup is the per-Y-level vertical shading profile: linear from
// -100 at y=0 to +100 at y=255, matching canvas.cpp's brightnessLookup table.
// Float-valued so the profile is genuinely strictly increasing across all 256
// entries (an int table can't be, since 256 steps can't fit strictly
// increasing into the 201 integers -100..100).
type BrightnessLookup [256]float64

// NewBrightnessLookup builds the canonical linear lookup table.
func NewBrightnessLookup() BrightnessLookup {
	var lut BrightnessLookup
	for y := 0; y < 256; y++ {
		lut[y] = -100 + 200*float64(y)/255
	}
	return lut
}

// Delta computes the shading offset canvas.cpp applies to a block at height y
// using the block's own primary brightness to modulate the lookup value.
func (lut BrightnessLookup) Delta(y int, primaryBrightness byte) int {
	factor := float64(primaryBrightness)/323.0 + 0.21
	return int(math.Round(lut[y] * factor))
}
