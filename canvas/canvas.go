// Package canvas implements the fixed-size RGBA8 pixel buffer the renderer
// paints into: world-to-image projection, cropping of empty margins, and the
// pairwise overlay/underlay merge used to stitch independently rendered
// slices back together.
package canvas

import (
	"fmt"
	"image"

	"github.com/webchunk-render/isomap/color"
	"github.com/webchunk-render/isomap/world"
)

// HeightOffset is the canonical vertical pixel step between stacked blocks.
// The legacy 2-pixel variant is intentionally not implemented.
const HeightOffset = 3

const bytesPerPixel = 4

// Canvas is a fixed-size pixel buffer plus the geometry needed to project
// world coordinates onto it.
type Canvas struct {
	Coords world.Coordinates

	nXChunks, nZChunks int
	sizeX, sizeZ        int
	offsetX, offsetZ     int
	padding              int

	width, height int
	buf           []color.Color

	shading    bool
	brightness color.BrightnessLookup

	air, water, beaconBeam color.BlockColor
}

// New allocates a Canvas for the given coordinates, deriving width/height,
// per-orientation chunk-alignment offsets, and the shading lookup table the
// way canvas.cpp's constructor does.
func New(coords world.Coordinates, padding int, shading bool, palette color.Palette) *Canvas {
	c := newGeometry(coords, padding)
	c.shading = shading

	if bc, ok := palette.Lookup("mcmap:beacon_beam"); ok {
		c.beaconBeam = bc
	}
	if bc, ok := palette.Lookup("minecraft:water"); ok {
		c.water = bc
	}
	if bc, ok := palette.Lookup("minecraft:air"); ok {
		c.air = bc
	}
	c.brightness = color.NewBrightnessLookup()

	return c
}

// NewFromRGBA rebuilds a Canvas's geometry for coords/padding and loads
// img's pixels straight into its buffer, reconstructing a slice that was
// flushed to disk and read back by a SliceCache so it can be merged into
// another Canvas. It carries no palette lookups: Merge never consults them.
func NewFromRGBA(coords world.Coordinates, padding int, img *image.RGBA) (*Canvas, error) {
	c := newGeometry(coords, padding)
	b := img.Bounds()
	if b.Dx() != c.width || b.Dy() != c.height {
		return nil, fmt.Errorf("canvas: reloaded image %dx%d does not match expected %dx%d", b.Dx(), b.Dy(), c.width, c.height)
	}
	for y := 0; y < c.height; y++ {
		base := y * c.width
		for x := 0; x < c.width; x++ {
			i := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			c.buf[base+x] = color.New(img.Pix[i+0], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3])
		}
	}
	return c, nil
}

// newGeometry computes width/height, per-orientation chunk-alignment
// offsets, and allocates the pixel buffer — the part of New that every
// Canvas needs regardless of whether it is freshly rendered or rebuilt from
// a reloaded image.
func newGeometry(coords world.Coordinates, padding int) *Canvas {
	c := &Canvas{
		Coords:  coords,
		padding: padding,
	}

	c.nXChunks = (coords.MaxX >> 4) - (coords.MinX >> 4) + 1
	c.nZChunks = (coords.MaxZ >> 4) - (coords.MinZ >> 4) + 1
	c.sizeX = coords.SizeX()
	c.sizeZ = coords.SizeZ()

	switch coords.Orientation {
	case world.NW:
		c.offsetX = coords.MinX & 0x0f
		c.offsetZ = coords.MinZ & 0x0f
	case world.NE:
		c.offsetX = 15 - (coords.MaxX & 0x0f)
		c.offsetZ = coords.MinZ & 0x0f
	case world.SW:
		c.offsetX = coords.MinX & 0x0f
		c.offsetZ = 15 - (coords.MaxZ & 0x0f)
	case world.SE:
		c.offsetX = 15 - (coords.MaxX & 0x0f)
		c.offsetZ = 15 - (coords.MaxZ & 0x0f)
	}

	if coords.Orientation == world.NE || coords.Orientation == world.SW {
		c.nXChunks, c.nZChunks = c.nZChunks, c.nXChunks
		c.sizeX, c.sizeZ = c.sizeZ, c.sizeX
		c.offsetX, c.offsetZ = c.offsetZ, c.offsetX
	}

	c.width = (c.sizeX + c.sizeZ + padding) * 2
	c.height = c.sizeX + c.sizeZ + (256-coords.MinY)*HeightOffset + padding*2 + 1
	c.buf = make([]color.Color, c.width*c.height)

	return c
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }
func (c *Canvas) NXChunks() int { return c.nXChunks }
func (c *Canvas) NZChunks() int { return c.nZChunks }
func (c *Canvas) SizeX() int    { return c.sizeX }
func (c *Canvas) SizeZ() int    { return c.sizeZ }
func (c *Canvas) Padding() int  { return c.padding }
func (c *Canvas) BeaconBeam() color.BlockColor { return c.beaconBeam }
func (c *Canvas) Shading() bool { return c.shading }

// At returns the pixel at (px, py); out-of-bounds coordinates panic, since
// spec §4.1 treats that as a programmer error that must fail loudly.
func (c *Canvas) At(px, py int) color.Color {
	c.checkBounds(px, py)
	return c.buf[py*c.width+px]
}

// Set writes the pixel at (px, py).
func (c *Canvas) Set(px, py int, col color.Color) {
	c.checkBounds(px, py)
	c.buf[py*c.width+px] = col
}

// Blend composites col onto the existing pixel at (px, py) using the
// standard source-over rule.
func (c *Canvas) Blend(px, py int, col color.Color) {
	c.checkBounds(px, py)
	i := py*c.width + px
	c.buf[i] = color.Blend(c.buf[i], col)
}

// Row returns the pixel row at index y as a slice sharing the canvas's own
// backing array — callers must not retain it past the canvas's lifetime nor
// mutate it (row-streaming writers only read).
func (c *Canvas) Row(y int) []color.Color {
	if y < 0 || y >= c.height {
		panic(fmt.Sprintf("canvas: invalid row %d/%d", y, c.height))
	}
	return c.buf[y*c.width : (y+1)*c.width]
}

func (c *Canvas) checkBounds(px, py int) {
	if px < 0 || px > c.width-1 {
		panic(fmt.Sprintf("canvas: invalid x: %d/%d", px, c.width))
	}
	if py < 0 || py > c.height-1 {
		panic(fmt.Sprintf("canvas: invalid y: %d/%d", py, c.height))
	}
}

// Project computes the pixel position of world block (x, y, z), applying the
// chunk-alignment correction before the projection formula, matching
// canvas.cpp's renderBlock.
func (c *Canvas) Project(x, y, z int) (px, py int) {
	x -= c.offsetX
	z -= c.offsetZ

	px = 2*(c.sizeZ-1) + (x-z)*2 + c.padding
	py = c.height - 2 - c.padding + x + z - c.sizeX - c.sizeZ - (y-c.Coords.MinY)*HeightOffset
	return px, py
}

// ShadingDelta returns the per-channel shading offset for a block at height
// y with the given primary brightness, or 0 if shading is disabled.
func (c *Canvas) ShadingDelta(y int, primaryBrightness byte) int {
	if !c.shading {
		return 0
	}
	return c.brightness.Delta(y, primaryBrightness)
}
