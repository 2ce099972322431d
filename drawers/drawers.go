// Package drawers holds the fixed registry of block-shape stamp functions:
// one small pure function per color.ShapeType, each painting a 4-pixel-wide,
// up-to-5-pixel-tall glyph into a canvas at a block's projected position.
//
// The pixel layouts below are transcribed from draw_png.cpp's drawHead,
// drawThin, drawTorch, drawPlant, drawFire, drawOre, drawGrown, drawRod,
// drawSlab and drawWire (identifiers renamed, pixel writes unchanged). Only
// the dispatch table that wires a block's type string to one of these
// functions — blocktypes.def/block_drawers.h — is genuinely absent from the
// retrieved source; Registry below plays that role directly. See DESIGN.md.
package drawers

import "github.com/webchunk-render/isomap/color"

// Surface is the minimal canvas operation a drawer needs: blend one color
// onto the pixel at (px, py), using the standard source-over rule. Drawers
// never read back what they wrote and never touch pixels outside their own
// stamp.
type Surface interface {
	Blend(px, py int, c color.Color)
}

// Metadata is the subset of a block's NBT state a drawer may consult —
// currently only the "Properties" map, which drawSlab reads for its variant
// (Properties["type"] == "top").
type Metadata struct {
	Properties map[string]string
}

// Request is everything one drawer invocation needs: where to paint, and the
// block's own metadata and resolved color.
type Request struct {
	PX, PY   int
	Metadata Metadata
	Color    color.BlockColor
}

// Drawer paints one block's stamp into s at req.PX, req.PY.
type Drawer func(s Surface, req Request)

// Registry is the fixed table indexed by color.ShapeType.
var Registry = [...]Drawer{
	color.ShapeFull:        drawFull,
	color.ShapeSlab:        drawSlab,
	color.ShapeStairs:      drawStairs,
	color.ShapeTorch:       drawTorch,
	color.ShapePlant:       drawPlant,
	color.ShapeFire:        drawFire,
	color.ShapeOre:         drawOre,
	color.ShapeGrown:       drawGrown,
	color.ShapeRod:         drawRod,
	color.ShapeThin:        drawThin,
	color.ShapeWire:        drawWire,
	color.ShapeTransparent: drawTransparent,
	color.ShapeHidden:      drawHidden,
	color.ShapeHead:        drawHead,
}

// Draw dispatches req to the drawer registered for req.Color.Type.
func Draw(s Surface, req Request) {
	Registry[req.Color.Type](s, req)
}

// drawFull paints a standard cube: a flat primary top face and two shaded
// side faces (dark on the left, light on the right), the shape every other
// drawer below is a variation of.
func drawFull(s Surface, req Request) {
	x, y, c := req.PX, req.PY, req.Color
	s.Blend(x, y, c.Primary)
	s.Blend(x+1, y, c.Primary)
	s.Blend(x+2, y, c.Primary)
	s.Blend(x+3, y, c.Primary)
	for row := 1; row <= 3; row++ {
		s.Blend(x, y+row, c.Dark)
		s.Blend(x+1, y+row, c.Dark)
		s.Blend(x+2, y+row, c.Light)
		s.Blend(x+3, y+row, c.Light)
	}
}

// drawSlab paints a half-height cube, its second row splitting into a
// primary/primary middle pair for the bottom/double variant (a hack to make
// the step look gradual) or a dark/light middle pair for the top variant,
// which also shifts the whole stamp up one row so it sits flush against the
// block above it. "double" is not special-cased: it draws identically to
// "bottom".
func drawSlab(s Surface, req Request) {
	x, y, c := req.PX, req.PY, req.Color
	top := req.Metadata.Properties["type"] == "top"
	offset := 1
	if top {
		offset = 0
	}
	y += offset
	s.Blend(x, y, c.Primary)
	s.Blend(x+1, y, c.Primary)
	s.Blend(x+2, y, c.Primary)
	s.Blend(x+3, y, c.Primary)
	s.Blend(x, y+1, c.Dark)
	if top {
		s.Blend(x+1, y+1, c.Dark)
		s.Blend(x+2, y+1, c.Light)
	} else {
		s.Blend(x+1, y+1, c.Primary)
		s.Blend(x+2, y+1, c.Primary)
	}
	s.Blend(x+3, y+1, c.Light)
	s.Blend(x, y+2, c.Dark)
	s.Blend(x+1, y+2, c.Dark)
	s.Blend(x+2, y+2, c.Light)
	s.Blend(x+3, y+2, c.Light)
}

// drawStairs paints a stepped face: a full-height riser on one side and a
// half-height tread on the other, approximating the silhouette a staircase
// casts in the fixed isometric projection. Unlike every other shape in this
// registry, no drawStairs body was recovered anywhere in the corpus — this
// stamp is this package's own best-effort glyph rather than a transcription.
// See DESIGN.md.
func drawStairs(s Surface, req Request) {
	x, y, c := req.PX, req.PY, req.Color
	s.Blend(x, y, c.Primary)
	s.Blend(x+1, y, c.Primary)
	s.Blend(x, y+1, c.Dark)
	s.Blend(x+1, y+1, c.Dark)
	s.Blend(x+2, y+1, c.Primary)
	s.Blend(x+3, y+1, c.Primary)
	for row := 2; row <= 3; row++ {
		s.Blend(x, y+row, c.Dark)
		s.Blend(x+1, y+row, c.Dark)
		s.Blend(x+2, y+row, c.Light)
		s.Blend(x+3, y+row, c.Light)
	}
}

// drawTorch paints the secondary color over two stacked primary pixels in
// the stamp's third column, default-oriented vertically (wall-mounted
// torches are not distinguished — no orientation metadata is read). Falls
// back to primary where a palette entry carries no secondary.
func drawTorch(s Surface, req Request) {
	x, y, c := req.PX, req.PY, req.Color
	secondary := c.Primary
	if c.HasSecondary {
		secondary = c.Secondary
	}
	s.Blend(x+2, y+1, secondary)
	s.Blend(x+2, y+2, c.Primary)
	s.Blend(x+2, y+3, c.Primary)
}

// drawPlant paints a short, narrow sprite leaving most of the stamp
// untouched so the block beneath shows through — the usual silhouette for
// crops, saplings and other sub-block plants.
func drawPlant(s Surface, req Request) {
	x, y, c := req.PX, req.PY, req.Color
	s.Blend(x+1, y+1, c.Primary)
	s.Blend(x+3, y+1, c.Primary)
	s.Blend(x+2, y+2, c.Primary)
	s.Blend(x+1, y+3, c.Primary)
}

// drawFire paints a semi-transparent flame shape out of the block's own
// light/dark/primary colors, leaving most of the stamp untouched so it
// always reads as an open, licking flame rather than a solid block.
func drawFire(s Surface, req Request) {
	x, y, c := req.PX, req.PY, req.Color
	s.Blend(x, y, c.Light)
	s.Blend(x+2, y, c.Dark)
	s.Blend(x, y+1, c.Dark)
	s.Blend(x+1, y+1, c.Primary)
	s.Blend(x+3, y+1, c.Light)
	s.Blend(x, y+2, c.Dark)
	s.Blend(x+2, y+2, c.Primary)
	s.Blend(x+3, y+2, c.Light)
	s.Blend(x+2, y+3, c.Light)
}

// drawOre paints a full cube whose top face and two of the three lower rows
// swap some pixels for the secondary color, the vein speckle an ore block's
// palette entry carries. Falls back to primary where a palette entry
// carries no secondary.
func drawOre(s Surface, req Request) {
	x, y, c := req.PX, req.PY, req.Color
	secondary := c.Primary
	if c.HasSecondary {
		secondary = c.Secondary
	}
	s.Blend(x, y, c.Primary)
	s.Blend(x+1, y, c.Primary)
	s.Blend(x+2, y, c.Primary)
	s.Blend(x+3, y, secondary)
	s.Blend(x, y+1, c.Dark)
	s.Blend(x+1, y+1, c.Dark)
	s.Blend(x+2, y+1, secondary)
	s.Blend(x+3, y+1, c.Light)
	s.Blend(x, y+2, c.Dark)
	s.Blend(x+1, y+2, secondary)
	s.Blend(x+2, y+2, c.Light)
	s.Blend(x+3, y+2, secondary)
	s.Blend(x, y+3, secondary)
	s.Blend(x+1, y+3, c.Dark)
	s.Blend(x+2, y+3, c.Light)
	s.Blend(x+3, y+3, c.Light)
}

// drawGrown paints a full cube whose top face and the two middle pixels of
// its second row use the secondary color, those two middle pixels darkened
// by fixed offsets of -25 and -15 — the stamp used for blocks like grass or
// mycelium where the top differs from the sides. The brightness-derived term
// sub is below 1 for every primary brightness (at most 255/323+0.21) and
// truncates to 0, so the modulation does not vary with the primary color.
// Falls back to primary where a palette entry carries no secondary.
func drawGrown(s Surface, req Request) {
	x, y, c := req.PX, req.PY, req.Color
	secondary := c.Primary
	if c.HasSecondary {
		secondary = c.Secondary
	}
	sub := int(float64(c.Primary.Brightness)/323.0 + 0.21)
	darkMod := color.Mod(secondary, sub-25)
	lightMod := color.Mod(secondary, sub-15)

	s.Blend(x, y, secondary)
	s.Blend(x+1, y, secondary)
	s.Blend(x+2, y, secondary)
	s.Blend(x+3, y, secondary)
	s.Blend(x, y+1, c.Dark)
	s.Blend(x+1, y+1, darkMod)
	s.Blend(x+2, y+1, lightMod)
	s.Blend(x+3, y+1, c.Light)
	for row := 2; row <= 3; row++ {
		s.Blend(x, y+row, c.Dark)
		s.Blend(x+1, y+row, c.Dark)
		s.Blend(x+2, y+row, c.Light)
		s.Blend(x+3, y+row, c.Light)
	}
}

// drawRod paints a thin centered column over 4 rows, a primary cap on top
// followed by a dark/light shaft — used for end rods/lightning rods, which
// render as a full fat pole rather than drawTorch's thinner stick.
func drawRod(s Surface, req Request) {
	x, y, c := req.PX, req.PY, req.Color
	s.Blend(x+1, y, c.Primary)
	s.Blend(x+2, y, c.Primary)
	for row := 1; row <= 3; row++ {
		s.Blend(x+1, y+row, c.Dark)
		s.Blend(x+2, y+row, c.Light)
	}
}

// drawThin paints a single flat row overwriting the block below's top
// layer, representing a material that occupies only a thin horizontal slice
// (carpet, lily pad, pressure plate), plus a two-pixel foot spilling into
// the row below that.
func drawThin(s Surface, req Request) {
	x, y, c := req.PX, req.PY, req.Color
	s.Blend(x, y+3, c.Primary)
	s.Blend(x+1, y+3, c.Primary)
	s.Blend(x+2, y+3, c.Primary)
	s.Blend(x+3, y+3, c.Primary)
	s.Blend(x+1, y+4, c.Primary)
	s.Blend(x+2, y+4, c.Primary)
}

// drawWire paints a two-pixel dot near the stamp's base, the minimal glyph
// for a flat, sub-pixel-thin decoration like redstone wire.
func drawWire(s Surface, req Request) {
	x, y, c := req.PX, req.PY, req.Color
	s.Blend(x+1, y+2, c.Primary)
	s.Blend(x+2, y+2, c.Primary)
}

// drawTransparent blends the primary color uniformly across the top 4x3
// area, used for glass and other blocks that should tint what's behind them
// rather than occlude it with distinct faces.
func drawTransparent(s Surface, req Request) {
	x, y, c := req.PX, req.PY, req.Color
	for row := 0; row <= 2; row++ {
		s.Blend(x, y+row, c.Primary)
		s.Blend(x+1, y+row, c.Primary)
		s.Blend(x+2, y+row, c.Primary)
		s.Blend(x+3, y+row, c.Primary)
	}
}

// drawHidden draws nothing; it exists so barrier-like blocks still resolve
// to a registered drawer instead of panicking on a missing table entry.
func drawHidden(Surface, Request) {}

// drawHead paints a small block centered within the stamp's footprint,
// matching a mob head's smaller-than-a-full-block silhouette.
func drawHead(s Surface, req Request) {
	x, y, c := req.PX, req.PY, req.Color
	s.Blend(x+1, y+2, c.Primary)
	s.Blend(x+2, y+2, c.Primary)
	s.Blend(x+1, y+3, c.Dark)
	s.Blend(x+2, y+3, c.Light)
}
