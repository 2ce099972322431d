package canvas

import (
	"fmt"

	"github.com/webchunk-render/isomap/color"
	"github.com/webchunk-render/isomap/world"
)

// calcAnchor computes the pixel position inside c where sub's bottom-left
// corner belongs, matching canvas.cpp's calcAnchor: the sub-canvas offsets
// from c's bounds on each side, combined per orientation.
func (c *Canvas) calcAnchor(sub *Canvas) (anchorX, anchorY int) {
	minOffset := (sub.Coords.MinX - c.Coords.MinX) + (sub.Coords.MinZ - c.Coords.MinZ)
	maxOffset := (c.Coords.MaxX - sub.Coords.MaxX) + (c.Coords.MaxZ - sub.Coords.MaxZ)

	switch c.Coords.Orientation {
	case world.NW:
		anchorX = minOffset * 2
		anchorY = c.height - maxOffset
	case world.SE:
		anchorX = maxOffset * 2
		anchorY = c.height - minOffset
	case world.SW:
		anchorX = maxOffset * 2
		anchorY = c.height - maxOffset
	case world.NE:
		anchorX = minOffset * 2
		anchorY = c.height - minOffset
	}

	anchorX = anchorX + c.padding - sub.padding
	anchorY = anchorY - c.padding + sub.padding
	return anchorX, anchorY
}

// Merge superimposes sub onto c. The caller guarantees sub fits inside c and
// that merges arrive in slice order from one rotational direction. Rows are
// blended bottom-up using overlay (NW, SW) or underlay (NE, SE), matching
// canvas.cpp's merge/overlay/underlay.
func (c *Canvas) Merge(sub *Canvas) error {
	if sub.width > c.width || sub.height > c.height {
		return fmt.Errorf("canvas: cannot merge a sub-canvas of bigger dimensions (%dx%d into %dx%d)", sub.width, sub.height, c.width, c.height)
	}

	anchorX, anchorY := c.calcAnchor(sub)
	overlay := c.Coords.Orientation == world.NW || c.Coords.Orientation == world.SW

	for line := 1; line <= sub.height; line++ {
		destRow := anchorY - line
		srcRow := sub.height - line
		if destRow < 0 || destRow >= c.height {
			continue
		}
		destBase := destRow*c.width + anchorX
		srcBase := srcRow * sub.width
		for px := 0; px < sub.width; px++ {
			dx := destBase + px
			if dx < destRow*c.width || dx >= (destRow+1)*c.width {
				continue
			}
			s := sub.buf[srcBase+px]
			if overlay {
				mergeOverlayPixel(&c.buf[dx], s)
			} else {
				mergeUnderlayPixel(&c.buf[dx], s)
			}
		}
	}
	return nil
}

// mergeOverlayPixel paints sub's pixel over dest: an opaque source, or an
// empty destination, is copied outright; otherwise the two are blended.
func mergeOverlayPixel(dest *color.Color, s color.Color) {
	if s.A == 0 {
		return
	}
	if s.A == 255 || dest.A == 0 {
		*dest = s
		return
	}
	*dest = color.Blend(*dest, s)
}

// mergeUnderlayPixel fills dest only where it is not already fully opaque:
// sub's pixel becomes the base and dest's own (nearer) partial-alpha content,
// if any, is painted back on top of it, matching canvas.cpp's underlay.
func mergeUnderlayPixel(dest *color.Color, s color.Color) {
	if s.A == 0 || dest.A == 255 {
		return
	}
	old := *dest
	*dest = color.Blend(s, old)
}
