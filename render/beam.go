package render

import "github.com/webchunk-render/isomap/color"

// Beam is an active vertical beacon (or marker) beam rising through a
// chunk's column at (LocalX, LocalZ) — local section coordinates in [0,16).
// Column membership is exact equality, matching canvas.cpp's Beam::column.
type Beam struct {
	LocalX, LocalZ int
	Color          color.BlockColor
}

// Column reports whether (x, z) is this beam's column.
func (b Beam) Column(x, z int) bool { return b.LocalX == x && b.LocalZ == z }
