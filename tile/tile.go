// Package tile streams a completed canvas (or an ordered sequence of
// sub-canvas slices) into either a single line-encoded raster image or a
// pyramid of square tile files, per spec.md §4.5. It also implements the
// disk slice-cache handshake used when a render is split into sub-canvases
// too large to all live in memory at once.
package tile

import "github.com/webchunk-render/isomap/color"

// TileSizes are the six pyramid tile widths in pixels, largest first:
// 4096, 2048, 1024, 512, 256, 128 — spec.md §4.5.
var TileSizes = [6]int{4096, 2048, 1024, 512, 256, 128}

// TileWidth returns the pixel width of tile size index ts (0..5).
func TileWidth(ts int) int { return TileSizes[ts] }

// Row is one horizontal line of RGBA8 pixels, width entries long.
type Row []color.Color

// RowWriter accepts full-width RGBA8 rows in top-to-bottom order and streams
// them into an image encoder. Nothing in this module implements or uses it:
// WriteSingleImage builds the whole cropped image in memory and the Composer
// holds each open tile as a full image, both encoded with png.Encode.
type RowWriter interface {
	// WriteRow writes one row of exactly the writer's configured width.
	WriteRow(row Row) error
	// Close finalizes the stream (footer, file close, ...).
	Close() error
}

// TileWriter is a RowWriter scoped to one square tile: it accepts exactly
// TileWidth(ts) rows of TileWidth(ts) pixels before Close.
type TileWriter interface {
	RowWriter
}

// TileWriterFactory opens a new TileWriter for tile (col, row, ts), named
// per spec.md §6: "x{col}y{row}z{ts}.<imgext>".
type TileWriterFactory func(col, row, ts int) (TileWriter, error)
