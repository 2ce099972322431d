package tile

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/webchunk-render/isomap/canvas"
	"github.com/webchunk-render/isomap/color"
)

// setPixel writes c into an *image.RGBA at pixel (x, y), the way
// saveImageCache in cache.go builds its output images.
func setPixel(img *image.RGBA, x, y int, c color.Color) {
	i := img.PixOffset(x, y)
	img.Pix[i+0] = c.R
	img.Pix[i+1] = c.G
	img.Pix[i+2] = c.B
	img.Pix[i+3] = c.A
}

// WriteSingleImage encodes the full canvas as one PNG, cropped to the first
// and last non-empty rows per spec.md §4.1.
func WriteSingleImage(w io.Writer, c *canvas.Canvas) error {
	first, last := c.CroppedBounds()
	if c.CroppedHeight() == 0 {
		first, last = 0, c.Height()-1
	}
	height := last - first + 1
	img := image.NewRGBA(image.Rect(0, 0, c.Width(), height))
	for y := 0; y < height; y++ {
		row := c.Row(first + y)
		for x, px := range row {
			setPixel(img, x, y, px)
		}
	}
	return png.Encode(w, img)
}

// Composer streams a canvas into a pyramid of square tile files, following
// draw_png.cpp's composeFinalImage: every 128 rows it re-evaluates which
// tile sizes have a boundary at the current row and (re)opens every size
// from the largest crossed boundary down to the smallest, closing whichever
// tiles were previously open first.
type Composer struct {
	Dir string
	Ext string

	width, realWidth, height int
	tilesPerRow               [6]int
	open                      [][]*os.File
	openImg                   [][]*image.RGBA
}

// NewComposer prepares a tile pyramid writer for an image of the given
// dimensions. width is rounded up to the next multiple of 4096 the way
// composeFinalImage pads tempWidth, so every tile size divides it evenly;
// the real, unpadded width is kept separately so tile-opening can be gated
// against it, matching composeFinalImage's tileWidth*tileIndex < gPngWidth
// check — gating against the padded width would open extra trailing tile
// columns whenever width isn't an exact multiple of a tile size.
func NewComposer(dir string, width, height int) *Composer {
	if dir == "" {
		dir = "."
	}
	padded := ((width-1)/TileSizes[0] + 1) * TileSizes[0]
	c := &Composer{Dir: dir, Ext: "png", width: padded, realWidth: width, height: height}
	for ts := range TileSizes {
		c.tilesPerRow[ts] = padded / TileWidth(ts)
	}
	c.open = make([][]*os.File, 6)
	c.openImg = make([][]*image.RGBA, 6)
	for ts := 0; ts < 6; ts++ {
		c.open[ts] = make([]*os.File, c.tilesPerRow[ts])
		c.openImg[ts] = make([]*image.RGBA, c.tilesPerRow[ts])
	}
	return c
}

// boundaryStart returns the largest tile size index whose boundary the row y
// sits on, matching composeFinalImage's y%4096/2048/.../256 cascade.
func boundaryStart(y int) int {
	switch {
	case y%4096 == 0:
		return 0
	case y%2048 == 0:
		return 1
	case y%1024 == 0:
		return 2
	case y%512 == 0:
		return 3
	case y%256 == 0:
		return 4
	default:
		return 5
	}
}

func (c *Composer) tileName(col, row, ts int) string {
	return filepath.Join(c.Dir, fmt.Sprintf("x%dy%dz%d.%s", col, row, ts, c.Ext))
}

func (c *Composer) closeTile(ts, idx int) error {
	img := c.openImg[ts][idx]
	f := c.open[ts][idx]
	if f == nil {
		return nil
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	err := f.Close()
	c.open[ts][idx] = nil
	c.openImg[ts][idx] = nil
	return err
}

func (c *Composer) openTile(ts, idx, y int) error {
	tw := TileWidth(ts)
	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		return err
	}
	f, err := os.Create(c.tileName(idx, y/tw, ts))
	if err != nil {
		return err
	}
	c.open[ts][idx] = f
	c.openImg[ts][idx] = image.NewRGBA(image.Rect(0, 0, tw, tw))
	return nil
}

// WriteRow feeds one full-width canvas row at absolute row index y into
// every currently open tile, opening/closing tiles at 128-row boundaries.
func (c *Composer) WriteRow(y int, row Row) error {
	if y%128 == 0 {
		start := boundaryStart(y)
		for ts := start; ts < 6; ts++ {
			for idx := 0; idx < c.tilesPerRow[ts]; idx++ {
				if c.open[ts][idx] != nil {
					if err := c.closeTile(ts, idx); err != nil {
						return err
					}
				}
				if TileWidth(ts)*idx < c.realWidth {
					if err := c.openTile(ts, idx, y); err != nil {
						return err
					}
				}
			}
		}
	}

	for ts := 0; ts < 6; ts++ {
		tw := TileWidth(ts)
		localY := y % tw
		for idx := 0; idx < c.tilesPerRow[ts]; idx++ {
			img := c.openImg[ts][idx]
			if img == nil {
				continue
			}
			base := idx * tw
			for x := 0; x < tw; x++ {
				var px color.Color
				if base+x < len(row) {
					px = row[base+x]
				}
				setPixel(img, x, localY, px)
			}
		}
	}
	return nil
}

// Finish pads and closes any tiles still open past the last real row, the
// way composeFinalImage zero-fills the tail of bottom-edge tiles.
func (c *Composer) Finish() error {
	for ts := 0; ts < 6; ts++ {
		for idx := 0; idx < c.tilesPerRow[ts]; idx++ {
			if c.open[ts][idx] == nil {
				continue
			}
			if err := c.closeTile(ts, idx); err != nil {
				return err
			}
		}
	}
	return nil
}

// ComposePyramid drives a Composer across an entire canvas, cropped to its
// non-empty rows.
func ComposePyramid(dir string, c *canvas.Canvas) error {
	first, last := c.CroppedBounds()
	if c.CroppedHeight() == 0 {
		first, last = 0, c.Height()-1
	}
	height := last - first + 1
	comp := NewComposer(dir, c.Width(), height)
	for y := 0; y < height; y++ {
		if err := comp.WriteRow(y, Row(c.Row(first+y))); err != nil {
			return err
		}
	}
	return comp.Finish()
}
