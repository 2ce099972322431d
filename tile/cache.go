package tile

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/webchunk-render/isomap/canvas"
	"github.com/webchunk-render/isomap/color"
)

// PartState is the disk slice-cache's handshake state. draw_png.cpp itself
// only ever tracks loaded-or-not (pngPtrCurrent/gPngPartialFileHandle being
// NULL or not); the idle/loaded/saved split here is a deliberate widening of
// that into a state a caller can inspect between writing a part to disk and
// reading it back, so a part's on-disk file is known to be durable (saved)
// before anything drops the in-memory buffer that produced it.
type PartState int

const (
	PartIdle PartState = iota
	PartLoaded
	PartSaved
)

// StateError reports a slice-cache handshake called out of sequence.
type StateError struct {
	Op    string
	State PartState
}

func (e *StateError) Error() string {
	return fmt.Sprintf("tile: %s called in state %d", e.Op, e.State)
}

// SlicePart is a rectangular slab of a render temporarily materialized as an
// in-memory RGBA buffer plus an on-disk temp file, so a large render can be
// composed one bounded slice at a time instead of holding every slice in
// memory simultaneously.
type SlicePart struct {
	X, Y, Width, Height int

	filename string
	img      *image.RGBA
}

// Set writes a pixel at part-local coordinates.
func (p *SlicePart) Set(x, y int, c color.Color) {
	i := p.img.PixOffset(x, y)
	p.img.Pix[i+0], p.img.Pix[i+1], p.img.Pix[i+2], p.img.Pix[i+3] = c.R, c.G, c.B, c.A
}

// At reads a pixel at part-local coordinates.
func (p *SlicePart) At(x, y int) color.Color {
	i := p.img.PixOffset(x, y)
	return color.New(p.img.Pix[i+0], p.img.Pix[i+1], p.img.Pix[i+2], p.img.Pix[i+3])
}

// FillFromCanvas copies src's entire pixel buffer into the part, which must
// already have been allocated with src's exact dimensions.
func (p *SlicePart) FillFromCanvas(src *canvas.Canvas) error {
	if p.Width != src.Width() || p.Height != src.Height() {
		return fmt.Errorf("tile: slice part %dx%d does not match canvas %dx%d", p.Width, p.Height, src.Width(), src.Height())
	}
	for y := 0; y < p.Height; y++ {
		row := src.Row(y)
		for x := 0; x < p.Width; x++ {
			p.Set(x, y, row[x])
		}
	}
	return nil
}

// SliceCache manages the idle/loaded/saved handshake used while composing a
// render out of disk-cached slices: LoadImagePart allocates a part and
// claims the cache; SaveImagePart durably writes it and moves to saved;
// exactly one of ReloadImagePart or DiscardImagePart must follow before
// another part can be loaded — grounded on draw_png.cpp's
// loadImagePart/saveImagePart/discardImagePart trio and on the
// os.MkdirAll+png.Encode disk-cache idiom in cache.go.
type SliceCache struct {
	Dir string

	mu    sync.Mutex
	state PartState
	part  *SlicePart
}

// NewSliceCache prepares a slice cache rooted at dir (created lazily on
// first use, matching cache.go's saveImageCache).
func NewSliceCache(dir string) *SliceCache {
	if dir == "" {
		dir = "cache"
	}
	return &SliceCache{Dir: dir}
}

// LoadImagePart claims the cache for a new part of the given bounds. It must
// not be called again until the previous part has been reloaded or
// discarded; a part that is only saved still holds the cache.
func (sc *SliceCache) LoadImagePart(x, y, width, height int) (*SlicePart, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.state != PartIdle {
		return nil, &StateError{Op: "LoadImagePart", State: sc.state}
	}
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("tile: LoadImagePart: non-positive size %dx%d", width, height)
	}
	if err := os.MkdirAll(sc.Dir, 0755); err != nil {
		return nil, err
	}
	name := fmt.Sprintf("%d.%d.%d.%d.%d.png", x, y, width, height, time.Now().UnixNano())
	part := &SlicePart{
		X: x, Y: y, Width: width, Height: height,
		filename: filepath.Join(sc.Dir, name),
		img:      image.NewRGBA(image.Rect(0, 0, width, height)),
	}
	sc.part = part
	sc.state = PartLoaded
	return part, nil
}

// SaveImagePart flushes the loaded part to its temp PNG file on disk and
// moves the cache to saved. The file is now durable on disk, so a caller is
// free to drop the part's own in-memory buffer; ReloadImagePart reads the
// file back later and returns the cache to idle.
func (sc *SliceCache) SaveImagePart(part *SlicePart) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.state != PartLoaded || sc.part != part {
		return &StateError{Op: "SaveImagePart", State: sc.state}
	}
	f, err := os.Create(part.filename)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(f, part.img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	sc.state = PartSaved
	return nil
}

// DiscardImagePart abandons the part without reading it back, removing its
// temp file if one was written, and returns the cache to idle. Valid from
// either loaded (the part was never saved) or saved (it was written but
// will never be reloaded).
func (sc *SliceCache) DiscardImagePart(part *SlicePart) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if (sc.state != PartLoaded && sc.state != PartSaved) || sc.part != part {
		return &StateError{Op: "DiscardImagePart", State: sc.state}
	}
	sc.state = PartIdle
	sc.part = nil
	if _, err := os.Stat(part.filename); err == nil {
		return os.Remove(part.filename)
	}
	return nil
}

// ReloadImagePart reopens a saved part's PNG file from disk into a fresh
// in-memory buffer, removes the temp file, and returns the cache to idle —
// the read-back half of the handshake composeFinalImage performs when it
// later blends every cached part into the final row stream.
func (sc *SliceCache) ReloadImagePart(part *SlicePart) (*image.RGBA, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.state != PartSaved || sc.part != part {
		return nil, &StateError{Op: "ReloadImagePart", State: sc.state}
	}
	f, err := os.Open(part.filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, err
	}
	rgba, ok := img.(*image.RGBA)
	if !ok {
		b := img.Bounds()
		rgba = image.NewRGBA(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				rgba.Set(x, y, img.At(x, y))
			}
		}
	}
	if err := os.Remove(part.filename); err != nil {
		return nil, err
	}
	sc.state = PartIdle
	sc.part = nil
	return rgba, nil
}
