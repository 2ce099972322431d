package tile

import (
	"bytes"
	"os"
	"testing"

	"github.com/webchunk-render/isomap/canvas"
	"github.com/webchunk-render/isomap/color"
	"github.com/webchunk-render/isomap/world"
)

func TestSliceCacheHandshake(t *testing.T) {
	dir := t.TempDir()
	sc := NewSliceCache(dir)

	part, err := sc.LoadImagePart(0, 0, 4, 4)
	if err != nil {
		t.Fatalf("LoadImagePart: %v", err)
	}
	if _, err := sc.LoadImagePart(0, 0, 4, 4); err == nil {
		t.Fatalf("expected StateError on double LoadImagePart")
	}
	part.Set(1, 1, color.New(0x10, 0x20, 0x30, 0xff))
	if err := sc.SaveImagePart(part); err != nil {
		t.Fatalf("SaveImagePart: %v", err)
	}
	if err := sc.SaveImagePart(part); err == nil {
		t.Fatalf("expected StateError on double SaveImagePart")
	}
	if _, err := sc.LoadImagePart(4, 0, 2, 2); err == nil {
		t.Fatalf("expected StateError on LoadImagePart while a part is still saved, unreloaded")
	}

	filename := part.filename
	if _, err := sc.ReloadImagePart(part); err != nil {
		t.Fatalf("ReloadImagePart: %v", err)
	}
	if _, err := sc.ReloadImagePart(part); err == nil {
		t.Fatalf("expected StateError on double ReloadImagePart")
	}
	if _, err := os.Stat(filename); !os.IsNotExist(err) {
		t.Errorf("reloaded part's temp file should be gone, got err=%v", err)
	}

	part2, err := sc.LoadImagePart(4, 0, 2, 2)
	if err != nil {
		t.Fatalf("second LoadImagePart: %v", err)
	}
	if err := sc.DiscardImagePart(part2); err != nil {
		t.Fatalf("DiscardImagePart: %v", err)
	}
	if _, err := os.Stat(part2.filename); !os.IsNotExist(err) {
		t.Errorf("discarded part's temp file should be gone, got err=%v", err)
	}

	part3, err := sc.LoadImagePart(0, 4, 2, 2)
	if err != nil {
		t.Fatalf("third LoadImagePart: %v", err)
	}
	if err := sc.SaveImagePart(part3); err != nil {
		t.Fatalf("SaveImagePart(part3): %v", err)
	}
	if err := sc.DiscardImagePart(part3); err != nil {
		t.Fatalf("DiscardImagePart on a saved part: %v", err)
	}
	if _, err := os.Stat(part3.filename); !os.IsNotExist(err) {
		t.Errorf("discarding a saved part should remove its temp file, got err=%v", err)
	}
}

func TestReloadImagePart(t *testing.T) {
	dir := t.TempDir()
	sc := NewSliceCache(dir)
	part, err := sc.LoadImagePart(0, 0, 2, 2)
	if err != nil {
		t.Fatalf("LoadImagePart: %v", err)
	}
	if _, err := sc.ReloadImagePart(part); err == nil {
		t.Fatalf("expected StateError on ReloadImagePart before SaveImagePart")
	}
	want := color.New(0xaa, 0xbb, 0xcc, 0xff)
	part.Set(0, 0, want)
	if err := sc.SaveImagePart(part); err != nil {
		t.Fatalf("SaveImagePart: %v", err)
	}

	img, err := sc.ReloadImagePart(part)
	if err != nil {
		t.Fatalf("ReloadImagePart: %v", err)
	}
	r, g, b, a := img.At(0, 0).RGBA()
	if byte(r>>8) != want.R || byte(g>>8) != want.G || byte(b>>8) != want.B || byte(a>>8) != want.A {
		t.Errorf("reloaded pixel = %v, want %+v", img.At(0, 0), want)
	}
	if _, err := os.Stat(part.filename); !os.IsNotExist(err) {
		t.Errorf("reload should remove the temp file, got err=%v", err)
	}

	if _, err := sc.LoadImagePart(0, 0, 2, 2); err != nil {
		t.Fatalf("LoadImagePart after reload should succeed, cache should be idle: %v", err)
	}
}

// TestBoundaryOpensAllSmallerSizes reproduces the tile-boundary rule of
// spec.md §4.5: crossing a larger tile-size boundary must open every smaller size too, not
// just the one whose boundary was hit.
func TestBoundaryOpensAllSmallerSizes(t *testing.T) {
	cases := []struct {
		y    int
		want int
	}{
		{0, 0},
		{4096, 0},
		{2048, 1},
		{1024, 2},
		{512, 3},
		{256, 4},
		{128, 5},
		{384, 5},
	}
	for _, c := range cases {
		if got := boundaryStart(c.y); got != c.want {
			t.Errorf("boundaryStart(%d) = %d, want %d", c.y, got, c.want)
		}
	}
}

func TestComposerOpensSmallerTilesOnBoundary(t *testing.T) {
	dir := t.TempDir()
	comp := NewComposer(dir, 4096, 256)

	row := make(Row, comp.width)
	for x := range row {
		row[x] = color.New(0x11, 0x22, 0x33, 0xff)
	}

	// Row 0 crosses every boundary (y%4096==0), so every tile size must open
	// at least its first column.
	if err := comp.WriteRow(0, row); err != nil {
		t.Fatalf("WriteRow(0): %v", err)
	}
	for ts := 0; ts < 6; ts++ {
		if comp.open[ts][0] == nil {
			t.Errorf("tile size %d should be open after row 0", ts)
		}
	}

	for y := 1; y < 256; y++ {
		if err := comp.WriteRow(y, row); err != nil {
			t.Fatalf("WriteRow(%d): %v", y, err)
		}
	}
	if err := comp.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	for ts := 0; ts < 6; ts++ {
		for idx := 0; idx < comp.tilesPerRow[ts]; idx++ {
			if comp.open[ts][idx] != nil {
				t.Errorf("tile size %d idx %d should be closed after Finish", ts, idx)
			}
		}
	}

	if _, err := os.Stat(comp.tileName(0, 0, 5)); err != nil {
		t.Errorf("expected tile file to exist: %v", err)
	}
}

// TestComposerGatesTileOpeningOnRealWidthNotPadded reproduces spec.md's S5:
// a width that isn't an exact multiple of a tile size (5000, padded to 8192)
// must only open as many tile columns as the real width needs, not as many
// as the padded width would fit.
func TestComposerGatesTileOpeningOnRealWidthNotPadded(t *testing.T) {
	dir := t.TempDir()
	comp := NewComposer(dir, 5000, 256)

	if comp.width != 8192 {
		t.Fatalf("padded width = %d, want 8192", comp.width)
	}

	row := make(Row, comp.width)
	for x := range row {
		row[x] = color.New(0x11, 0x22, 0x33, 0xff)
	}

	if err := comp.WriteRow(0, row); err != nil {
		t.Fatalf("WriteRow(0): %v", err)
	}

	const wantOpen = 40 // ceil(5000/128), not padded/128 == 64
	got := 0
	for idx := 0; idx < comp.tilesPerRow[5]; idx++ {
		if comp.open[5][idx] != nil {
			got++
		}
	}
	if got != wantOpen {
		t.Errorf("tile size 128 opened %d tiles, want %d", got, wantOpen)
	}

	if err := comp.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
}

// TestWriteSingleImageOnEmptyPaddedCanvasDoesNotPanic reproduces a render
// region that contains no drawn blocks: with padding>0, FirstLine/LastLine
// return -padding/+padding, which satisfies first<=last without the canvas
// actually having any content. WriteSingleImage and ComposePyramid must
// still fall back to the full canvas height instead of panicking on a
// negative row.
func TestWriteSingleImageOnEmptyPaddedCanvasDoesNotPanic(t *testing.T) {
	coords := world.Coordinates{MinX: 0, MaxX: 15, MinY: 0, MaxY: 0, MinZ: 0, MaxZ: 15, Orientation: world.NW}
	c := canvas.New(coords, 4, false, color.Palette{})

	var buf bytes.Buffer
	if err := WriteSingleImage(&buf, c); err != nil {
		t.Fatalf("WriteSingleImage on an empty padded canvas: %v", err)
	}
	if buf.Len() == 0 {
		t.Errorf("expected a non-empty PNG")
	}

	dir := t.TempDir()
	if err := ComposePyramid(dir, c); err != nil {
		t.Fatalf("ComposePyramid on an empty padded canvas: %v", err)
	}
}
