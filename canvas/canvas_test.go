package canvas

import (
	"testing"

	"github.com/webchunk-render/isomap/color"
	"github.com/webchunk-render/isomap/world"
)

// TestMergeOrderIndependence reproduces spec.md's S6: two sub-canvases with
// disjoint painted pixels merge into a blank main canvas the same way
// regardless of merge order.
func TestMergeOrderIndependence(t *testing.T) {
	coords := world.Coordinates{MinX: 0, MaxX: 1, MinZ: 0, MaxZ: 1, MinY: 0, MaxY: 0, Orientation: world.NW}
	palette := color.Palette{}

	newBlank := func() *Canvas { return New(coords, 0, false, palette) }

	a := color.New(10, 20, 30, 255)
	b := color.New(200, 100, 50, 255)

	subA := newBlank()
	subA.Set(1, 5, a)

	subB := newBlank()
	subB.Set(3, 9, b)

	mainAB := newBlank()
	if err := mainAB.Merge(subA); err != nil {
		t.Fatal(err)
	}
	if err := mainAB.Merge(subB); err != nil {
		t.Fatal(err)
	}

	mainBA := newBlank()
	if err := mainBA.Merge(subB); err != nil {
		t.Fatal(err)
	}
	if err := mainBA.Merge(subA); err != nil {
		t.Fatal(err)
	}

	if len(mainAB.buf) != len(mainBA.buf) {
		t.Fatalf("buffer length mismatch: %d vs %d", len(mainAB.buf), len(mainBA.buf))
	}
	for i := range mainAB.buf {
		if mainAB.buf[i] != mainBA.buf[i] {
			t.Fatalf("pixel %d differs: merge(A,B)=%+v merge(B,A)=%+v", i, mainAB.buf[i], mainBA.buf[i])
		}
	}
	if mainAB.At(1, 5) != a {
		t.Errorf("subA's pixel missing after merge")
	}
	if mainAB.At(3, 9) != b {
		t.Errorf("subB's pixel missing after merge")
	}
}

// TestCropFindsPaintedBounds checks FirstLine/LastLine/CroppedBounds against
// a canvas with a single painted row away from both edges.
func TestCropFindsPaintedBounds(t *testing.T) {
	coords := world.Coordinates{MinX: 0, MaxX: 0, MinZ: 0, MaxZ: 0, MinY: 0, MaxY: 0, Orientation: world.NW}
	c := New(coords, 2, false, color.Palette{})

	if c.CroppedHeight() != 0 {
		t.Fatalf("blank canvas should report zero cropped height, got %d", c.CroppedHeight())
	}

	paintedRow := c.Height() / 2
	c.Set(0, paintedRow, color.New(1, 1, 1, 255))

	first, last := c.CroppedBounds()
	if first != paintedRow-c.padding {
		t.Errorf("first = %d, want %d", first, paintedRow-c.padding)
	}
	if last != paintedRow+c.padding {
		t.Errorf("last = %d, want %d", last, paintedRow+c.padding)
	}
}
