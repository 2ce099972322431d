package drawers

import (
	"testing"

	"github.com/webchunk-render/isomap/color"
)

type fakeSurface struct {
	writes map[[2]int]color.Color
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{writes: map[[2]int]color.Color{}}
}

func (f *fakeSurface) Blend(px, py int, c color.Color) {
	f.writes[[2]int{px, py}] = c
}

func TestHiddenDrawsNothing(t *testing.T) {
	s := newFakeSurface()
	bc := color.NewBlockColor(color.New(10, 10, 10, 255), color.ShapeHidden)
	Draw(s, Request{PX: 0, PY: 0, Color: bc})
	if len(s.writes) != 0 {
		t.Errorf("drawHidden must not touch the surface, wrote %d pixels", len(s.writes))
	}
}

func TestFullCubeStaysInStamp(t *testing.T) {
	s := newFakeSurface()
	bc := color.NewBlockColor(color.New(100, 120, 140, 255), color.ShapeFull)
	Draw(s, Request{PX: 8, PY: 20, Color: bc})
	for pos := range s.writes {
		px, py := pos[0], pos[1]
		if px < 8 || px > 11 || py < 20 || py > 23 {
			t.Errorf("drawFull wrote outside its 4x4 stamp at (%d,%d)", px, py)
		}
	}
	if len(s.writes) == 0 {
		t.Fatal("drawFull should paint something")
	}
}

// TestSlabBottomShiftsDownOneRow matches drawSlab's SLAB_OFFSET: the
// top variant draws flush against the anchor, while bottom (and double,
// which is not special-cased) shift one row down.
func TestSlabBottomShiftsDownOneRow(t *testing.T) {
	bottom := newFakeSurface()
	top := newFakeSurface()
	double := newFakeSurface()
	bc := color.NewBlockColor(color.New(200, 200, 200, 255), color.ShapeSlab)

	Draw(bottom, Request{PX: 0, PY: 10, Color: bc, Metadata: Metadata{Properties: map[string]string{"type": "bottom"}}})
	Draw(top, Request{PX: 0, PY: 10, Color: bc, Metadata: Metadata{Properties: map[string]string{"type": "top"}}})
	Draw(double, Request{PX: 0, PY: 10, Color: bc, Metadata: Metadata{Properties: map[string]string{"type": "double"}}})

	if top.writes[[2]int{0, 10}] != bc.Primary {
		t.Fatalf("top slab should paint its primary row unshifted at py=10")
	}
	if bottom.writes[[2]int{0, 11}] != bc.Primary {
		t.Fatalf("bottom slab should paint its primary row shifted to py=11")
	}
	for pos, c := range bottom.writes {
		if double.writes[pos] != c {
			t.Fatalf("double slab should render identically to bottom, differs at %v", pos)
		}
	}
}

func TestSlabTopUsesShadedMiddleRow(t *testing.T) {
	s := newFakeSurface()
	bc := color.NewBlockColor(color.New(200, 200, 200, 255), color.ShapeSlab)
	Draw(s, Request{PX: 0, PY: 10, Color: bc, Metadata: Metadata{Properties: map[string]string{"type": "top"}}})
	if s.writes[[2]int{1, 11}] != bc.Dark {
		t.Errorf("top slab's middle row should use dark/light shading, got %+v", s.writes[[2]int{1, 11}])
	}
}

func TestSlabBottomUsesPrimaryMiddleRow(t *testing.T) {
	s := newFakeSurface()
	bc := color.NewBlockColor(color.New(200, 200, 200, 255), color.ShapeSlab)
	Draw(s, Request{PX: 0, PY: 10, Color: bc, Metadata: Metadata{Properties: map[string]string{"type": "bottom"}}})
	if s.writes[[2]int{1, 12}] != bc.Primary {
		t.Errorf("bottom slab's middle row should keep primary, got %+v", s.writes[[2]int{1, 12}])
	}
}

func TestThinPaintsBaseRowAndFoot(t *testing.T) {
	bc := color.NewBlockColor(color.New(50, 90, 40, 255), color.ShapeThin)
	s := newFakeSurface()
	Draw(s, Request{PX: 0, PY: 0, Color: bc})
	for _, px := range []int{0, 1, 2, 3} {
		if s.writes[[2]int{px, 3}] != bc.Primary {
			t.Errorf("drawThin should paint primary across y+3 at x=%d", px)
		}
	}
	for _, px := range []int{1, 2} {
		if s.writes[[2]int{px, 4}] != bc.Primary {
			t.Errorf("drawThin should paint its foot at y+4, x=%d", px)
		}
	}
}

func TestHeadPaintsNoNeighborCheck(t *testing.T) {
	bc := color.NewBlockColor(color.New(10, 20, 30, 255), color.ShapeHead)
	s := newFakeSurface()
	Draw(s, Request{PX: 0, PY: 0, Color: bc})
	if s.writes[[2]int{1, 2}] != bc.Primary || s.writes[[2]int{2, 2}] != bc.Primary {
		t.Errorf("drawHead should always paint its top row, regardless of any neighbor")
	}
	if s.writes[[2]int{1, 3}] != bc.Dark || s.writes[[2]int{2, 3}] != bc.Light {
		t.Errorf("drawHead's base row should be dark/light")
	}
}

func TestTorchFallsBackToPrimaryWithoutSecondary(t *testing.T) {
	bc := color.NewBlockColor(color.New(200, 50, 10, 255), color.ShapeTorch)
	s := newFakeSurface()
	Draw(s, Request{PX: 0, PY: 0, Color: bc})
	if s.writes[[2]int{2, 1}] != bc.Primary {
		t.Errorf("torch without a secondary should fall back to primary, got %+v", s.writes[[2]int{2, 1}])
	}
}

func TestTorchUsesSecondaryWhenPresent(t *testing.T) {
	bc := color.NewBlockColor(color.New(200, 50, 10, 255), color.ShapeTorch).WithSecondary(color.New(10, 200, 50, 255))
	s := newFakeSurface()
	Draw(s, Request{PX: 0, PY: 0, Color: bc})
	if s.writes[[2]int{2, 1}] != bc.Secondary {
		t.Errorf("torch's tip should use secondary when present, got %+v", s.writes[[2]int{2, 1}])
	}
}

func TestOreVeinUsesSecondarySpeckle(t *testing.T) {
	bc := color.NewBlockColor(color.New(100, 100, 100, 255), color.ShapeOre).WithSecondary(color.New(255, 215, 0, 255))
	s := newFakeSurface()
	Draw(s, Request{PX: 0, PY: 0, Color: bc})
	if s.writes[[2]int{3, 0}] != bc.Secondary {
		t.Errorf("ore's top-right pixel should be the secondary speckle, got %+v", s.writes[[2]int{3, 0}])
	}
	if s.writes[[2]int{0, 0}] != bc.Primary {
		t.Errorf("ore's top-left pixel should stay primary, got %+v", s.writes[[2]int{0, 0}])
	}
}

func TestGrownTopRowUsesSecondary(t *testing.T) {
	bc := color.NewBlockColor(color.New(80, 160, 60, 255), color.ShapeGrown).WithSecondary(color.New(40, 200, 40, 255))
	s := newFakeSurface()
	Draw(s, Request{PX: 0, PY: 0, Color: bc})
	if s.writes[[2]int{0, 0}] != bc.Secondary {
		t.Errorf("grown's top row should be unmodulated secondary, got %+v", s.writes[[2]int{0, 0}])
	}
	if s.writes[[2]int{0, 2}] != bc.Dark || s.writes[[2]int{2, 2}] != bc.Light {
		t.Errorf("grown's third row should fall back to plain dark/light")
	}
}

func TestRodPaintsFourRowsWithPrimaryCap(t *testing.T) {
	bc := color.NewBlockColor(color.New(5, 5, 5, 255), color.ShapeRod)
	s := newFakeSurface()
	Draw(s, Request{PX: 0, PY: 0, Color: bc})
	if s.writes[[2]int{1, 0}] != bc.Primary || s.writes[[2]int{2, 0}] != bc.Primary {
		t.Errorf("rod's top row should be primary")
	}
	if _, ok := s.writes[[2]int{1, 4}]; ok {
		t.Errorf("rod should only span 4 rows (y..y+3), found a pixel at y+4")
	}
}

func TestWirePaintsNearBase(t *testing.T) {
	bc := color.NewBlockColor(color.New(200, 10, 10, 255), color.ShapeWire)
	s := newFakeSurface()
	Draw(s, Request{PX: 0, PY: 0, Color: bc})
	if s.writes[[2]int{1, 2}] != bc.Primary || s.writes[[2]int{2, 2}] != bc.Primary {
		t.Errorf("wire should paint its dot at y+2, got %+v", s.writes)
	}
	if len(s.writes) != 2 {
		t.Errorf("wire should only touch two pixels, touched %d", len(s.writes))
	}
}

func TestRegistryCoversEveryShapeType(t *testing.T) {
	for shape := color.ShapeFull; shape <= color.ShapeHead; shape++ {
		if int(shape) >= len(Registry) || Registry[shape] == nil {
			t.Errorf("shape type %d has no registered drawer", shape)
		}
	}
}
