package section

import "testing"

func TestIndexOrdering(t *testing.T) {
	// go-mc sections are y-major: index must increase by 1 as x increases,
	// by 16 as z increases, by 256 as y increases.
	if got := Index(1, 0, 0) - Index(0, 0, 0); got != 1 {
		t.Errorf("x step = %d, want 1", got)
	}
	if got := Index(0, 0, 1) - Index(0, 0, 0); got != 16 {
		t.Errorf("z step = %d, want 16", got)
	}
	if got := Index(0, 1, 0) - Index(0, 0, 0); got != 256 {
		t.Errorf("y step = %d, want 256", got)
	}
	if got := Index(15, 15, 15); got != 4095 {
		t.Errorf("max index = %d, want 4095", got)
	}
}

func TestEmptySection(t *testing.T) {
	s := emptySection(3)
	if !s.Empty() {
		t.Error("section with no palette must be Empty")
	}
	if s.NameAt(0) != "minecraft:air" {
		t.Errorf("empty section must report air everywhere, got %q", s.NameAt(0))
	}
	if s.IsBeacon(0) {
		t.Error("empty section must never report a beacon")
	}
	if s.BeaconIndex != -1 {
		t.Errorf("empty section beacon index = %d, want -1", s.BeaconIndex)
	}
}
