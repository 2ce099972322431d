package world

import "testing"

func TestOrientSectionRoundTrip(t *testing.T) {
	for _, o := range []Orientation{NW, NE, SW, SE} {
		for x := 0; x < 16; x++ {
			for z := 0; z < 16; z++ {
				ox, oz := OrientSection(x, z, o)
				bx, bz := OrientSection(ox, oz, o.Inverse())
				if bx != x || bz != z {
					t.Fatalf("orientation %v: round trip (%d,%d) -> (%d,%d) -> (%d,%d), want back to (%d,%d)",
						o, x, z, ox, oz, bx, bz, x, z)
				}
			}
		}
	}
}

func TestOrientSectionNWIdentity(t *testing.T) {
	x, z := 7, 3
	ox, oz := OrientSection(x, z, NW)
	if ox != x || oz != z {
		t.Errorf("NW must be identity, got (%d,%d) want (%d,%d)", ox, oz, x, z)
	}
}

func TestParseOrientation(t *testing.T) {
	for _, s := range []string{"NW", "NE", "SW", "SE"} {
		o, ok := ParseOrientation(s)
		if !ok {
			t.Errorf("expected %q to parse", s)
		}
		if o.String() != s {
			t.Errorf("round trip %q -> %v -> %q", s, o, o.String())
		}
	}
	if _, ok := ParseOrientation("bogus"); ok {
		t.Error("expected bogus orientation string to fail")
	}
}
