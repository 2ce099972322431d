package color

import "testing"

func TestBlendIdentity(t *testing.T) {
	d := New(10, 20, 30, 128)
	s := New(200, 201, 202, 255)
	got := Blend(d, s)
	if got != s {
		t.Errorf("blending opaque source onto any dest must yield source; got %+v want %+v", got, s)
	}

	s2 := New(1, 2, 3, 0)
	got2 := Blend(d, s2)
	if got2 != d {
		t.Errorf("blending A=0 source must leave dest untouched; got %+v want %+v", got2, d)
	}
}

func TestBlendPartial(t *testing.T) {
	d := New(0, 0, 0, 255)
	s := New(255, 255, 255, 128)
	got := Blend(d, s)
	if got.R != 128 || got.G != 128 || got.B != 128 {
		t.Errorf("half-alpha white over black should land near mid-gray, got %+v", got)
	}
	if got.A != 255 {
		t.Errorf("blending onto a fully opaque dest must keep A=255, got %d", got.A)
	}
}

func TestBrightnessMonotonic(t *testing.T) {
	lut := NewBrightnessLookup()
	for y := 1; y < 256; y++ {
		if lut[y] <= lut[y-1] {
			t.Fatalf("brightnessLookup must be strictly increasing, broke at y=%d: %v <= %v", y, lut[y], lut[y-1])
		}
	}
	if lut[0] != -100 {
		t.Errorf("lut[0] = %v, want -100", lut[0])
	}
	if lut[255] != 100 {
		t.Errorf("lut[255] = %v, want 100", lut[255])
	}
}

func TestDarkLightDeterministic(t *testing.T) {
	p := New(100, 150, 200, 255)
	d1, l1 := Dark(p), Light(p)
	d2, l2 := Dark(p), Light(p)
	if d1 != d2 || l1 != l2 {
		t.Errorf("Dark/Light must be pure functions of primary")
	}
	if d1.R >= p.R || l1.R <= p.R {
		t.Errorf("dark should be darker and light should be lighter than primary")
	}
}

func TestHexColorRoundTrip(t *testing.T) {
	c := New(0x12, 0x34, 0x56, 0x78)
	s := HexColor(c)
	got, err := ParseHexColor(s)
	if err != nil {
		t.Fatalf("ParseHexColor(%q) error: %v", s, err)
	}
	if got.R != c.R || got.G != c.G || got.B != c.B || got.A != c.A {
		t.Errorf("round trip mismatch: %+v != %+v", got, c)
	}
}

func TestParseHexColorDefaultAlpha(t *testing.T) {
	c, err := ParseHexColor("#ff0000")
	if err != nil {
		t.Fatal(err)
	}
	if c.A != 255 {
		t.Errorf("omitted alpha should default to 255, got %d", c.A)
	}
}
