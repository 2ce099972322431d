package color

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Palette maps a fully-qualified block name (e.g. "minecraft:water") to its
// BlockColor. Keys are unique; order is irrelevant.
type Palette map[string]BlockColor

// Lookup returns the BlockColor for name, reporting whether it was found.
func (p Palette) Lookup(name string) (BlockColor, bool) {
	b, ok := p[name]
	return b, ok
}

// paletteEntry is the on-disk JSON shape for one palette row, mirroring the
// hex-string round trip WebChunk's colors.go uses for its own color API.
type paletteEntry struct {
	Name      string `json:"name"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary,omitempty"`
	Type      int    `json:"type"`
}

// LoadPaletteJSON reads a palette from a JSON file of paletteEntry rows.
func LoadPaletteJSON(path string) (Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var entries []paletteEntry
	if err := json.NewDecoder(f).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode palette %s: %w", path, err)
	}
	p := make(Palette, len(entries))
	for _, e := range entries {
		primary, err := ParseHexColor(e.Primary)
		if err != nil {
			return nil, fmt.Errorf("palette entry %q: %w", e.Name, err)
		}
		bc := NewBlockColor(primary, ShapeType(e.Type))
		if e.Secondary != "" {
			secondary, err := ParseHexColor(e.Secondary)
			if err != nil {
				return nil, fmt.Errorf("palette entry %q secondary: %w", e.Name, err)
			}
			bc = bc.WithSecondary(secondary)
		}
		p[e.Name] = bc
	}
	return p, nil
}

// DumpJSON writes the palette as a JSON array of paletteEntry rows.
func (p Palette) DumpJSON(w io.Writer) error {
	entries := make([]paletteEntry, 0, len(p))
	for name, bc := range p {
		e := paletteEntry{
			Name:    name,
			Primary: HexColor(bc.Primary),
			Type:    int(bc.Type),
		}
		if bc.HasSecondary {
			e.Secondary = HexColor(bc.Secondary)
		}
		entries = append(entries, e)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// gobEntry is the flat shape colorgen's generate_colors.go writes/reads via
// encoding/gob ([]color.RGBA64 indexed by a model id); this module keeps the
// same gob-encoded-slice convention but indexes it by name instead, since the
// renderer looks blocks up by name rather than by numeric model id.
type gobEntry struct {
	Name    string
	Primary [4]byte
	Type    int
}

// LoadPaletteGob reads a palette from the gob-encoded format produced by
// cmd/palettegen, mirroring colorgen/generate_colors.go's own gob dump.
func LoadPaletteGob(path string) (Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var entries []gobEntry
	if err := gob.NewDecoder(f).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode gob palette %s: %w", path, err)
	}
	p := make(Palette, len(entries))
	for _, e := range entries {
		primary := New(e.Primary[0], e.Primary[1], e.Primary[2], e.Primary[3])
		p[e.Name] = NewBlockColor(primary, ShapeType(e.Type))
	}
	return p, nil
}

// DumpGob writes the palette using the gob encoding cmd/palettegen produces.
func (p Palette) DumpGob(w io.Writer) error {
	entries := make([]gobEntry, 0, len(p))
	for name, bc := range p {
		entries = append(entries, gobEntry{
			Name:    name,
			Primary: [4]byte{bc.Primary.R, bc.Primary.G, bc.Primary.B, bc.Primary.A},
			Type:    int(bc.Type),
		})
	}
	return gob.NewEncoder(w).Encode(entries)
}

// HexColor renders a Color as "#RRGGBBAA", the format WebChunk's colors.go
// hexColor helper produces for its palette editor API.
func HexColor(c Color) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA", matching WebChunk's
// colors.go ParseHexColor (alpha defaults to 255 when omitted).
func ParseHexColor(s string) (Color, error) {
	if len(s) == 0 || s[0] != '#' {
		return Color{}, fmt.Errorf("invalid color %q: missing '#'", s)
	}
	s = s[1:]
	var r, g, b, a uint64
	var err error
	switch len(s) {
	case 6:
		a = 255
		r, g, b, err = parseHexTriplet(s)
	case 8:
		r, g, b, err = parseHexTriplet(s[:6])
		if err == nil {
			a, err = parseHexByte(s[6:8])
		}
	default:
		return Color{}, fmt.Errorf("invalid color %q: wrong length", s)
	}
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return New(byte(r), byte(g), byte(b), byte(a)), nil
}

func parseHexTriplet(s string) (r, g, b uint64, err error) {
	r, err = parseHexByte(s[0:2])
	if err != nil {
		return
	}
	g, err = parseHexByte(s[2:4])
	if err != nil {
		return
	}
	b, err = parseHexByte(s[4:6])
	return
}

func parseHexByte(s string) (uint64, error) {
	var v uint64
	for _, c := range []byte(s) {
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v |= uint64(c - '0')
		case c >= 'a' && c <= 'f':
			v |= uint64(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v |= uint64(c-'A') + 10
		default:
			return 0, fmt.Errorf("invalid hex digit %q", c)
		}
	}
	return v, nil
}
