// Package section decodes one 16x16x16 chunk section's block-state palette
// and bit-packed index array into a flat index-into-palette array, resolving
// each palette entry's registered block name through go-mc's block registry.
package section

import (
	"fmt"
	"log"

	"github.com/Tnze/go-mc/level"
	"github.com/Tnze/go-mc/level/block"
	"github.com/Tnze/go-mc/save"
)

// Entry is one row of a section's per-section palette: the block's fully
// qualified name, used to look the block up in the active color.Palette.
type Entry struct {
	Name string
}

// Section is a decoded 16x16x16 block grid: a 4096-entry array of small
// palette indices plus the per-section palette itself, and the cached
// palette index of "minecraft:beacon" if the section's palette contains one.
type Section struct {
	Y           int8
	Palette     []Entry
	Indices     [4096]uint16
	BeaconIndex int // -1 if the section's palette has no beacon entry
}

const beaconName = "minecraft:beacon"

// Decode builds a Section from a save.Section, using go-mc's level package
// to perform the DataVersion-appropriate bit-unpacking: level.PaletteContainer
// switches between the pre- and post- ~2556 "new packing" layouts internally
// based on the bits-per-entry it computes from the palette size, the same way
// prepareSectionBlockstates in WebChunk's render/renderers/palette.go and
// cmd/regenHeightmaps/main.go build one.
func Decode(s *save.Section) (*Section, error) {
	if len(s.BlockStates.Palette) == 0 {
		return emptySection(s.Y), nil
	}
	statePalette := s.BlockStates.Palette
	stateRawPalette := make([]block.StateID, len(statePalette))
	entries := make([]Entry, len(statePalette))
	beaconIndex := -1
	for i, v := range statePalette {
		b, ok := block.FromID[v.Name]
		if !ok {
			b, ok = block.FromID["minecraft:"+v.Name]
			if !ok {
				return nil, fmt.Errorf("section y=%d: unknown block id %q", s.Y, v.Name)
			}
		}
		if v.Properties.Data != nil {
			if err := v.Properties.Unmarshal(&b); err != nil {
				return nil, fmt.Errorf("section y=%d: block %q properties: %w", s.Y, v.Name, err)
			}
		}
		st := block.ToStateID[b]
		stateRawPalette[i] = st
		name := block.StateList[st].ID()
		entries[i] = Entry{Name: name}
		if name == beaconName {
			beaconIndex = i
		}
	}
	sec := &Section{Y: s.Y, Palette: entries, BeaconIndex: beaconIndex}
	if len(s.BlockStates.Data) == 0 {
		// A single-entry palette carries no packed data: every block is entry 0.
		return sec, nil
	}
	container := level.NewStatesPaletteContainerWithData(4096, s.BlockStates.Data, stateRawPalette)
	stateToIndex := make(map[block.StateID]uint16, len(stateRawPalette))
	for i, st := range stateRawPalette {
		if _, seen := stateToIndex[st]; !seen {
			stateToIndex[st] = uint16(i)
		}
	}
	for i := 0; i < 4096; i++ {
		st := container.Get(i)
		idx, ok := stateToIndex[st]
		if !ok {
			log.Printf("section y=%d: block index %d resolved to state %v outside declared palette, treating as air", s.Y, i, st)
			idx = 0
		}
		sec.Indices[i] = idx
	}
	return sec, nil
}

func emptySection(y int8) *Section {
	return &Section{Y: y, Palette: nil, BeaconIndex: -1}
}

// Empty reports whether the section has no block-state data at all.
func (s *Section) Empty() bool { return len(s.Palette) == 0 }

// NameAt returns the block name at local index i (0..4095, x + z*16 + y*256).
func (s *Section) NameAt(i int) string {
	if s.Empty() {
		return "minecraft:air"
	}
	return s.Palette[s.Indices[i]].Name
}

// IsBeacon reports whether local index i is the beacon palette entry.
func (s *Section) IsBeacon(i int) bool {
	return s.BeaconIndex >= 0 && int(s.Indices[i]) == s.BeaconIndex
}

// Index converts local (x, y, z) in [0,16) to the flat index into Indices,
// matching go-mc's section indexing convention (y major, then z, then x).
func Index(x, y, z int) int {
	return y*256 + z*16 + x
}
