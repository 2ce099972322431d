package render

import (
	"context"
	"fmt"

	"github.com/Tnze/go-mc/save"
	"github.com/webchunk-render/isomap/color"
	"github.com/webchunk-render/isomap/section"
	"github.com/webchunk-render/isomap/world"
)

// ChunkRenderer renders one canvas-space chunk column at a time: resolving
// its NBT, decoding its sections, walking them bottom-to-top, and carrying
// any beacon/marker beams up past the chunk's own decoded height, matching
// canvas.cpp's renderChunk/renderSection/renderBeamSection split.
type ChunkRenderer struct {
	Section *SectionRenderer
	World   world.World
	Palette color.Palette
	Markers []world.Marker
	Misses  *missLogger
}

// RenderChunk resolves and draws the chunk at canvas-space (chunkX, chunkZ).
// It is a no-op if the chunk is absent or the world reports no renderable
// height range for it.
func (cr *ChunkRenderer) RenderChunk(ctx context.Context, chunkX, chunkZ int) error {
	coords := cr.Section.Coords
	worldX, worldZ := world.OrientChunk(chunkX, chunkZ, coords.MinX, coords.MaxX, coords.MinZ, coords.MaxZ, cr.Section.Orientation)

	tag, err := cr.World.ChunkAt(ctx, worldX, worldZ)
	if err != nil {
		return fmt.Errorf("chunk %d:%d: %w", worldX, worldZ, err)
	}
	if tag == nil {
		return nil
	}
	chunk, ok := tag.(*save.Chunk)
	if !ok {
		return fmt.Errorf("chunk %d:%d: unexpected chunk tag type %T", worldX, worldZ, tag)
	}

	minHeight, maxHeight := cr.World.MinHeight(), cr.World.MaxHeight()
	if minHeight >= maxHeight {
		return nil
	}

	var beams []Beam
	for _, m := range cr.Markers {
		if (m.X >> 4) == worldX && (m.Z >> 4) == worldZ {
			bc, ok := cr.Palette.Lookup(string(m.Color))
			if !ok {
				continue
			}
			beams = append(beams, Beam{LocalX: m.X & 0x0f, LocalZ: m.Z & 0x0f, Color: bc})
		}
	}

	minSection := coords.MinY
	if minHeight > minSection {
		minSection = minHeight
	}
	minSection >>= 4
	maxSection := coords.MaxY
	if maxHeight < maxSection {
		maxSection = maxHeight
	}
	maxSection >>= 4

	cs := &chunkState{
		sections:   make(map[int]*section.Section, len(chunk.Sections)),
		maxSection: maxSection,
		palette:    cr.Palette,
		misses:     cr.Misses,
	}
	for i := range chunk.Sections {
		s := &chunk.Sections[i]
		y := int(s.Y)
		if y < minSection || y > maxSection {
			continue
		}
		dec, err := section.Decode(s)
		if err != nil {
			return fmt.Errorf("chunk %d:%d section %d: %w", worldX, worldZ, y, err)
		}
		cs.sections[y] = dec
	}

	for yPos := minSection; yPos <= maxSection; yPos++ {
		sec, ok := cs.sections[yPos]
		if !ok {
			sec = &section.Section{Y: int8(yPos), BeaconIndex: -1}
		}
		beams = cr.Section.RenderSection(cs, sec, chunkX, chunkZ, yPos, beams)
	}

	if len(beams) > 0 {
		for yPos := maxSection + 1; yPos < 16; yPos++ {
			cr.Section.RenderBeamSection(chunkX, chunkZ, yPos, beams)
		}
	}

	return nil
}
