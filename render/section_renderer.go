// Package render implements the SectionRenderer and ChunkRenderer/
// CanvasRenderer described in spec.md §4.3/§4.4: walking a world's chunks
// and sections in the fixed isometric draw order, invoking the drawer
// registry, and carrying beacon/marker beams up through empty sections.
package render

import (
	"github.com/webchunk-render/isomap/canvas"
	"github.com/webchunk-render/isomap/color"
	"github.com/webchunk-render/isomap/drawers"
	"github.com/webchunk-render/isomap/section"
	"github.com/webchunk-render/isomap/world"
)

// SectionRenderer paints one 16x16x16 section's blocks into a Canvas. It
// borrows the Canvas, the chunk's decoded sections and the active Palette
// for the duration of one call and owns nothing persistent, per DESIGN.md's
// resolution of the Canvas/SectionRenderer ownership question.
type SectionRenderer struct {
	Canvas      *canvas.Canvas
	Orientation world.Orientation
	Coords      world.Coordinates
}

// RenderSection draws the section at real section index yPos belonging to
// the chunk at canvas-space (chunkX, chunkZ), returning the beam set active
// once the section is done (input beams plus any beacon found here).
//
// chunkX/chunkZ and the inner loop's x/z are canvas-space: they drive where
// pixels land. ox/oz — x/z remapped by world.OrientSection — drive which
// block from the section's data actually lives there and are used for
// bounds-checking against the world's real coordinates. This split is what
// lets every orientation draw in the same fixed canvas-space order while
// still sourcing the correct rotated block.
func (r *SectionRenderer) RenderSection(cs *chunkState, sec *section.Section, chunkX, chunkZ, yPos int, beams []Beam) []Beam {
	if sec.Empty() && len(beams) == 0 {
		return beams
	}

	worldX, worldZ := world.OrientChunk(chunkX, chunkZ, r.Coords.MinX, r.Coords.MaxX, r.Coords.MinZ, r.Coords.MaxZ, r.Orientation)

	minY := 0
	if v := r.Coords.MinY - (yPos << 4); v > minY {
		minY = v
	}
	maxY := 16
	if v := r.Coords.MaxY - (yPos << 4) + 1; v < maxY {
		maxY = v
	}

	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			ox, oz := world.OrientSection(x, z, r.Orientation)

			if (worldX<<4)+ox > r.Coords.MaxX || (worldX<<4)+ox < r.Coords.MinX ||
				(worldZ<<4)+oz > r.Coords.MaxZ || (worldZ<<4)+oz < r.Coords.MinZ {
				continue
			}

			beamIdx := -1
			for i := range beams {
				if beams[i].Column(ox, oz) {
					beamIdx = i
					break
				}
			}

			for y := minY; y < maxY; y++ {
				worldY := (yPos << 4) + y

				if beamIdx >= 0 {
					r.paintBlock(beams[beamIdx].Color, chunkX, chunkZ, x, z, worldY, drawers.Metadata{})
				}

				idx := section.Index(ox, y, oz)
				bc := cs.resolve(sec, idx)
				r.paintBlock(bc, chunkX, chunkZ, x, z, worldY, drawers.Metadata{})

				if sec.IsBeacon(idx) {
					beams = append(beams, Beam{LocalX: ox, LocalZ: oz, Color: r.Canvas.BeaconBeam()})
					beamIdx = len(beams) - 1
				}
			}
		}
	}
	return beams
}

// paintBlock applies shading (if enabled) and dispatches to the drawer
// registered for bc.Type, skipping the call entirely for a transparent
// (air-like) color per spec.md §4.3's empty-drawer short-circuit.
func (r *SectionRenderer) paintBlock(bc color.BlockColor, chunkX, chunkZ, x, z, y int, meta drawers.Metadata) {
	if bc.Primary.Transparent() {
		return
	}
	if delta := r.Canvas.ShadingDelta(y, bc.Primary.Brightness); delta != 0 {
		bc = bc.Shaded(delta)
	}
	px, py := r.Canvas.Project((chunkX<<4)+x, y, (chunkZ<<4)+z)
	drawers.Draw(r.Canvas, drawers.Request{
		PX: px, PY: py,
		Metadata: meta,
		Color:    bc,
	})
}

// RenderBeamSection draws only the active beams through an otherwise
// undecoded section above a chunk's data, matching canvas.cpp's
// renderBeamSection: used once a chunk's real sections are exhausted but a
// beacon beam still needs to keep rising to the world's max height.
func (r *SectionRenderer) RenderBeamSection(chunkX, chunkZ, yPos int, beams []Beam) {
	if len(beams) == 0 {
		return
	}
	worldX, worldZ := world.OrientChunk(chunkX, chunkZ, r.Coords.MinX, r.Coords.MaxX, r.Coords.MinZ, r.Coords.MaxZ, r.Orientation)

	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			ox, oz := world.OrientSection(x, z, r.Orientation)
			if (worldX<<4)+ox > r.Coords.MaxX || (worldX<<4)+ox < r.Coords.MinX ||
				(worldZ<<4)+oz > r.Coords.MaxZ || (worldZ<<4)+oz < r.Coords.MinZ {
				continue
			}
			var beamColor color.BlockColor
			active := false
			for i := range beams {
				if beams[i].Column(ox, oz) {
					beamColor = beams[i].Color
					active = true
					break
				}
			}
			if !active {
				continue
			}
			for y := 0; y < 16; y++ {
				r.paintBlock(beamColor, chunkX, chunkZ, x, z, (yPos<<4)+y, drawers.Metadata{})
			}
		}
	}
}
