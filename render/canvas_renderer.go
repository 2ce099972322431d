package render

import (
	"context"

	"github.com/webchunk-render/isomap/canvas"
	"github.com/webchunk-render/isomap/color"
	"github.com/webchunk-render/isomap/world"
)

// CanvasRenderer drives a full render into one Canvas: chunkX from 0 to
// nXChunks, then chunkZ from 0 to nZChunks, in that fixed order — merging
// and tile boundaries both depend on chunks arriving in this sequence.
type CanvasRenderer struct {
	Canvas  *canvas.Canvas
	World   world.World
	Palette color.Palette
	Markers []world.Marker
}

// Render walks every chunk the canvas covers, reporting progress through
// progress (called after each chunk; may be nil).
func (cr *CanvasRenderer) Render(ctx context.Context, progress func(done, total int)) error {
	chunkRenderer := &ChunkRenderer{
		Section: &SectionRenderer{
			Canvas:      cr.Canvas,
			Orientation: cr.Canvas.Coords.Orientation,
			Coords:      cr.Canvas.Coords,
		},
		World:   cr.World,
		Palette: cr.Palette,
		Markers: cr.Markers,
		Misses:  newMissLogger(),
	}

	total := cr.Canvas.NXChunks() * cr.Canvas.NZChunks()
	done := 0
	for chunkX := 0; chunkX < cr.Canvas.NXChunks(); chunkX++ {
		for chunkZ := 0; chunkZ < cr.Canvas.NZChunks(); chunkZ++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := chunkRenderer.RenderChunk(ctx, chunkX, chunkZ); err != nil {
				return err
			}
			done++
			if progress != nil {
				progress(done, total)
			}
		}
	}
	return nil
}
