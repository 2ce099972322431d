package render

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/webchunk-render/isomap/canvas"
	"github.com/webchunk-render/isomap/color"
	"github.com/webchunk-render/isomap/tile"
	"github.com/webchunk-render/isomap/world"
)

// Slice is one independent rectangular subset of chunk space rendered into
// its own Canvas, letting a render stay within a bounded pixel buffer.
// Slices must be composed into the main canvas or tile stream in the order
// they appear in a slice list — spec.md §5's "sliced in one direction only"
// requirement.
type Slice struct {
	Coords world.Coordinates
	Canvas *canvas.Canvas
}

// BuildSlices splits coords into contiguous, chunk-aligned X ranges of at
// most chunksPerSlice chunks each, in ascending X order.
func BuildSlices(coords world.Coordinates, chunksPerSlice, padding int, shading bool, palette color.Palette) []*Slice {
	if chunksPerSlice <= 0 {
		chunksPerSlice = coords.NChunksX()
	}
	startChunk := coords.MinX >> 4
	endChunk := coords.MaxX >> 4

	var slices []*Slice
	for c := startChunk; c <= endChunk; c += chunksPerSlice {
		sliceMinX := c << 4
		if sliceMinX < coords.MinX {
			sliceMinX = coords.MinX
		}
		lastChunk := c + chunksPerSlice - 1
		if lastChunk > endChunk {
			lastChunk = endChunk
		}
		sliceMaxX := (lastChunk << 4) + 15
		if sliceMaxX > coords.MaxX {
			sliceMaxX = coords.MaxX
		}
		sub := coords
		sub.MinX, sub.MaxX = sliceMinX, sliceMaxX
		slices = append(slices, &Slice{Coords: sub, Canvas: canvas.New(sub, padding, shading, palette)})
	}
	return slices
}

// RenderSlices renders every slice concurrently with a small fixed worker
// pool, modeled on WebChunk's priorityPipelineRender buffered-queue/
// waitgroup shape. Each slice owns its Canvas exclusively — no two workers
// ever touch the same pixel buffer — satisfying spec.md §5's isolation
// requirement for parallelizing across sub-canvas slices.
func RenderSlices(ctx context.Context, slices []*Slice, w world.World, palette color.Palette, markers []world.Marker, workers int, log *slog.Logger) error {
	if workers <= 0 {
		workers = 1
	}
	if log == nil {
		log = slog.Default()
	}

	jobs := make(chan int, len(slices))
	for i := range slices {
		jobs <- i
	}
	close(jobs)

	errs := make([]error, len(slices))
	var wg sync.WaitGroup
	wg.Add(workers)
	for worker := 0; worker < workers; worker++ {
		go func(id int) {
			defer wg.Done()
			for i := range jobs {
				cr := &CanvasRenderer{Canvas: slices[i].Canvas, World: w, Palette: palette, Markers: markers}
				log.Debug("rendering slice", "worker", id, "slice", i,
					"minX", slices[i].Coords.MinX, "maxX", slices[i].Coords.MaxX)
				if err := cr.Render(ctx, nil); err != nil {
					errs[i] = fmt.Errorf("slice %d: %w", i, err)
				}
			}
		}(worker)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// MergeSlices composes rendered slices into dest in order — the single-
// threaded final-composition step spec.md §5 requires regardless of how
// many workers rendered the slices themselves.
func MergeSlices(dest *canvas.Canvas, slices []*Slice) error {
	for _, s := range slices {
		if err := dest.Merge(s.Canvas); err != nil {
			return err
		}
	}
	return nil
}

// MergeSlicesCached composes rendered slices into dest the same way
// MergeSlices does, but round-trips each slice through sc's disk cache
// first: load, copy the slice's pixels in, save, drop the slice's own
// in-memory Canvas, then reload and merge. Only one extra slice-sized
// buffer is ever alive at a time, instead of every slice's Canvas
// surviving in memory until the whole merge finishes, matching spec.md
// §4.5/§6's cache_slices mode for bounding memory on large renders.
func MergeSlicesCached(dest *canvas.Canvas, slices []*Slice, sc *tile.SliceCache) error {
	for i, s := range slices {
		part, err := sc.LoadImagePart(0, 0, s.Canvas.Width(), s.Canvas.Height())
		if err != nil {
			return fmt.Errorf("slice %d: caching to disk: %w", i, err)
		}
		if err := part.FillFromCanvas(s.Canvas); err != nil {
			return fmt.Errorf("slice %d: %w", i, err)
		}
		if err := sc.SaveImagePart(part); err != nil {
			return fmt.Errorf("slice %d: %w", i, err)
		}

		coords, padding := s.Coords, s.Canvas.Padding()
		s.Canvas = nil

		img, err := sc.ReloadImagePart(part)
		if err != nil {
			return fmt.Errorf("slice %d: reloading from disk: %w", i, err)
		}
		reloaded, err := canvas.NewFromRGBA(coords, padding, img)
		if err != nil {
			return fmt.Errorf("slice %d: %w", i, err)
		}
		if err := dest.Merge(reloaded); err != nil {
			return fmt.Errorf("slice %d: %w", i, err)
		}
	}
	return nil
}
