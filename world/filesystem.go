package world

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strconv"
	"sync"

	"github.com/Tnze/go-mc/save"
	"github.com/Tnze/go-mc/save/region"
)

// regionFilePattern matches Anvil region file names "r.<x>.<z>.mca", the
// same extraction WebChunk's filesystemChunkStorage.ExtractRegionPath does.
var regionFilePattern = regexp.MustCompile(`^r\.(-?\d+)\.(-?\d+)\.mca$`)

// ExtractRegionPath parses "r.<x>.<z>.mca" into region coordinates.
func ExtractRegionPath(name string) (rx, rz int, ok bool) {
	m := regionFilePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, 0, false
	}
	x, err1 := strconv.Atoi(m[1])
	z, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return x, z, true
}

// FilesystemWorld reads chunks directly from a directory of Anvil region
// files, opening one *region.Region per accessed region and keeping it open
// for the lifetime of the World, mirroring the per-region worker split in
// filesystemChunkStorage/region.go but without a router goroutine: render
// workers share one World, so a single mutex guards both the region map and
// every sector read.
type FilesystemWorld struct {
	root      string
	minHeight int
	maxHeight int

	mu      sync.Mutex
	regions map[[2]int]*region.Region
}

// NewFilesystemWorld opens a world rooted at a directory that holds the
// r.<x>.<z>.mca region files directly.
func NewFilesystemWorld(root string, minHeight, maxHeight int) *FilesystemWorld {
	return &FilesystemWorld{
		root:      root,
		minHeight: minHeight,
		maxHeight: maxHeight,
		regions:   map[[2]int]*region.Region{},
	}
}

func (w *FilesystemWorld) MinHeight() int { return w.minHeight }
func (w *FilesystemWorld) MaxHeight() int { return w.maxHeight }

func (w *FilesystemWorld) regionFor(rx, rz int) (*region.Region, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	key := [2]int{rx, rz}
	if r, ok := w.regions[key]; ok {
		return r, nil
	}
	name := fmt.Sprintf("r.%d.%d.mca", rx, rz)
	r, err := region.Open(path.Join(w.root, name))
	if err != nil {
		return nil, err
	}
	w.regions[key] = r
	return r, nil
}

// ChunkAt loads and decodes the chunk at world chunk coordinates (chunkX,
// chunkZ), returning a nil ChunkTag if the region or the sector is absent.
func (w *FilesystemWorld) ChunkAt(ctx context.Context, chunkX, chunkZ int) (ChunkTag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rx, rz := chunkX>>5, chunkZ>>5
	lx, lz := chunkX&31, chunkZ&31
	r, err := w.regionFor(rx, rz)
	if err != nil {
		return nil, nil // region file absent: chunk absent, not an error
	}
	w.mu.Lock()
	exists := r.ExistSector(lx, lz)
	var data []byte
	if exists {
		data, err = r.ReadSector(lx, lz)
	}
	w.mu.Unlock()
	if !exists {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read chunk %d:%d sector %d:%d: %w", chunkX, chunkZ, lx, lz, err)
	}
	var c save.Chunk
	if err := c.Load(data); err != nil {
		return nil, fmt.Errorf("decode chunk %d:%d: %w", chunkX, chunkZ, err)
	}
	return &c, nil
}

// Close closes every region file opened during this World's lifetime.
func (w *FilesystemWorld) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var firstErr error
	for _, r := range w.regions {
		if err := r.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	w.regions = map[[2]int]*region.Region{}
	return firstErr
}
