// Package world defines the coordinate and world-access types the renderer
// consumes, and a filesystem-backed World implementation over Minecraft-family
// region files.
package world

import "context"

// Coordinates is the inclusive world bounding box plus the chosen rotation.
type Coordinates struct {
	MinX, MaxX int
	MinY, MaxY int
	MinZ, MaxZ int
	Orientation Orientation
}

// SizeX, SizeZ are the bounding box extents along X and Z.
func (c Coordinates) SizeX() int { return c.MaxX - c.MinX + 1 }
func (c Coordinates) SizeZ() int { return c.MaxZ - c.MinZ + 1 }

// NChunksX, NChunksZ are the number of 16-block chunk columns the box spans.
func (c Coordinates) NChunksX() int { return (c.MaxX >> 4) - (c.MinX >> 4) + 1 }
func (c Coordinates) NChunksZ() int { return (c.MaxZ >> 4) - (c.MinZ >> 4) + 1 }

// Marker is a caller-supplied world position and color used to seed a beam,
// the same way canvas.cpp seeds a beam from a user-supplied marker in
// addition to beacons found while walking sections.
type Marker struct {
	X, Z  int
	Color ColorRef
}

// ColorRef is a name into the active color.Palette; kept decoupled from the
// color package here to avoid a dependency cycle, resolved by the caller at
// render setup time.
type ColorRef string

// ChunkTag is an opaque decoded chunk; nil means "chunk absent". Concretely
// this is expected to be a *save.Chunk from github.com/Tnze/go-mc/save, kept
// as an empty interface at this boundary so the render package never has a
// hard dependency on the NBT decoder.
type ChunkTag interface{}

// World is the external collaborator the render pipeline pulls chunk data
// from; spec.md §6 treats its implementation as out of scope for the core,
// consistent with WebChunk's own chunkStorage.ChunkStorage interface split.
type World interface {
	// ChunkAt returns the decoded chunk at the given world chunk coordinates,
	// or nil if absent.
	ChunkAt(ctx context.Context, chunkX, chunkZ int) (ChunkTag, error)
	// MinHeight, MaxHeight report the world's configured vertical bounds.
	MinHeight() int
	MaxHeight() int
	// Close releases any open region file handles.
	Close() error
}
