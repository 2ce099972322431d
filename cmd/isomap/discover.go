package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/webchunk-render/isomap/world"
)

// resolveDimension finds the region-file folder for dimName inside the save
// at savePath, discovering the save itself first if savePath's parent holds
// several saves — the same two-step probe world.DiscoverSaves does for a
// picker UI, just resolved non-interactively here to the first match.
func resolveDimension(savePath, dimName string) (string, error) {
	saves, err := world.DiscoverSaves(savePath)
	if err != nil {
		return "", err
	}
	save := saves[0]
	for _, d := range save.Dimensions {
		if d.String() == dimName || d.ID == dimName {
			return d.Folder, nil
		}
	}
	return "", fmt.Errorf("dimension %q not found in save %q (have: %s)", dimName, save.Name, dimensionList(save.Dimensions))
}

func dimensionList(dims []world.Dimension) string {
	names := make([]string, len(dims))
	for i, d := range dims {
		names[i] = d.String()
	}
	return strings.Join(names, ", ")
}

// expandToRegionBounds widens coords to cover every region file present in
// dimFolder, for -full renders where the caller doesn't know the save's
// extent up front.
func expandToRegionBounds(dimFolder string, coords world.Coordinates) (world.Coordinates, error) {
	entries, err := os.ReadDir(dimFolder)
	if err != nil {
		return coords, err
	}
	first := true
	for _, e := range entries {
		rx, rz, ok := world.ExtractRegionPath(e.Name())
		if !ok {
			continue
		}
		minChunkX, maxChunkX := rx*32, rx*32+31
		minChunkZ, maxChunkZ := rz*32, rz*32+31
		minBlockX, maxBlockX := minChunkX*16, maxChunkX*16+15
		minBlockZ, maxBlockZ := minChunkZ*16, maxChunkZ*16+15
		if first {
			coords.MinX, coords.MaxX = minBlockX, maxBlockX
			coords.MinZ, coords.MaxZ = minBlockZ, maxBlockZ
			first = false
			continue
		}
		if minBlockX < coords.MinX {
			coords.MinX = minBlockX
		}
		if maxBlockX > coords.MaxX {
			coords.MaxX = maxBlockX
		}
		if minBlockZ < coords.MinZ {
			coords.MinZ = minBlockZ
		}
		if maxBlockZ > coords.MaxZ {
			coords.MaxZ = maxBlockZ
		}
	}
	if first {
		return coords, fmt.Errorf("no region files found in %s", filepath.Clean(dimFolder))
	}
	return coords, nil
}

// parseMarkers parses "-marker" groups of "x,z,paletteName" separated by
// semicolons.
func parseMarkers(s string) ([]world.Marker, error) {
	if s == "" {
		return nil, nil
	}
	var markers []world.Marker
	for _, group := range strings.Split(s, ";") {
		parts := strings.Split(group, ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("marker %q: want \"x,z,paletteName\"", group)
		}
		x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("marker %q: bad x: %w", group, err)
		}
		z, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("marker %q: bad z: %w", group, err)
		}
		markers = append(markers, world.Marker{X: x, Z: z, Color: world.ColorRef(strings.TrimSpace(parts[2]))})
	}
	return markers, nil
}
