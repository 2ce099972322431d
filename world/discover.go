package world

import (
	"fmt"
	"os"
	"path"
	"sort"

	"github.com/Tnze/go-mc/save"
)

// SaveInfo is one discovered save folder, mirroring savefile.h's SaveFile:
// a folder plus the dimensions found under it.
type SaveInfo struct {
	Name       string
	Folder     string
	LastPlayed int64
	Dimensions []Dimension
}

// Dimension names a playable dimension within a save, matching savefile.h's
// Dimension (a namespaced id plus the folder holding its region files).
type Dimension struct {
	Namespace string
	ID        string
	Folder    string // path to the dimension's region/ directory
}

func (d Dimension) String() string {
	if d.Namespace == "" {
		return d.ID
	}
	return d.Namespace + ":" + d.ID
}

// knownDimensions is the fixed vanilla dimension-to-folder mapping; custom
// dimensions under "dimensions/<namespace>/<id>" are discovered separately.
var knownDimensions = []Dimension{
	{Namespace: "minecraft", ID: "overworld", Folder: "region"},
	{Namespace: "minecraft", ID: "the_nether", Folder: "DIM-1/region"},
	{Namespace: "minecraft", ID: "the_end", Folder: "DIM1/region"},
}

func readSaveLevel(root string) (save.Level, error) {
	info, err := os.Stat(root)
	if err != nil {
		return save.Level{}, err
	}
	if !info.IsDir() {
		return save.Level{}, fmt.Errorf("%s is not a directory", root)
	}
	f, err := os.Open(path.Join(root, "level.dat"))
	if err != nil {
		return save.Level{}, fmt.Errorf("level.dat not found in %s: %w", root, err)
	}
	defer f.Close()
	return save.ReadLevel(f)
}

// Dimensions lists every dimension with an existing region directory under
// saveRoot, in the fixed vanilla order followed by any custom dimensions.
func Dimensions(saveRoot string) []Dimension {
	var found []Dimension
	for _, d := range knownDimensions {
		p := path.Join(saveRoot, d.Folder)
		if s, err := os.Stat(p); err == nil && s.IsDir() {
			d.Folder = p
			found = append(found, d)
		}
	}
	customRoot := path.Join(saveRoot, "dimensions")
	namespaces, err := os.ReadDir(customRoot)
	if err != nil {
		return found
	}
	for _, ns := range namespaces {
		if !ns.IsDir() {
			continue
		}
		ids, err := os.ReadDir(path.Join(customRoot, ns.Name()))
		if err != nil {
			continue
		}
		for _, id := range ids {
			regionDir := path.Join(customRoot, ns.Name(), id.Name(), "region")
			if s, err := os.Stat(regionDir); err == nil && s.IsDir() {
				found = append(found, Dimension{Namespace: ns.Name(), ID: id.Name(), Folder: regionDir})
			}
		}
	}
	return found
}

// DiscoverSaves probes saveRoot: if it is itself a save (has level.dat), it
// is returned alone; otherwise every immediate subdirectory that is a save
// is returned, sorted by name — the same two-shot probing ListWorlds does in
// filesystemChunkStorage/world.go.
func DiscoverSaves(saveRoot string) ([]SaveInfo, error) {
	if lvl, err := readSaveLevel(saveRoot); err == nil {
		return []SaveInfo{saveInfoFromLevel(saveRoot, lvl)}, nil
	}
	entries, err := os.ReadDir(saveRoot)
	if err != nil {
		return nil, err
	}
	var saves []SaveInfo
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		folder := path.Join(saveRoot, e.Name())
		lvl, err := readSaveLevel(folder)
		if err != nil {
			continue
		}
		saves = append(saves, saveInfoFromLevel(folder, lvl))
	}
	if len(saves) == 0 {
		return nil, fmt.Errorf("no saves found under %s", saveRoot)
	}
	sort.Slice(saves, func(i, j int) bool { return saves[i].Name < saves[j].Name })
	return saves, nil
}

func saveInfoFromLevel(folder string, lvl save.Level) SaveInfo {
	return SaveInfo{
		Name:       lvl.Data.LevelName,
		Folder:     folder,
		LastPlayed: lvl.Data.LastPlayed,
		Dimensions: Dimensions(folder),
	}
}
