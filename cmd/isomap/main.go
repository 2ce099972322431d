// Command isomap renders an isometric map of a Minecraft-family save,
// either as a single cropped PNG or as a pyramid of Google-Maps-style tiles.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"

	"github.com/webchunk-render/isomap/canvas"
	"github.com/webchunk-render/isomap/color"
	"github.com/webchunk-render/isomap/render"
	"github.com/webchunk-render/isomap/tile"
	"github.com/webchunk-render/isomap/world"
)

var (
	BuildTime  = "00000000.000000"
	CommitHash = "0000000"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	_ = godotenv.Load()

	savePath := flag.String("world", "", "path to a save folder (or its parent, to use the first save found)")
	dimName := flag.String("dim", "minecraft:overworld", "dimension to render")
	orientFlag := flag.String("orientation", "NW", "camera orientation: NW, NE, SW, SE")
	minX := flag.Int("minx", 0, "")
	maxX := flag.Int("maxx", 0, "")
	minZ := flag.Int("minz", 0, "")
	maxZ := flag.Int("maxz", 0, "")
	minY := flag.Int("miny", -64, "world's configured minimum build height")
	maxY := flag.Int("maxy", 319, "world's configured maximum build height")
	fullMap := flag.Bool("full", false, "render every region file found instead of an explicit box")
	out := flag.String("out", "map.png", "output PNG path (single-image mode)")
	tilesDir := flag.String("tiles", "", "output directory for a tile pyramid; overrides -out")
	palettePath := flag.String("palette", "palette.json", "palette file (.json or .gob)")
	markerFlag := flag.String("marker", "", "optional marker \"x,z,paletteName\", repeatable via semicolon-separated groups")
	watch := flag.Bool("watch", false, "re-render whenever the palette file changes, for palette authors iterating live")
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if sub, err := confSubtree(cfg); err != nil {
		log.Printf("renderer config subtree unavailable, using flat JSON values: %v", err)
	} else {
		cfg.CacheDir = sub.GetDSString(cfg.CacheDir, "cache_dir")
		cfg.Renderer.Shading = sub.GetDSBool(cfg.Renderer.Shading, "shading")
		cfg.Renderer.CacheSlices = sub.GetDSBool(cfg.Renderer.CacheSlices, "cache_slices")
	}
	lj := setupLogging(cfg)
	defer lj.Close()

	log.Println()
	log.Println("isomap is starting up...")
	log.Printf("built %s (%s)", BuildTime, CommitHash)

	orientation, ok := world.ParseOrientation(*orientFlag)
	if !ok {
		log.Fatalf("invalid -orientation %q, want one of NW/NE/SW/SE", *orientFlag)
	}

	if *savePath == "" {
		log.Fatal("-world is required")
	}
	dimFolder, err := resolveDimension(*savePath, *dimName)
	if err != nil {
		log.Fatalf("resolving dimension: %v", err)
	}
	minHeight, maxHeight := *minY, *maxY

	palette, err := loadPalette(*palettePath)
	if err != nil {
		log.Fatalf("loading palette: %v", err)
	}

	markers, err := parseMarkers(*markerFlag)
	if err != nil {
		log.Fatalf("parsing -marker: %v", err)
	}

	coords := world.Coordinates{
		MinX: *minX, MaxX: *maxX,
		MinY: minHeight, MaxY: maxHeight,
		MinZ: *minZ, MaxZ: *maxZ,
		Orientation: orientation,
	}
	if *fullMap {
		coords, err = expandToRegionBounds(dimFolder, coords)
		if err != nil {
			log.Fatalf("scanning region files: %v", err)
		}
	}

	run := func() error {
		return renderOnce(cfg, dimFolder, coords, palette, markers, *tilesDir, *out)
	}

	if err := run(); err != nil {
		log.Fatalf("render failed: %v", err)
	}
	log.Println("render complete")

	if *watch {
		watchAndRerun(*palettePath, func() {
			p, err := loadPalette(*palettePath)
			if err != nil {
				log.Printf("reloading palette: %v", err)
				return
			}
			palette = p
			log.Println("palette changed, re-rendering")
			if err := run(); err != nil {
				log.Printf("re-render failed: %v", err)
			} else {
				log.Println("re-render complete")
			}
		})
	}
}

func renderOnce(cfg Config, dimFolder string, coords world.Coordinates, palette color.Palette, markers []world.Marker, tilesDir, out string) (retErr error) {
	w := world.NewFilesystemWorld(dimFolder, coords.MinY, coords.MaxY)
	defer func() {
		if err := w.Close(); err != nil {
			retErr = multierror.Append(retErr, fmt.Errorf("closing world: %w", err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)
	go func() {
		if _, ok := <-sigCh; ok {
			log.Println("interrupted, cancelling render")
			cancel()
		}
	}()

	stop := make(chan struct{})
	go watchResourceUsage(30*time.Second, stop)
	defer close(stop)

	logResourceUsage("start:")
	start := time.Now()

	slices := render.BuildSlices(coords, cfg.Renderer.ChunksPerSlice, cfg.Renderer.Padding, cfg.Renderer.Shading, palette)
	log.Printf("rendering %d chunk(s) across %d slice(s) with %d worker(s)",
		coords.NChunksX()*coords.NChunksZ(), len(slices), cfg.Renderer.Workers)

	if err := render.RenderSlices(ctx, slices, w, palette, markers, cfg.Renderer.Workers, nil); err != nil {
		return fmt.Errorf("rendering slices: %w", err)
	}

	main := canvas.New(coords, cfg.Renderer.Padding, cfg.Renderer.Shading, palette)
	if cfg.Renderer.CacheSlices {
		log.Printf("cache_slices enabled, merging through disk slice cache at %s", cfg.CacheDir)
		sc := tile.NewSliceCache(cfg.CacheDir)
		if err := render.MergeSlicesCached(main, slices, sc); err != nil {
			return fmt.Errorf("merging slices through cache: %w", err)
		}
	} else {
		if err := render.MergeSlices(main, slices); err != nil {
			return fmt.Errorf("merging slices: %w", err)
		}
	}

	logResourceUsage("rendered:")
	log.Printf("render took %s", time.Since(start).Round(time.Second))

	if tilesDir != "" {
		if err := os.MkdirAll(tilesDir, 0755); err != nil {
			return fmt.Errorf("creating tile dir: %w", err)
		}
		if err := tile.ComposePyramid(tilesDir, main); err != nil {
			return fmt.Errorf("composing tile pyramid: %w", err)
		}
		log.Printf("wrote tile pyramid to %s", tilesDir)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(absOrDot(out)), 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			retErr = multierror.Append(retErr, fmt.Errorf("closing output file: %w", err))
		}
	}()
	if err := tile.WriteSingleImage(f, main); err != nil {
		return fmt.Errorf("encoding image: %w", err)
	}
	log.Printf("wrote %s", out)
	return nil
}

func absOrDot(p string) string {
	if filepath.Dir(p) == "" {
		return "."
	}
	return filepath.Dir(p)
}

func loadPalette(path string) (color.Palette, error) {
	if filepath.Ext(path) == ".gob" {
		return color.LoadPaletteGob(path)
	}
	return color.LoadPaletteJSON(path)
}

func watchAndRerun(path string, onChange func()) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("watch disabled: %v", err)
		return
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		log.Printf("watch disabled: %v", err)
		return
	}
	log.Printf("watching %s for changes (ctrl-C to stop)", path)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write == fsnotify.Write {
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Println("watch error:", err)
		}
	}
}
