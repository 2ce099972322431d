// Command palettegen builds a color.Palette from a Minecraft resource jar,
// averaging each block's texture(s) into a single swatch and writing the
// result as JSON or gob, ready for cmd/isomap's -palette flag.
package main

import (
	"archive/zip"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/nfnt/resize"

	"github.com/webchunk-render/isomap/color"
)

var (
	jarPath    = flag.String("jar", "", "path to a Minecraft client jar, e.g. ~/.minecraft/versions/1.20.4/1.20.4.jar")
	outPath    = flag.String("out", "palette.json", "output path; .gob extension writes the gob format instead")
	shapesPath = flag.String("shapes", "", "optional JSON file of {\"block:name\": \"slab\"} shape overrides, defaulting everything else to full")
	debug      = flag.Bool("debug", false, "dump unmatched blockstate/model JSON with go-spew")
)

var blockstateRe = regexp.MustCompile(`assets/minecraft/blockstates/([A-Za-z0-9_]+)\.json`)

// skip lists non-block or special-cased state files the way generate_colors.go
// hand-excludes item frames and hanging signs before averaging textures.
var skip = map[string]bool{
	"item_frame": true, "glow_item_frame": true,
	"piglin_wall_head": true, "piglin_head": true,
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lshortfile)
	spew.Config.Indent = "   "
	if *jarPath == "" {
		log.Fatal("palettegen: -jar is required")
	}

	shapes := loadShapeOverrides(*shapesPath)

	r, err := zip.OpenReader(*jarPath)
	if err != nil {
		log.Fatalf("opening jar: %v", err)
	}
	defer r.Close()

	files := map[string]*zip.File{}
	for _, f := range r.File {
		files[f.Name] = f
	}
	log.Printf("mapped %d filenames in jar", len(files))

	names := blockstateNames(files)
	log.Printf("found %d blockstates", len(names))

	palette := color.Palette{}
	cachedTextures := map[string]color.Color{}
	matched, missed := 0, 0

	for _, name := range names {
		if skip[name] || strings.HasSuffix(name, "_hanging_sign") || name == "stripped_bamboo_block" {
			continue
		}
		blockName := "minecraft:" + name
		textures, err := texturesForBlockstate(files, name)
		if err != nil {
			if *debug {
				log.Printf("skipping %s: %v", blockName, err)
			}
			missed++
			continue
		}
		avg, ok := averageTextures(files, textures, cachedTextures)
		if !ok {
			missed++
			continue
		}
		matched++
		shape := shapes[blockName]
		palette[blockName] = color.NewBlockColor(avg, shape)
	}
	log.Printf("matched %d/%d blockstates (%d skipped/missing textures)", matched, matched+missed, missed)

	// mcmap:beacon_beam has no jar texture; seed it with a translucent cyan
	// swatch the way the original tool's res.png always carried a handful of
	// synthetic entries for non-block overlays.
	if _, ok := palette["mcmap:beacon_beam"]; !ok {
		palette["mcmap:beacon_beam"] = color.NewBlockColor(color.New(0x80, 0xf0, 0xf0, 0x60), color.ShapeFull)
	}

	if err := writePalette(palette, *outPath); err != nil {
		log.Fatalf("writing palette: %v", err)
	}
	log.Printf("wrote %d entries to %s", len(palette), *outPath)
}

func loadShapeOverrides(path string) map[string]color.ShapeType {
	m := map[string]color.ShapeType{}
	if path == "" {
		return m
	}
	b, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("reading shape overrides: %v", err)
	}
	var raw map[string]string
	if err := json.Unmarshal(b, &raw); err != nil {
		log.Fatalf("parsing shape overrides: %v", err)
	}
	names := map[string]color.ShapeType{
		"full": color.ShapeFull, "slab": color.ShapeSlab, "stairs": color.ShapeStairs,
		"torch": color.ShapeTorch, "plant": color.ShapePlant, "fire": color.ShapeFire,
		"ore": color.ShapeOre, "grown": color.ShapeGrown, "rod": color.ShapeRod,
		"thin": color.ShapeThin, "wire": color.ShapeWire, "transparent": color.ShapeTransparent,
		"hidden": color.ShapeHidden, "head": color.ShapeHead,
	}
	for block, shapeName := range raw {
		st, ok := names[shapeName]
		if !ok {
			log.Fatalf("shape overrides: unknown shape %q for %q", shapeName, block)
		}
		m[block] = st
	}
	return m
}

func blockstateNames(files map[string]*zip.File) []string {
	seen := map[string]bool{}
	var names []string
	for name := range files {
		m := blockstateRe.FindStringSubmatch(name)
		if m == nil || seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		names = append(names, m[1])
	}
	sort.Strings(names)
	return names
}

// texturesForBlockstate reads one blockstate JSON and returns the texture
// paths of its first variant (or the first unconditional multipart case),
// the simplification this tool makes now that it no longer carries the
// go-vmc block.StateList used to fully resolve variant conditions against a
// concrete block state.
func texturesForBlockstate(files map[string]*zip.File, name string) ([]string, error) {
	fname := "assets/minecraft/blockstates/" + name + ".json"
	f, ok := files[fname]
	if !ok {
		return nil, fmt.Errorf("blockstate file missing")
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	var v map[string]interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}

	var modelName string
	if variants, ok := v["variants"].(map[string]interface{}); ok {
		for _, vv := range variants {
			m, err := firstModel(vv)
			if err == nil {
				modelName = m
				break
			}
		}
	} else if parts, ok := v["multipart"].([]interface{}); ok {
		for _, part := range parts {
			pm, ok := part.(map[string]interface{})
			if !ok {
				continue
			}
			if m, err := firstModel(pm["apply"]); err == nil {
				modelName = m
				break
			}
		}
	}
	if modelName == "" {
		return nil, fmt.Errorf("no model found in blockstate")
	}
	return texturesForModel(files, modelName)
}

func firstModel(vv interface{}) (string, error) {
	switch t := vv.(type) {
	case map[string]interface{}:
		m, ok := t["model"].(string)
		if !ok {
			return "", fmt.Errorf("variant missing model")
		}
		return m, nil
	case []interface{}:
		if len(t) == 0 {
			return "", fmt.Errorf("empty variant list")
		}
		return firstModel(t[0])
	default:
		return "", fmt.Errorf("unexpected variant shape %T", vv)
	}
}

func texturesForModel(files map[string]*zip.File, modelName string) ([]string, error) {
	modelName = strings.TrimPrefix(modelName, "minecraft:")
	fname := "assets/minecraft/models/" + modelName + ".json"
	f, ok := files[fname]
	if !ok {
		return nil, fmt.Errorf("model file %s missing", fname)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	var v map[string]interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	texMap, ok := v["textures"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("model %s has no textures", modelName)
	}
	var textures []string
	for _, t := range texMap {
		if s, ok := t.(string); ok && !strings.HasPrefix(s, "#") {
			textures = append(textures, s)
		}
	}
	if len(textures) == 0 {
		return nil, fmt.Errorf("model %s textures all indirect", modelName)
	}
	return textures, nil
}

// averageTextures loads and averages every texture path, downsampling each
// to a single pixel with resize.Resize the way a thumbnail generator would,
// which is a cheap bilinear-filtered average — a lot faster than the manual
// per-pixel accumulation loop the original tool used.
func averageTextures(files map[string]*zip.File, textures []string, cache map[string]color.Color) (color.Color, bool) {
	var r, g, b, a, n uint32
	for _, tex := range textures {
		tex = strings.TrimPrefix(tex, "minecraft:")
		fname := "assets/minecraft/textures/" + tex + ".png"
		if c, ok := cache[fname]; ok {
			r += uint32(c.R)
			g += uint32(c.G)
			b += uint32(c.B)
			a += uint32(c.A)
			n++
			continue
		}
		f, ok := files[fname]
		if !ok {
			continue
		}
		c, ok := swatchFromTexture(f)
		if !ok {
			continue
		}
		cache[fname] = c
		r += uint32(c.R)
		g += uint32(c.G)
		b += uint32(c.B)
		a += uint32(c.A)
		n++
	}
	if n == 0 {
		return color.Color{}, false
	}
	return color.New(byte(r/n), byte(g/n), byte(b/n), byte(a/n)), true
}

func swatchFromTexture(f *zip.File) (color.Color, bool) {
	rc, err := f.Open()
	if err != nil {
		return color.Color{}, false
	}
	defer rc.Close()
	img, err := png.Decode(rc)
	if err != nil {
		return color.Color{}, false
	}
	// Animated block textures stack frames vertically as square tiles; only
	// the first frame is a representative block face.
	b := img.Bounds()
	if b.Dy() > b.Dx() && b.Dx() > 0 {
		b.Max.Y = b.Min.Y + b.Dx()
		cropped := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dx()))
		for y := 0; y < b.Dx(); y++ {
			for x := 0; x < b.Dx(); x++ {
				cropped.Set(x, y, img.At(b.Min.X+x, b.Min.Y+y))
			}
		}
		img = cropped
	}
	swatch := resize.Resize(1, 1, img, resize.Bilinear)
	r, g, bl, a := swatch.At(0, 0).RGBA()
	return color.New(byte(r>>8), byte(g>>8), byte(bl>>8), byte(a>>8)), true
}

func writePalette(p color.Palette, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if strings.HasSuffix(path, ".gob") {
		return p.DumpGob(f)
	}
	return p.DumpJSON(f)
}
