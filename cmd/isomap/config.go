package main

import (
	"encoding/json"
	"os"

	"github.com/maxsupermanhd/lac"
)

// Config is the on-disk JSON shape for isomap, read the way WebChunk's
// config.go reads WebChunkConfig: a fixed struct plus an env-var override
// for the file path, no config-reload watcher (a render is a one-shot batch
// job, not a long-lived server that needs to pick up edits).
type Config struct {
	LogsLocation string `json:"logs_location"`
	CacheDir     string `json:"cache_dir"`
	Renderer     struct {
		Workers        int  `json:"workers"`
		ChunksPerSlice int  `json:"chunks_per_slice"`
		Padding        int  `json:"padding"`
		Shading        bool `json:"shading"`
		CacheSlices    bool `json:"cache_slices"`
	} `json:"renderer"`
}

func defaultConfig() Config {
	var c Config
	c.LogsLocation = "./logs/isomap.log"
	c.CacheDir = "./cache"
	c.Renderer.Workers = 4
	c.Renderer.ChunksPerSlice = 32
	c.Renderer.Shading = false
	c.Renderer.CacheSlices = false
	return c
}

// loadConfig reads the config file named by ISOMAP_CONFIG (default
// "isomap.json"), falling back to defaultConfig() if the file doesn't
// exist — a render should work with zero setup on a first run.
func loadConfig() (Config, error) {
	path := os.Getenv("ISOMAP_CONFIG")
	if path == "" {
		path = "isomap.json"
	}
	c := defaultConfig()
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return c, err
	}
	if err := json.Unmarshal(b, &c); err != nil {
		return c, err
	}
	return c, nil
}

// confSubtree wraps the renderer sub-config in a lac.ConfSubtree so runtime
// tunables (cache folder, shading, slice caching) can be read with the same
// GetDSString/GetDSBool accessor style storages.go and templates.go use,
// without every caller needing to know the flat JSON shape above.
func confSubtree(c Config) (*lac.ConfSubtree, error) {
	raw := map[string]any{
		"workers":          c.Renderer.Workers,
		"chunks_per_slice": c.Renderer.ChunksPerSlice,
		"padding":          c.Renderer.Padding,
		"shading":          c.Renderer.Shading,
		"cache_slices":     c.Renderer.CacheSlices,
		"cache_dir":        c.CacheDir,
	}
	conf := lac.NewConf()
	conf.SetTree(raw)
	return conf.SubTree(), nil
}
