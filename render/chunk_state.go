package render

import (
	"github.com/webchunk-render/isomap/color"
	"github.com/webchunk-render/isomap/section"
)

// chunkState bundles everything section rendering within one chunk needs
// beyond a single Section: the shared palette and the miss logger. It owns
// nothing persistent past one chunk's render.
type chunkState struct {
	sections   map[int]*section.Section
	maxSection int
	palette    color.Palette
	misses     *missLogger
	air        color.BlockColor
}

// resolve looks up the block name at flat section index idx within sec,
// returning its BlockColor (air if the palette has no entry for it).
func (cs *chunkState) resolve(sec *section.Section, idx int) color.BlockColor {
	name := sec.NameAt(idx)
	bc, ok := cs.palette.Lookup(name)
	if !ok {
		cs.misses.report(name)
		return cs.air
	}
	return bc
}
