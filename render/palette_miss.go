package render

import (
	"log"
	"sync"
)

// missLogger reports each distinct missing palette name exactly once, per
// spec.md §7's PaletteMiss policy: logged once per distinct name, the block
// is otherwise rendered as if air. Safe for concurrent use by parallel slice
// renderers sharing one logger.
type missLogger struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func newMissLogger() *missLogger {
	return &missLogger{seen: map[string]struct{}{}}
}

func (m *missLogger) report(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.seen[name]; ok {
		return
	}
	m.seen[name] = struct{}{}
	log.Printf("render: no palette entry for %q, rendering as air", name)
}
