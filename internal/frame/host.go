package frame

import (
	"sync"

	"github.com/san-kum/neuralbg/internal/render"
)

// Host bundles a frame queue, a viewport and an attachable surface into a
// render.Host.
type Host struct {
	*Queue
	*Viewport

	mu      sync.RWMutex
	surface render.Surface
}

func NewHost(w, h int) *Host {
	return &Host{Queue: NewQueue(), Viewport: NewViewport(w, h)}
}

func (h *Host) Attach(s render.Surface) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.surface = s
}

// Detach removes the surface; a running renderer stops on its next tick.
func (h *Host) Detach() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.surface = nil
}

func (h *Host) Surface() (render.Surface, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.surface, h.surface != nil
}

var _ render.Host = (*Host)(nil)
