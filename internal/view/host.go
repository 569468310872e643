package view

import (
	"io/fs"
	"path"
	"slices"
	"sync"

	"github.com/philipparndt/cylinderworks/pkg/engine"
)

// AssetContext is a Context over a plain file system. Lookup keys are
// asset paths joined onto Prefix.
type AssetContext struct {
	FS     fs.FS
	Prefix string
}

// Assets implements Context.
func (c AssetContext) Assets() fs.FS {
	return c.FS
}

// LookupKeyForAsset implements Context.
func (c AssetContext) LookupKeyForAsset(p string) string {
	if c.Prefix == "" {
		return path.Clean(p)
	}
	return path.Join(c.Prefix, p)
}

// SurfaceHub is a SurfaceHolder driven by the host window. Callbacks are
// invoked outside the hub's lock, so a callback may unsubscribe itself.
type SurfaceHub struct {
	mu        sync.Mutex
	callbacks []SurfaceCallback
	surface   engine.Surface
}

// AddCallback implements SurfaceHolder. A callback added while a surface
// exists is told about it straight away.
func (h *SurfaceHub) AddCallback(cb SurfaceCallback) {
	h.mu.Lock()
	if slices.Contains(h.callbacks, cb) {
		h.mu.Unlock()
		return
	}
	h.callbacks = append(h.callbacks, cb)
	s := h.surface
	h.mu.Unlock()

	if s != nil {
		cb.SurfaceCreated(s)
		w, ht := s.Size()
		cb.SurfaceChanged(s, w, ht)
	}
}

// RemoveCallback implements SurfaceHolder.
func (h *SurfaceHub) RemoveCallback(cb SurfaceCallback) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.callbacks = slices.DeleteFunc(h.callbacks, func(c SurfaceCallback) bool { return c == cb })
}

// Subscribers returns the number of registered callbacks.
func (h *SurfaceHub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.callbacks)
}

func (h *SurfaceHub) snapshot() []SurfaceCallback {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.callbacks)
}

// Create publishes a new surface followed by its initial size.
func (h *SurfaceHub) Create(s engine.Surface) {
	h.mu.Lock()
	h.surface = s
	h.mu.Unlock()

	w, ht := s.Size()
	for _, cb := range h.snapshot() {
		cb.SurfaceCreated(s)
		cb.SurfaceChanged(s, w, ht)
	}
}

// Change reports new dimensions of the current surface.
func (h *SurfaceHub) Change(width, height int) {
	h.mu.Lock()
	s := h.surface
	h.mu.Unlock()
	if s == nil {
		return
	}
	for _, cb := range h.snapshot() {
		cb.SurfaceChanged(s, width, height)
	}
}

// Destroy withdraws the current surface.
func (h *SurfaceHub) Destroy() {
	h.mu.Lock()
	s := h.surface
	h.surface = nil
	h.mu.Unlock()
	if s == nil {
		return
	}
	for _, cb := range h.snapshot() {
		cb.SurfaceDestroyed(s)
	}
}
