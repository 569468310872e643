// Package soft is a pure-Go implementation of engine.Bridge. It keeps a
// handle table of renderer instances, each with an orbit camera, a frame
// loop paced to the preferred frame rate, and a software rasterizer that
// presents into the host surface.
package soft

import (
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"github.com/philipparndt/cylinderworks/internal/logging"
	"github.com/philipparndt/cylinderworks/pkg/engine"
)

// Options configure an Engine
type Options struct {
	// MaxInstances caps live renderers; Create returns NullHandle beyond
	// it. Zero means unlimited.
	MaxInstances int
	// HUD draws frame statistics over the scene.
	HUD bool
	// Logger defaults to the shared logger.
	Logger *slog.Logger
}

// Engine implements engine.Bridge.
type Engine struct {
	opts Options
	log  *slog.Logger

	mu        sync.Mutex
	next      engine.Handle
	renderers map[engine.Handle]*renderer
}

var _ engine.Bridge = (*Engine)(nil)

// New creates an engine with no live renderers.
func New(opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = logging.Logger()
	}
	return &Engine{
		opts:      opts,
		log:       log.With("component", "soft-engine"),
		renderers: make(map[engine.Handle]*renderer),
	}
}

func (e *Engine) lookup(h engine.Handle) *renderer {
	if !h.Valid() {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.renderers[h]
}

// Live returns the number of renderers not yet destroyed.
func (e *Engine) Live() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.renderers)
}

// Create allocates a renderer. Handles are never reused.
func (e *Engine) Create() engine.Handle {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.opts.MaxInstances > 0 && len(e.renderers) >= e.opts.MaxInstances {
		e.log.Error("renderer limit reached", "max", e.opts.MaxInstances)
		return engine.NullHandle
	}
	e.next++
	h := e.next
	e.renderers[h] = newRenderer(e.log.With("handle", uint64(h)), e.opts.HUD)
	return h
}

// Destroy stops the renderer, releases its surface and removes it from
// the table.
func (e *Engine) Destroy(h engine.Handle) {
	if !h.Valid() {
		return
	}
	e.mu.Lock()
	r := e.renderers[h]
	delete(e.renderers, h)
	e.mu.Unlock()
	if r == nil {
		return
	}
	r.halt()
	r.clearSurface()
}

func (e *Engine) SetAssetSource(h engine.Handle, assets fs.FS) {
	if r := e.lookup(h); r != nil {
		r.setAssets(assets)
	}
}

func (e *Engine) LoadScene(h engine.Handle, key string) bool {
	if r := e.lookup(h); r != nil {
		return r.loadScene(key)
	}
	return false
}

func (e *Engine) SetSurface(h engine.Handle, s engine.Surface) bool {
	if r := e.lookup(h); r != nil {
		return r.setSurface(s)
	}
	return false
}

func (e *Engine) ClearSurface(h engine.Handle) {
	if r := e.lookup(h); r != nil {
		r.clearSurface()
	}
}

func (e *Engine) Resize(h engine.Handle, width, height int) {
	if r := e.lookup(h); r != nil {
		r.resize(width, height)
	}
}

func (e *Engine) Start(h engine.Handle) {
	if r := e.lookup(h); r != nil {
		r.start()
	}
}

func (e *Engine) Stop(h engine.Handle) {
	if r := e.lookup(h); r != nil {
		r.halt()
	}
}

func (e *Engine) Orbit(h engine.Handle, dx, dy float32) {
	if r := e.lookup(h); r != nil {
		r.mu.Lock()
		r.camera.Orbit(float64(dx), float64(dy))
		r.mu.Unlock()
	}
}

func (e *Engine) Pan(h engine.Handle, dx, dy float32) {
	if r := e.lookup(h); r != nil {
		r.mu.Lock()
		r.camera.Pan(float64(dx), float64(dy))
		r.mu.Unlock()
	}
}

func (e *Engine) Zoom(h engine.Handle, delta float32) {
	if r := e.lookup(h); r != nil {
		r.mu.Lock()
		r.camera.Zoom(float64(delta))
		r.mu.Unlock()
	}
}

func (e *Engine) SetPreferredFrameRate(h engine.Handle, fps int) {
	if r := e.lookup(h); r != nil && fps > 0 {
		r.preferredFPS.Store(int32(fps))
	}
}

func (e *Engine) SetControlInputs(h engine.Handle, in engine.ControlInputs) {
	if r := e.lookup(h); r != nil {
		r.mu.Lock()
		r.motion.inputs = in
		r.mu.Unlock()
	}
}

func (e *Engine) Diagnostics(h engine.Handle) engine.Diagnostics {
	if r := e.lookup(h); r != nil {
		return r.diagnostics()
	}
	return nil
}

// RenderFrame renders one frame synchronously at the given time, outside
// the frame loop. Hosts that drive their own loop and tests use it.
func (e *Engine) RenderFrame(h engine.Handle, now time.Time) {
	if r := e.lookup(h); r != nil {
		r.renderFrame(now)
	}
}
