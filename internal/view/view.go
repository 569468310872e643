// Package view binds one engine renderer to a host drawing surface and
// turns touch input into camera commands.
package view

import (
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/philipparndt/cylinderworks/internal/gesture"
	"github.com/philipparndt/cylinderworks/internal/registry"
	"github.com/philipparndt/cylinderworks/pkg/engine"
)

// State is the lifecycle state of a View.
type State int

const (
	Uninitialized State = iota
	HandleCreated
	SurfaceAttached
	Rendering
	SurfaceDetached
	Disposed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case HandleCreated:
		return "handle_created"
	case SurfaceAttached:
		return "surface_attached"
	case Rendering:
		return "rendering"
	case SurfaceDetached:
		return "surface_detached"
	case Disposed:
		return "disposed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Context is what the host embedding supplies to a view.
type Context interface {
	// Assets is the packaged asset tree.
	Assets() fs.FS
	// LookupKeyForAsset maps a logical asset path to its key in Assets.
	LookupKeyForAsset(path string) string
}

// SurfaceCallback receives drawing surface lifecycle events.
type SurfaceCallback interface {
	SurfaceCreated(s engine.Surface)
	SurfaceChanged(s engine.Surface, width, height int)
	SurfaceDestroyed(s engine.Surface)
}

// SurfaceHolder owns a drawing surface and notifies subscribers about it.
type SurfaceHolder interface {
	AddCallback(cb SurfaceCallback)
	RemoveCallback(cb SurfaceCallback)
}

// View owns a single engine handle for its whole life. All methods are
// safe for concurrent use; calls that reach the engine are serialized.
type View struct {
	ctx     Context
	holder  SurfaceHolder
	bridge  engine.Bridge
	control *registry.ControlRegistry
	diag    *registry.DiagnosticsRegistry
	log     *slog.Logger
	fps     int
	scene   string

	mu      sync.Mutex
	handle  engine.Handle
	state   State
	tracker *gesture.Tracker
}

var (
	_ SurfaceCallback     = (*View)(nil)
	_ registry.Provider   = (*View)(nil)
	_ registry.Controller = (*View)(nil)
)

// New creates a view, acquires its engine handle and subscribes to
// holder. When no handle can be acquired the view is inert: it still
// accepts every call but never reaches the engine.
func New(ctx Context, holder SurfaceHolder, opts ...Option) *View {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	v := &View{
		ctx:     ctx,
		holder:  holder,
		bridge:  o.bridge,
		control: o.control,
		diag:    o.diagnostics,
		log:     o.logger,
		fps:     o.frameRate,
		scene:   o.scenePath,
		tracker: gesture.NewTracker(),
	}
	v.acquire()

	if holder != nil {
		holder.AddCallback(v)
	}
	return v
}

func (v *View) acquire() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.bridge == nil {
		v.log.Warn("no engine bridge configured, view is inert")
		return
	}
	h := v.bridge.Create()
	if !h.Valid() {
		v.log.Warn("engine handle creation failed, view is inert")
		return
	}
	v.handle = h
	v.state = HandleCreated
	v.log = v.log.With("handle", uint64(h))

	v.diag.Register(v)
	v.control.Register(v)

	if v.ctx != nil {
		v.bridge.SetAssetSource(h, v.ctx.Assets())
	}
	v.loadSceneLocked()
}

func (v *View) loadSceneLocked() {
	key := v.scene
	if v.ctx != nil {
		key = v.ctx.LookupKeyForAsset(v.scene)
	}
	if !v.bridge.LoadScene(v.handle, key) {
		v.log.Warn("failed to schedule scene load", "key", key)
		return
	}
	v.log.Debug("scene load scheduled", "key", key)
}

// State returns the lifecycle state.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Handle returns the engine handle, NullHandle when inert or disposed.
func (v *View) Handle() engine.Handle {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.handle
}

// SurfaceCreated attaches the surface and starts rendering. A failed
// attach leaves the view waiting for the next created callback.
func (v *View) SurfaceCreated(s engine.Surface) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.handle.Valid() || v.state == Rendering {
		return
	}
	if !v.bridge.SetSurface(v.handle, s) {
		v.log.Error("failed to attach renderer surface")
		return
	}
	v.state = SurfaceAttached
	v.bridge.SetPreferredFrameRate(v.handle, v.fps)
	v.bridge.Start(v.handle)
	v.state = Rendering
	v.log.Debug("rendering started", "fps", v.fps)
}

// SurfaceChanged forwards new surface dimensions.
func (v *View) SurfaceChanged(_ engine.Surface, width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.handle.Valid() {
		return
	}
	v.bridge.Resize(v.handle, width, height)
}

// SurfaceDestroyed stops rendering and detaches the surface. The handle
// stays alive for a later SurfaceCreated.
func (v *View) SurfaceDestroyed(engine.Surface) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.handle.Valid() {
		return
	}
	v.bridge.Stop(v.handle)
	v.bridge.ClearSurface(v.handle)
	if v.state == Rendering || v.state == SurfaceAttached {
		v.state = SurfaceDetached
	}
	v.log.Debug("surface detached")
}

// HandleTouch feeds one touch event through gesture interpretation and
// issues the resulting camera commands.
func (v *View) HandleTouch(ev gesture.Event) {
	v.mu.Lock()
	defer v.mu.Unlock()

	cmds := v.tracker.Handle(ev)
	if !v.handle.Valid() {
		return
	}
	for _, c := range cmds {
		switch c.Kind {
		case gesture.OrbitCommand:
			v.bridge.Orbit(v.handle, c.DX, c.DY)
		case gesture.PanCommand:
			v.bridge.Pan(v.handle, c.DX, c.DY)
		case gesture.ZoomCommand:
			v.bridge.Zoom(v.handle, c.Delta)
		}
	}
}

// Mode returns the current interaction mode.
func (v *View) Mode() gesture.Mode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tracker.State().Mode
}

// Diagnostics returns a fresh snapshot from the engine, or nil when the
// view has no live handle or the engine has nothing to report.
func (v *View) Diagnostics() engine.Diagnostics {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.handle.Valid() {
		return nil
	}
	return v.bridge.Diagnostics(v.handle)
}

// SetTestRPM drives the engine towards rpm with ignition on.
func (v *View) SetTestRPM(rpm float32) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.handle.Valid() {
		return
	}
	v.bridge.SetControlInputs(v.handle, engine.TestInputs(rpm))
}

// ReloadScene requests the scene to be loaded again.
func (v *View) ReloadScene() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.handle.Valid() {
		return
	}
	v.loadSceneLocked()
}

// Dispose unsubscribes from the surface holder, detaches from both
// registries and destroys the engine handle. Calling it again is a no-op.
func (v *View) Dispose() {
	if v.holder != nil {
		v.holder.RemoveCallback(v)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state == Disposed {
		return
	}
	v.state = Disposed
	v.tracker.Reset()
	if !v.handle.Valid() {
		return
	}

	h := v.handle
	v.bridge.Stop(h)
	v.bridge.ClearSurface(h)
	v.diag.Unregister(v)
	v.control.Unregister(v)
	v.bridge.Destroy(h)
	v.handle = engine.NullHandle
	v.log.Debug("view disposed")
}
