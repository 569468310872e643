// Package engine defines the command set a renderer instance exposes to
// its host. A renderer is addressed only through an opaque Handle; the
// host never holds a reference to the renderer itself.
package engine

import (
	"image"
	"io/fs"
	"sync"

	"github.com/chewxy/math32"
)

// Handle identifies one live renderer instance in a table the host does
// not own. NullHandle means "no instance" or "destroyed".
type Handle uint64

// NullHandle is the sentinel for an absent or destroyed renderer.
const NullHandle Handle = 0

// Valid reports whether h refers to a renderer.
func (h Handle) Valid() bool {
	return h != NullHandle
}

// Surface is a host-provided pixel target. Its lifetime is owned by the
// host; a renderer only draws into it while attached.
type Surface interface {
	// Size returns the current pixel dimensions.
	Size() (width, height int)
	// Present hands a finished frame to the host. The image is only
	// valid for the duration of the call.
	Present(frame *image.RGBA) error
}

// ControlInputs drive the simulated engine assembly.
type ControlInputs struct {
	Throttle float32
	Starter  bool
	Ignition bool
}

// Crank speed range of the simulated engine with ignition on.
const (
	IdleRPM = 800.0
	MaxRPM  = 6500.0
)

// ThrottleForRPM returns the throttle that settles the engine at rpm,
// clamped to [0, 1].
func ThrottleForRPM(rpm float32) float32 {
	t := (rpm - IdleRPM) / (MaxRPM - IdleRPM)
	if math32.IsNaN(t) || t < 0 {
		return 0
	}
	return min(t, 1)
}

// TestInputs are the control inputs for a test rpm request: ignition on,
// starter off.
func TestInputs(rpm float32) ControlInputs {
	return ControlInputs{Throttle: ThrottleForRPM(rpm), Ignition: true}
}

// Diagnostics is a snapshot of live renderer state keyed by free-form
// names. Each call that produces one returns a fresh map the caller owns.
type Diagnostics map[string]any

// Clone returns a shallow copy, or nil for a nil map.
func (d Diagnostics) Clone() Diagnostics {
	if d == nil {
		return nil
	}
	out := make(Diagnostics, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Well known diagnostics keys.
const (
	KeyFPS           = "fps"
	KeyFrameTimeMs   = "frameTimeMs"
	KeySurfaceWidth  = "surfaceWidth"
	KeySurfaceHeight = "surfaceHeight"
	KeyFrameCount    = "frameCount"
	KeySurfaceReady  = "eglReady"
	KeyGPURenderer   = "gpuRenderer"
	KeyGPUVendor     = "gpuVendor"
	KeyGPUVersion    = "gpuVersion"
)

// Bridge is the fixed command set of the rendering engine. Every method
// called with NullHandle or an unknown handle is a no-op; commands are
// fire-and-forget except Diagnostics, which is a synchronous round trip.
type Bridge interface {
	Create() Handle
	Destroy(h Handle)

	SetAssetSource(h Handle, assets fs.FS)
	// LoadScene schedules an asynchronous load of the scene description
	// under key and reports whether the load could be scheduled.
	LoadScene(h Handle, key string) bool

	SetSurface(h Handle, s Surface) bool
	ClearSurface(h Handle)
	Resize(h Handle, width, height int)

	Start(h Handle)
	Stop(h Handle)

	Orbit(h Handle, dx, dy float32)
	Pan(h Handle, dx, dy float32)
	Zoom(h Handle, delta float32)

	SetPreferredFrameRate(h Handle, fps int)
	SetControlInputs(h Handle, in ControlInputs)

	// Diagnostics returns nil when h has no data to report.
	Diagnostics(h Handle) Diagnostics
}

// ImageSurface is a Surface that keeps the last presented frame. Hosts
// that blit frames themselves (desktop windows, tests) embed or wrap it.
type ImageSurface struct {
	mu            sync.Mutex
	width, height int
	onPresent     func(*image.RGBA)
}

// NewImageSurface creates a surface of the given size. onPresent may be
// nil.
func NewImageSurface(width, height int, onPresent func(*image.RGBA)) *ImageSurface {
	return &ImageSurface{width: width, height: height, onPresent: onPresent}
}

// Size implements Surface.
func (s *ImageSurface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// SetSize changes the reported dimensions. The host is expected to
// follow up with a resize on the renderer.
func (s *ImageSurface) SetSize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
}

// Present implements Surface.
func (s *ImageSurface) Present(frame *image.RGBA) error {
	if s.onPresent != nil {
		s.onPresent(frame)
	}
	return nil
}
