package soft

import (
	"fmt"
	"image/color"
	"io/fs"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/philipparndt/cylinderworks/pkg/assembly"
	"github.com/philipparndt/cylinderworks/pkg/engine"
	"github.com/philipparndt/cylinderworks/pkg/geometry"
	"github.com/philipparndt/cylinderworks/version"
)

var (
	background = color.RGBA{R: 15, G: 18, B: 25, A: 255}
	gridColor  = color.RGBA{R: 48, G: 54, B: 66, A: 255}
	lightDir   = geometry.NewVector3(0.4, 0.8, 0.45).Normalize()
)

const (
	defaultFPS = 60
	gridExtent = 5
)

// renderer is one engine instance. mu guards everything except the
// atomics and the loop channels, which are owned by Start and Stop.
type renderer struct {
	log *slog.Logger

	mu      sync.Mutex
	surface engine.Surface
	width   int
	height  int
	camera  *OrbitCamera
	frame   *frameBuffer
	overlay *hud
	motion  kinematics

	assets   fs.FS
	sceneKey string
	sceneGen int
	scene    *assembly.Assembly
	sceneErr error

	running bool
	stop    chan struct{}
	done    chan struct{}

	preferredFPS atomic.Int32
	lastFrame    time.Time
	fps          float64
	frameTimeMs  float64
	frameCount   int
}

func newRenderer(log *slog.Logger, withHUD bool) *renderer {
	r := &renderer{
		log:    log,
		camera: NewOrbitCamera(),
		frame:  newFrameBuffer(1, 1),
	}
	r.preferredFPS.Store(defaultFPS)
	if withHUD {
		overlay, err := newHUD()
		if err != nil {
			log.Warn("HUD disabled", "error", err)
		}
		r.overlay = overlay
	}
	return r
}

func (r *renderer) setSurface(s engine.Surface) bool {
	if s == nil {
		return false
	}
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		r.log.Warn("rejecting surface with empty size", "width", w, "height", h)
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.surface = s
	r.width, r.height = w, h
	return true
}

func (r *renderer) clearSurface() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.surface = nil
}

func (r *renderer) resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = w, h
}

func (r *renderer) setAssets(assets fs.FS) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets = assets
	r.scene = nil
	r.sceneErr = nil
}

// loadScene schedules the load on its own goroutine. A newer request
// supersedes an older one still in flight.
func (r *renderer) loadScene(key string) bool {
	if key == "" {
		return false
	}
	r.mu.Lock()
	assets := r.assets
	if assets == nil {
		r.mu.Unlock()
		return false
	}
	r.sceneKey = key
	r.sceneGen++
	gen := r.sceneGen
	r.mu.Unlock()

	go func() {
		start := time.Now()
		scene, err := assembly.Load(assets, key)

		r.mu.Lock()
		defer r.mu.Unlock()
		if gen != r.sceneGen {
			return
		}
		r.scene, r.sceneErr = scene, err
		if err != nil {
			r.log.Warn("scene load failed", "key", key, "error", err)
			return
		}
		r.log.Debug("scene loaded", "key", key, "parts", len(scene.Parts), "elapsed", time.Since(start))
	}()
	return true
}

func (r *renderer) start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.running = true
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	r.lastFrame = time.Time{}
	r.fps, r.frameTimeMs, r.frameCount = 0, 0, 0
	go r.loop(r.stop, r.done)
}

func (r *renderer) halt() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	stop, done := r.stop, r.done
	r.mu.Unlock()

	close(stop)
	<-done
}

func (r *renderer) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	timer := time.NewTimer(r.interval())
	defer timer.Stop()
	for {
		select {
		case <-stop:
			return
		case now := <-timer.C:
			r.renderFrame(now)
			timer.Reset(r.interval())
		}
	}
}

func (r *renderer) interval() time.Duration {
	fps := r.preferredFPS.Load()
	if fps <= 0 {
		fps = defaultFPS
	}
	return time.Second / time.Duration(fps)
}

// renderFrame draws and presents one frame. It does nothing without a
// surface.
func (r *renderer) renderFrame(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.surface == nil {
		return
	}

	dt := 0.0
	if !r.lastFrame.IsZero() {
		dt = now.Sub(r.lastFrame).Seconds()
		r.frameTimeMs = dt * 1000
		if dt > 0 {
			instant := 1 / dt
			if r.fps == 0 {
				r.fps = instant
			} else {
				r.fps = r.fps*0.9 + instant*0.1
			}
		}
	}
	r.lastFrame = now
	r.motion.step(dt)

	r.frame.reset(r.width, r.height, background)
	r.drawGrid()
	r.drawScene()
	if r.overlay != nil {
		err := r.overlay.draw(r.frame.img,
			fmt.Sprintf("%.0f fps  %.1f ms", r.fps, r.frameTimeMs),
			fmt.Sprintf("%.0f rpm", r.motion.rpm),
		)
		if err != nil {
			r.log.Debug("HUD draw failed", "error", err)
		}
	}

	if err := r.surface.Present(r.frame.img); err != nil {
		r.log.Warn("present failed", "error", err)
		return
	}
	r.frameCount++
}

func (r *renderer) drawGrid() {
	w, h := float64(r.width), float64(r.height)
	limit := 4 * math.Max(w, h)
	for i := -gridExtent; i <= gridExtent; i++ {
		f := float64(i)
		for _, seg := range [2][2]geometry.Vector3{
			{geometry.NewVector3(f, 0, -gridExtent), geometry.NewVector3(f, 0, gridExtent)},
			{geometry.NewVector3(-gridExtent, 0, f), geometry.NewVector3(gridExtent, 0, f)},
		} {
			x1, y1, _, ok1 := r.camera.Project(seg[0], w, h)
			x2, y2, _, ok2 := r.camera.Project(seg[1], w, h)
			if !ok1 || !ok2 || math.Abs(x1) > limit || math.Abs(y1) > limit || math.Abs(x2) > limit || math.Abs(y2) > limit {
				continue
			}
			r.frame.drawLine(int(x1), int(y1), int(x2), int(y2), gridColor)
		}
	}
}

func (r *renderer) drawScene() {
	if r.scene == nil {
		return
	}
	w, h := float64(r.width), float64(r.height)
	for _, part := range r.scene.Parts {
		xf := part.Transform(r.motion.crank)
		for _, tri := range part.Model.Triangles {
			t := tri.Transform(xf)
			ax, ay, az, ok1 := r.camera.Project(t.V1, w, h)
			bx, by, bz, ok2 := r.camera.Project(t.V2, w, h)
			cx, cy, cz, ok3 := r.camera.Project(t.V3, w, h)
			if !ok1 || !ok2 || !ok3 {
				continue
			}
			intensity := 0.25 + 0.75*math.Abs(t.Normal.Dot(lightDir))
			r.frame.fillTriangle(vertex{ax, ay, az}, vertex{bx, by, bz}, vertex{cx, cy, cz}, shade(part.Color, intensity))
		}
	}
}

func (r *renderer) diagnostics() engine.Diagnostics {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := engine.Diagnostics{
		engine.KeyFPS:           r.fps,
		engine.KeyFrameTimeMs:   r.frameTimeMs,
		engine.KeySurfaceWidth:  r.width,
		engine.KeySurfaceHeight: r.height,
		engine.KeyFrameCount:    r.frameCount,
		engine.KeySurfaceReady:  r.surface != nil,
		engine.KeyGPURenderer:   "software rasterizer",
		engine.KeyGPUVendor:     "cylinderworks",
		engine.KeyGPUVersion:    version.GetFullVersion(),
		"running":               r.running,
		"preferredFps":          int(r.preferredFPS.Load()),
		"sceneKey":              r.sceneKey,
		"sceneLoaded":           r.scene != nil,
		"rpm":                   r.motion.rpm,
		"throttle":              float64(r.motion.inputs.Throttle),
		"ignition":              r.motion.inputs.Ignition,
		"cameraYaw":             r.camera.Yaw,
		"cameraPitch":           r.camera.Pitch,
		"cameraDistance":        r.camera.Distance,
	}
	if r.scene != nil {
		d["sceneName"] = r.scene.Name
		d["sceneParts"] = len(r.scene.Parts)
		d["sceneTriangles"] = r.scene.Stats.TriangleCount
	}
	if r.sceneErr != nil {
		d["sceneError"] = r.sceneErr.Error()
	}
	return d
}
