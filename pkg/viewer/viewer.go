// Package viewer provides a fyne widget that hosts a renderer view on a
// desktop. It publishes its own image surface and turns mouse input into
// touch events: a plain drag orbits, a secondary or shift drag pans with
// two synthesized fingers and the scroll wheel pinches.
package viewer

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/chewxy/math32"
	"github.com/philipparndt/cylinderworks/internal/gesture"
	"github.com/philipparndt/cylinderworks/pkg/engine"
)

const (
	panSpread     = 60
	pinchRadius   = 120
	pinchMoves    = 4
	wheelZoomRate = 0.01
)

// SurfaceSink publishes surface lifecycle to the views attached to it.
type SurfaceSink interface {
	Create(s engine.Surface)
	Change(width, height int)
	Destroy()
}

// TouchTarget receives synthesized touch events.
type TouchTarget interface {
	HandleTouch(ev gesture.Event)
}

// EngineView displays rendered frames and forwards input as touches.
type EngineView struct {
	widget.BaseWidget

	sink    SurfaceSink
	target  TouchTarget
	image   *canvas.Image
	surface *engine.ImageSurface

	mu       sync.Mutex
	created  bool
	pan      bool
	pointers []gesture.Point
}

var (
	_ fyne.Draggable    = (*EngineView)(nil)
	_ fyne.Scrollable   = (*EngineView)(nil)
	_ desktop.Mouseable = (*EngineView)(nil)
)

// NewEngineView creates the widget. The surface is published to sink on
// the first layout with a non-empty size.
func NewEngineView(sink SurfaceSink, target TouchTarget) *EngineView {
	v := &EngineView{sink: sink, target: target}
	v.image = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	v.image.FillMode = canvas.ImageFillStretch
	v.image.ScaleMode = canvas.ImageScalePixels
	v.surface = engine.NewImageSurface(0, 0, v.present)
	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer implements fyne.Widget.
func (v *EngineView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.image)
}

// MinSize implements fyne.CanvasObject.
func (v *EngineView) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

// Resize publishes the new size to the sink.
func (v *EngineView) Resize(size fyne.Size) {
	v.BaseWidget.Resize(size)
	w, h := int(size.Width), int(size.Height)
	if w <= 0 || h <= 0 {
		return
	}
	v.surface.SetSize(w, h)

	v.mu.Lock()
	created := v.created
	v.created = true
	v.mu.Unlock()

	if !created {
		v.sink.Create(v.surface)
		return
	}
	v.sink.Change(w, h)
}

// Close withdraws the surface.
func (v *EngineView) Close() {
	v.mu.Lock()
	created := v.created
	v.created = false
	v.mu.Unlock()
	if created {
		v.sink.Destroy()
	}
}

// present runs on the render loop; the frame is only valid during the
// call.
func (v *EngineView) present(frame *image.RGBA) {
	c := image.NewRGBA(frame.Rect)
	copy(c.Pix, frame.Pix)
	fyne.Do(func() {
		v.image.Image = c
		v.image.Refresh()
	})
}

// MouseDown records whether the next drag pans.
func (v *EngineView) MouseDown(ev *desktop.MouseEvent) {
	v.mu.Lock()
	v.pan = ev.Button == desktop.MouseButtonSecondary || ev.Modifier&fyne.KeyModifierShift != 0
	v.mu.Unlock()
}

// MouseUp implements desktop.Mouseable.
func (v *EngineView) MouseUp(*desktop.MouseEvent) {}

// Dragged implements fyne.Draggable.
func (v *EngineView) Dragged(ev *fyne.DragEvent) {
	p := gesture.Point{X: ev.Position.X, Y: ev.Position.Y}

	v.mu.Lock()
	var evs []gesture.Event
	if v.pointers == nil {
		evs = v.beginLocked(p.Sub(gesture.Point{X: ev.Dragged.DX, Y: ev.Dragged.DY}))
	}
	v.pointers = v.placeLocked(p)
	evs = append(evs, gesture.Event{Action: gesture.Move, Pointers: v.pointers})
	v.mu.Unlock()

	v.dispatch(evs)
}

// DragEnd implements fyne.Draggable.
func (v *EngineView) DragEnd() {
	v.mu.Lock()
	pts := v.pointers
	v.pointers = nil
	v.mu.Unlock()

	if pts == nil {
		return
	}
	var evs []gesture.Event
	if len(pts) == 2 {
		evs = append(evs, gesture.Event{Action: gesture.PointerUp, Pointers: pts, ActionIndex: 1})
	}
	v.dispatch(append(evs, gesture.Event{Action: gesture.Up, Pointers: pts[:1]}))
}

// Scrolled zooms with a synthesized pinch around the cursor. Wheel input
// during a drag is ignored.
func (v *EngineView) Scrolled(ev *fyne.ScrollEvent) {
	v.mu.Lock()
	dragging := v.pointers != nil
	v.mu.Unlock()
	if dragging || ev.Scrolled.DY == 0 {
		return
	}
	factor := math32.Exp(ev.Scrolled.DY * wheelZoomRate)
	v.dispatch(gesture.Pinch(gesture.Point{X: ev.Position.X, Y: ev.Position.Y}, pinchRadius, factor, pinchMoves))
}

func (v *EngineView) beginLocked(start gesture.Point) []gesture.Event {
	first := []gesture.Point{start}
	evs := []gesture.Event{{Action: gesture.Down, Pointers: first}}
	if v.pan {
		v.pointers = v.twoFinger(start)
		evs = append(evs, gesture.Event{Action: gesture.PointerDown, Pointers: v.pointers, ActionIndex: 1})
		return evs
	}
	v.pointers = first
	return evs
}

func (v *EngineView) placeLocked(p gesture.Point) []gesture.Point {
	if len(v.pointers) == 2 {
		return v.twoFinger(p)
	}
	return []gesture.Point{p}
}

func (v *EngineView) twoFinger(p gesture.Point) []gesture.Point {
	return []gesture.Point{p, {X: p.X + panSpread, Y: p.Y}}
}

func (v *EngineView) dispatch(evs []gesture.Event) {
	for _, ev := range evs {
		v.target.HandleTouch(ev)
	}
}
