package viewer

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/philipparndt/cylinderworks/internal/gesture"
	"github.com/philipparndt/cylinderworks/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	created   []engine.Surface
	changes   [][2]int
	destroyed int
}

func (s *fakeSink) Create(surf engine.Surface) { s.created = append(s.created, surf) }
func (s *fakeSink) Change(w, h int)            { s.changes = append(s.changes, [2]int{w, h}) }
func (s *fakeSink) Destroy()                   { s.destroyed++ }

type recorder struct {
	events  []gesture.Event
	tracker *gesture.Tracker
	cmds    []gesture.Command
}

func newRecorder() *recorder {
	return &recorder{tracker: gesture.NewTracker()}
}

func (r *recorder) HandleTouch(ev gesture.Event) {
	r.events = append(r.events, ev)
	r.cmds = append(r.cmds, r.tracker.Handle(ev)...)
}

func (r *recorder) actions() []gesture.Action {
	out := make([]gesture.Action, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Action
	}
	return out
}

func drag(x, y, dx, dy float32) *fyne.DragEvent {
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}, Dragged: fyne.NewDelta(dx, dy)}
}

func TestResizePublishesSurface(t *testing.T) {
	test.NewTempApp(t)
	sink := &fakeSink{}
	v := NewEngineView(sink, newRecorder())

	v.Resize(fyne.NewSize(0, 0))
	assert.Empty(t, sink.created)

	v.Resize(fyne.NewSize(640, 480))
	require.Len(t, sink.created, 1)
	w, h := sink.created[0].Size()
	assert.Equal(t, [2]int{640, 480}, [2]int{w, h})

	v.Resize(fyne.NewSize(800, 600))
	assert.Equal(t, [][2]int{{800, 600}}, sink.changes)

	v.Close()
	v.Close()
	assert.Equal(t, 1, sink.destroyed)
}

func TestPrimaryDragOrbits(t *testing.T) {
	test.NewTempApp(t)
	r := newRecorder()
	v := NewEngineView(&fakeSink{}, r)

	v.MouseDown(&desktop.MouseEvent{Button: desktop.MouseButtonPrimary})
	v.Dragged(drag(110, 100, 10, 0))
	v.Dragged(drag(120, 90, 10, -10))
	v.DragEnd()

	assert.Equal(t, []gesture.Action{gesture.Down, gesture.Move, gesture.Move, gesture.Up}, r.actions())
	require.Len(t, r.cmds, 2)
	assert.Equal(t, gesture.Command{Kind: gesture.OrbitCommand, DX: -10, DY: 0}, r.cmds[0])
	assert.Equal(t, gesture.Command{Kind: gesture.OrbitCommand, DX: -10, DY: 10}, r.cmds[1])
	assert.Equal(t, gesture.None, r.tracker.State().Mode)
}

func TestSecondaryDragPans(t *testing.T) {
	test.NewTempApp(t)
	r := newRecorder()
	v := NewEngineView(&fakeSink{}, r)

	v.MouseDown(&desktop.MouseEvent{Button: desktop.MouseButtonSecondary})
	v.Dragged(drag(105, 100, 5, 0))
	v.DragEnd()

	assert.Equal(t, []gesture.Action{
		gesture.Down, gesture.PointerDown, gesture.Move, gesture.PointerUp, gesture.Up,
	}, r.actions())
	require.Len(t, r.cmds, 1)
	assert.Equal(t, gesture.PanCommand, r.cmds[0].Kind)
	assert.InDelta(t, 5, r.cmds[0].DX, 1e-5)
	assert.InDelta(t, 0, r.cmds[0].DY, 1e-5)
}

func TestShiftDragPans(t *testing.T) {
	test.NewTempApp(t)
	r := newRecorder()
	v := NewEngineView(&fakeSink{}, r)

	v.MouseDown(&desktop.MouseEvent{Button: desktop.MouseButtonPrimary, Modifier: fyne.KeyModifierShift})
	v.Dragged(drag(100, 110, 0, 10))
	v.DragEnd()

	require.Len(t, r.cmds, 1)
	assert.Equal(t, gesture.PanCommand, r.cmds[0].Kind)
}

func TestScrollPinches(t *testing.T) {
	test.NewTempApp(t)
	r := newRecorder()
	v := NewEngineView(&fakeSink{}, r)

	v.Scrolled(&fyne.ScrollEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(300, 200)}, Scrolled: fyne.NewDelta(0, 40)})

	var zoom float32
	for _, c := range r.cmds {
		if c.Kind == gesture.ZoomCommand {
			zoom += c.Delta
		}
	}
	assert.InDelta(t, 40*wheelZoomRate, zoom, 1e-4)
}

func TestScrollDuringDragIgnored(t *testing.T) {
	test.NewTempApp(t)
	r := newRecorder()
	v := NewEngineView(&fakeSink{}, r)

	v.Dragged(drag(110, 100, 10, 0))
	n := len(r.events)
	v.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, 40)})
	assert.Len(t, r.events, n)
}
