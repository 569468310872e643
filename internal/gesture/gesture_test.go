package gesture

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pts(xy ...float32) []Point {
	out := make([]Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, Point{xy[i], xy[i+1]})
	}
	return out
}

func TestOrbitDrag(t *testing.T) {
	s, cmd := Step(State{}, Event{Action: Down, Pointers: pts(100, 100)}, false)
	assert.Equal(t, Orbit, s.Mode)
	assert.Equal(t, NoCommand, cmd.Kind)

	s, cmd = Step(s, Event{Action: Move, Pointers: pts(80, 70)}, false)
	assert.Equal(t, Command{Kind: OrbitCommand, DX: 20, DY: 30}, cmd)
	assert.Equal(t, Point{80, 70}, s.Anchor)

	// a second move is relative to the new anchor
	_, cmd = Step(s, Event{Action: Move, Pointers: pts(85, 70)}, false)
	assert.Equal(t, Command{Kind: OrbitCommand, DX: -5, DY: 0}, cmd)
}

func TestTwoFingerPan(t *testing.T) {
	s, _ := Step(State{}, Event{Action: Down, Pointers: pts(0, 0)}, false)
	s, _ = Step(s, Event{Action: PointerDown, Pointers: pts(0, 0, 10, 0), ActionIndex: 1}, false)
	assert.Equal(t, Pan, s.Mode)
	assert.Equal(t, Point{5, 0}, s.Anchor)

	s, cmd := Step(s, Event{Action: Move, Pointers: pts(0, 0, 10, 0)}, false)
	assert.Equal(t, Command{Kind: PanCommand}, cmd)

	_, cmd = Step(s, Event{Action: Move, Pointers: pts(10, 10, 20, 10)}, false)
	assert.Equal(t, Command{Kind: PanCommand, DX: 10, DY: 10}, cmd)
}

func TestPinchMasksPan(t *testing.T) {
	s := State{Mode: Pan, Anchor: Point{5, 0}}
	next, cmd := Step(s, Event{Action: Move, Pointers: pts(10, 10, 20, 10)}, true)
	assert.Equal(t, NoCommand, cmd.Kind)
	assert.Equal(t, State{Mode: Pan, Anchor: Point{15, 10}}, next)
}

func TestPanAfterPinchIsIncremental(t *testing.T) {
	s := State{Mode: Pan, Anchor: Point{5, 0}}
	s, cmd := Step(s, Event{Action: Move, Pointers: pts(0, 0, 40, 0)}, true)
	assert.Equal(t, NoCommand, cmd.Kind)

	// only the movement since the last masked move is reported
	_, cmd = Step(s, Event{Action: Move, Pointers: pts(2, 3, 42, 3)}, false)
	assert.Equal(t, Command{Kind: PanCommand, DX: 2, DY: 3}, cmd)
}

func TestPanNeedsTwoPointers(t *testing.T) {
	s := State{Mode: Pan, Anchor: Point{5, 0}}
	_, cmd := Step(s, Event{Action: Move, Pointers: pts(50, 50)}, false)
	assert.Equal(t, NoCommand, cmd.Kind)
}

func TestPointerUpReanchors(t *testing.T) {
	pan := State{Mode: Pan, Anchor: Point{5, 0}}

	s, _ := Step(pan, Event{Action: PointerUp, Pointers: pts(0, 0, 10, 0), ActionIndex: 0}, false)
	assert.Equal(t, State{Mode: Orbit, Anchor: Point{10, 0}}, s)

	s, _ = Step(pan, Event{Action: PointerUp, Pointers: pts(0, 0, 10, 0), ActionIndex: 1}, false)
	assert.Equal(t, State{Mode: Orbit, Anchor: Point{0, 0}}, s)

	// the remaining index is out of range: keep the old anchor
	s, _ = Step(pan, Event{Action: PointerUp, Pointers: pts(0, 0), ActionIndex: 0}, false)
	assert.Equal(t, State{Mode: Orbit, Anchor: Point{5, 0}}, s)
}

func TestPointerUpFromThreeStaysPan(t *testing.T) {
	pan := State{Mode: Pan, Anchor: Point{10, 0}}
	s, _ := Step(pan, Event{Action: PointerUp, Pointers: pts(0, 0, 10, 0, 20, 0), ActionIndex: 2}, false)
	assert.Equal(t, State{Mode: Pan, Anchor: Point{5, 0}}, s)
}

func TestUpAndCancelEndGesture(t *testing.T) {
	for _, a := range []Action{Up, Cancel} {
		s, cmd := Step(State{Mode: Orbit}, Event{Action: a, Pointers: pts(1, 1)}, false)
		assert.Equal(t, None, s.Mode, a.String())
		assert.Equal(t, NoCommand, cmd.Kind)
	}
}

func TestMoveWithoutGesture(t *testing.T) {
	s, cmd := Step(State{}, Event{Action: Move, Pointers: pts(3, 4)}, false)
	assert.Equal(t, None, s.Mode)
	assert.Equal(t, NoCommand, cmd.Kind)
}

func TestCentroid(t *testing.T) {
	assert.Equal(t, Point{5, 0}, Centroid(pts(0, 0, 10, 0)))
	assert.Equal(t, Point{2, 3}, Centroid(pts(2, 3)))
	assert.Equal(t, Point{}, Centroid(nil))
}

func TestZoomDelta(t *testing.T) {
	in, ok := ZoomDelta(2)
	require.True(t, ok)
	out, ok := ZoomDelta(0.5)
	require.True(t, ok)
	assert.Equal(t, -in, out)
	assert.InDelta(t, 0.6931472, in, 1e-6)

	one, ok := ZoomDelta(1)
	require.True(t, ok)
	assert.Zero(t, one)

	for _, bad := range []float32{0, -1, math32.NaN(), math32.Inf(1), math32.Inf(-1)} {
		_, ok := ZoomDelta(bad)
		assert.False(t, ok, "scale %v", bad)
	}
}

func TestParseAction(t *testing.T) {
	for a := Down; a <= Cancel; a++ {
		got, err := ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	_, err := ParseAction("hover")
	assert.Error(t, err)
}
