package main

import (
	"image"
	"testing"

	"github.com/philipparndt/cylinderworks/internal/gesture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pts(xy ...float32) []gesture.Point {
	var out []gesture.Point
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, gesture.Point{X: xy[i], Y: xy[i+1]})
	}
	return out
}

func actions(evs []gesture.Event) []gesture.Action {
	out := make([]gesture.Action, len(evs))
	for i, ev := range evs {
		out[i] = ev.Action
	}
	return out
}

func TestContactTrackerSingleFinger(t *testing.T) {
	var c contactTracker
	assert.Empty(t, c.Next(nil))

	evs := c.Next(pts(10, 10))
	assert.Equal(t, []gesture.Action{gesture.Down}, actions(evs))

	assert.Empty(t, c.Next(pts(10, 10)))

	evs = c.Next(pts(20, 15))
	require.Len(t, evs, 1)
	assert.Equal(t, gesture.Move, evs[0].Action)
	assert.Equal(t, pts(20, 15), evs[0].Pointers)

	evs = c.Next(nil)
	require.Len(t, evs, 1)
	assert.Equal(t, gesture.Up, evs[0].Action)
	assert.Equal(t, pts(20, 15), evs[0].Pointers)
}

func TestContactTrackerSecondFinger(t *testing.T) {
	var c contactTracker
	c.Next(pts(10, 10))

	evs := c.Next(pts(12, 10, 70, 10))
	assert.Equal(t, []gesture.Action{gesture.Move, gesture.PointerDown}, actions(evs))
	assert.Equal(t, 1, evs[1].ActionIndex)
	assert.Len(t, evs[1].Pointers, 2)

	evs = c.Next(pts(12, 10))
	assert.Equal(t, []gesture.Action{gesture.PointerUp}, actions(evs))
	assert.Equal(t, 1, evs[0].ActionIndex)
	assert.Equal(t, pts(12, 10, 70, 10), evs[0].Pointers)

	evs = c.Next(nil)
	assert.Equal(t, []gesture.Action{gesture.Up}, actions(evs))
}

func TestContactTrackerBothAtOnce(t *testing.T) {
	var c contactTracker
	evs := c.Next(pts(10, 10, 70, 10))
	assert.Equal(t, []gesture.Action{gesture.Down, gesture.PointerDown}, actions(evs))

	evs = c.Next(nil)
	assert.Equal(t, []gesture.Action{gesture.PointerUp, gesture.Up}, actions(evs))
}

func TestContactTrackerDrivesPan(t *testing.T) {
	var c contactTracker
	tr := gesture.NewTracker()
	var cmds []gesture.Command
	for _, sample := range [][]gesture.Point{pts(100, 100, 160, 100), pts(110, 105, 170, 105), nil} {
		for _, ev := range c.Next(sample) {
			cmds = append(cmds, tr.Handle(ev)...)
		}
	}
	require.Len(t, cmds, 1)
	assert.Equal(t, gesture.Command{Kind: gesture.PanCommand, DX: 10, DY: 5}, cmds[0])
}

func TestContactTrackerCancel(t *testing.T) {
	var c contactTracker
	assert.Nil(t, c.Cancel())
	c.Next(pts(1, 1))
	evs := c.Cancel()
	assert.Equal(t, []gesture.Action{gesture.Cancel}, actions(evs))
	assert.Equal(t, []gesture.Action{gesture.Down}, actions(c.Next(pts(1, 1))))
}

func TestFrameBox(t *testing.T) {
	var b frameBox
	calls := 0
	assert.Equal(t, uint64(0), b.Take(0, func(*image.RGBA) { calls++ }))

	f := image.NewRGBA(image.Rect(0, 0, 2, 2))
	f.Pix[0] = 9
	b.Put(f)
	f.Pix[0] = 1

	seen := b.Take(0, func(got *image.RGBA) {
		calls++
		assert.Equal(t, uint8(9), got.Pix[0])
	})
	assert.Equal(t, uint64(1), seen)
	assert.Equal(t, seen, b.Take(seen, func(*image.RGBA) { calls++ }))
	assert.Equal(t, 1, calls)
}

func TestHUDLines(t *testing.T) {
	snap := map[string]any{"rpm": 812.31, "fps": float32(59.9), "zeta": true, "alpha": 1}
	assert.Equal(t, []string{"fps: 59.9", "rpm: 812.3"}, hudLines(snap, false))
	assert.Equal(t, []string{"fps: 59.9", "rpm: 812.3", "alpha: 1", "zeta: true"}, hudLines(snap, true))
}
