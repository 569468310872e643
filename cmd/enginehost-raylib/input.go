package main

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/cylinderworks/internal/gesture"
	"github.com/philipparndt/cylinderworks/pkg/engine"
)

const (
	panSpread   = 60
	pinchRadius = 120
	wheelRate   = 0.1
	rpmStep     = 250
)

// contactsNow samples the active contacts. Real touch points win; with a
// mouse the left button is one finger and the right button is two.
func contactsNow() []gesture.Point {
	if n := rl.GetTouchPointCount(); n > 1 {
		out := make([]gesture.Point, n)
		for i := range out {
			p := rl.GetTouchPosition(int32(i))
			out[i] = gesture.Point{X: p.X, Y: p.Y}
		}
		return out
	}

	m := rl.GetMousePosition()
	p := gesture.Point{X: m.X, Y: m.Y}
	switch {
	case rl.IsMouseButtonDown(rl.MouseRightButton):
		return []gesture.Point{p, {X: p.X + panSpread, Y: p.Y}}
	case rl.IsMouseButtonDown(rl.MouseLeftButton):
		return []gesture.Point{p}
	}
	return nil
}

func (w *window) handleInput() {
	w.dispatch(w.contacts.Next(contactsNow()))

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && len(w.contacts.prev) == 0 {
		m := rl.GetMousePosition()
		factor := math32.Exp(wheel * wheelRate)
		w.dispatch(gesture.Pinch(gesture.Point{X: m.X, Y: m.Y}, pinchRadius, factor, 4))
	}

	// Keyboard controls
	switch {
	case rl.IsKeyPressed(rl.KeyUp):
		w.setRPM(w.rpm + rpmStep)
	case rl.IsKeyPressed(rl.KeyDown):
		w.setRPM(w.rpm - rpmStep)
	case rl.IsKeyPressed(rl.KeyZero):
		w.setRPM(0)
	case rl.IsKeyPressed(rl.KeyR):
		w.host.View.ReloadScene()
		w.log.Info("scene reload requested")
	}
}

func (w *window) setRPM(rpm float32) {
	w.rpm = min(max(rpm, 0), engine.MaxRPM)
	w.host.View.SetTestRPM(w.rpm)
}

func (w *window) dispatch(evs []gesture.Event) {
	for _, ev := range evs {
		w.host.View.HandleTouch(ev)
	}
}
