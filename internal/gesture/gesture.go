// Package gesture turns raw multi-touch events into camera commands.
//
// Classification is a pure state machine: Step takes the current State
// and an Event and returns the next State plus at most one Command. A
// ScaleDetector runs alongside it and, while a pinch is in progress,
// masks two-finger panning.
package gesture

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Mode is the current interaction mode.
type Mode int

const (
	None Mode = iota
	Orbit
	Pan
)

func (m Mode) String() string {
	switch m {
	case None:
		return "none"
	case Orbit:
		return "orbit"
	case Pan:
		return "pan"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Point is a position in surface pixels.
type Point struct {
	X, Y float32
}

// Sub returns p-q
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Action is the kind of a touch event.
type Action int

const (
	// Down is the first pointer touching.
	Down Action = iota
	// PointerDown is an additional pointer touching.
	PointerDown
	// Move is any pointer moving.
	Move
	// PointerUp is a non-last pointer lifting.
	PointerUp
	// Up is the last pointer lifting.
	Up
	// Cancel aborts the gesture.
	Cancel
)

var actionNames = [...]string{"down", "pointer_down", "move", "pointer_up", "up", "cancel"}

func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction parses the String form of an Action.
func ParseAction(s string) (Action, error) {
	for i, name := range actionNames {
		if name == s {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("unknown touch action %q", s)
}

// Event is one touch event. Pointers lists every pointer that is down
// during the event, including one that is lifting on PointerUp; Pointers[0]
// is the primary pointer. ActionIndex is the index of the pointer that
// went down or up.
type Event struct {
	Action      Action
	Pointers    []Point
	ActionIndex int
}

// Primary returns the first pointer, or the zero point.
func (e Event) Primary() Point {
	if len(e.Pointers) == 0 {
		return Point{}
	}
	return e.Pointers[0]
}

// CommandKind says which camera operation a Command requests.
type CommandKind int

const (
	NoCommand CommandKind = iota
	OrbitCommand
	PanCommand
	ZoomCommand
)

// Command is a camera operation. DX and DY are used by orbit and pan,
// Delta by zoom.
type Command struct {
	Kind   CommandKind
	DX, DY float32
	Delta  float32
}

// State is the classifier state carried between events.
type State struct {
	Mode   Mode
	Anchor Point
}

// Centroid returns the mean of the points. An empty slice yields the
// origin.
func Centroid(points []Point) Point {
	var sum Point
	for _, p := range points {
		sum.X += p.X
		sum.Y += p.Y
	}
	n := float32(max(len(points), 1))
	return Point{sum.X / n, sum.Y / n}
}

// Step advances the classifier by one event. pinching reports whether a
// pinch is in progress, which suppresses pan commands.
func Step(s State, ev Event, pinching bool) (State, Command) {
	count := len(ev.Pointers)

	switch ev.Action {
	case Down:
		return State{Mode: Orbit, Anchor: ev.Primary()}, Command{}

	case PointerDown:
		if count >= 2 {
			return State{Mode: Pan, Anchor: Centroid(ev.Pointers)}, Command{}
		}
		return s, Command{}

	case Move:
		switch s.Mode {
		case Orbit:
			p := ev.Primary()
			d := p.Sub(s.Anchor)
			// dragging right rotates the camera left
			return State{Mode: Orbit, Anchor: p}, Command{Kind: OrbitCommand, DX: -d.X, DY: -d.Y}
		case Pan:
			if count < 2 {
				return s, Command{}
			}
			c := Centroid(ev.Pointers)
			// a pinch still moves the anchor so the next pan is incremental
			if pinching {
				return State{Mode: Pan, Anchor: c}, Command{}
			}
			d := c.Sub(s.Anchor)
			return State{Mode: Pan, Anchor: c}, Command{Kind: PanCommand, DX: d.X, DY: d.Y}
		}
		return s, Command{}

	case PointerUp:
		if count-1 <= 1 {
			next := State{Mode: Orbit, Anchor: s.Anchor}
			remaining := 0
			if ev.ActionIndex == 0 {
				remaining = 1
			}
			if remaining < count {
				next.Anchor = ev.Pointers[remaining]
			}
			return next, Command{}
		}
		// still panning with fewer fingers: re-anchor so the centroid
		// shift from the lifted finger is not reported as a pan
		if s.Mode == Pan {
			return State{Mode: Pan, Anchor: Centroid(without(ev.Pointers, ev.ActionIndex))}, Command{}
		}
		return s, Command{}

	case Up, Cancel:
		return State{Mode: None, Anchor: s.Anchor}, Command{}
	}
	return s, Command{}
}

// ZoomDelta converts a pinch scale factor into a zoom delta on a log
// scale, so 2 and 0.5 give equal and opposite deltas and 1 gives zero.
// Non-finite and non-positive factors are rejected.
func ZoomDelta(scale float32) (float32, bool) {
	if math32.IsNaN(scale) || math32.IsInf(scale, 0) || scale <= 0 {
		return 0, false
	}
	return math32.Log(scale), true
}

func without(points []Point, index int) []Point {
	if index < 0 || index >= len(points) {
		return points
	}
	out := make([]Point, 0, len(points)-1)
	out = append(out, points[:index]...)
	return append(out, points[index+1:]...)
}
