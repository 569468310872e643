package main

import "github.com/philipparndt/cylinderworks/internal/gesture"

// contactTracker turns per-frame contact samples into touch events.
// Contacts keep their index while down; when the count drops the
// trailing contacts are the ones that lifted.
type contactTracker struct {
	prev []gesture.Point
}

// Next compares cur with the previous sample.
func (c *contactTracker) Next(cur []gesture.Point) []gesture.Event {
	prev := c.prev
	c.prev = clonePoints(cur)

	var evs []gesture.Event
	switch {
	case len(cur) > len(prev):
		if len(prev) > 0 && moved(prev, cur[:len(prev)]) {
			evs = append(evs, gesture.Event{Action: gesture.Move, Pointers: clonePoints(cur[:len(prev)])})
		}
		for i := len(prev); i < len(cur); i++ {
			if i == 0 {
				evs = append(evs, gesture.Event{Action: gesture.Down, Pointers: clonePoints(cur[:1])})
				continue
			}
			evs = append(evs, gesture.Event{Action: gesture.PointerDown, Pointers: clonePoints(cur[:i+1]), ActionIndex: i})
		}

	case len(cur) < len(prev):
		for i := len(prev) - 1; i >= len(cur); i-- {
			if i == 0 {
				evs = append(evs, gesture.Event{Action: gesture.Up, Pointers: clonePoints(prev[:1])})
				continue
			}
			evs = append(evs, gesture.Event{Action: gesture.PointerUp, Pointers: clonePoints(prev[:i+1]), ActionIndex: i})
		}
		if len(cur) > 0 && moved(prev[:len(cur)], cur) {
			evs = append(evs, gesture.Event{Action: gesture.Move, Pointers: clonePoints(cur)})
		}

	default:
		if len(cur) > 0 && moved(prev, cur) {
			evs = append(evs, gesture.Event{Action: gesture.Move, Pointers: clonePoints(cur)})
		}
	}
	return evs
}

// Cancel ends any contact in progress.
func (c *contactTracker) Cancel() []gesture.Event {
	if len(c.prev) == 0 {
		return nil
	}
	ev := gesture.Event{Action: gesture.Cancel, Pointers: c.prev}
	c.prev = nil
	return []gesture.Event{ev}
}

func moved(a, b []gesture.Point) bool {
	for i := range a {
		if a[i] != b[i] {
			return true
		}
	}
	return false
}

func clonePoints(p []gesture.Point) []gesture.Point {
	if len(p) == 0 {
		return nil
	}
	return append([]gesture.Point(nil), p...)
}
