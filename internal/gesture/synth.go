package gesture

// Pinch returns the events of a symmetric two-finger pinch around center
// that scales the span by factor over n moves. The fingers start radius
// away from center and the first move only crosses the span slop, so a
// Tracker reports a total zoom of ln(factor).
func Pinch(center Point, radius, factor float32, n int) []Event {
	n = max(n, 1)
	dir := float32(1)
	if factor < 1 {
		dir = -1
	}
	at := func(r float32) []Point {
		return []Point{{X: center.X - r, Y: center.Y}, {X: center.X + r, Y: center.Y}}
	}

	begin := radius + dir*(DefaultSpanSlop/2+1)
	evs := []Event{
		{Action: Down, Pointers: at(radius)[:1]},
		{Action: PointerDown, Pointers: at(radius), ActionIndex: 1},
		{Action: Move, Pointers: at(begin)},
	}
	for i := 1; i <= n; i++ {
		f := 1 + (factor-1)*float32(i)/float32(n)
		evs = append(evs, Event{Action: Move, Pointers: at(begin * f)})
	}
	end := at(begin * factor)
	return append(evs,
		Event{Action: PointerUp, Pointers: end, ActionIndex: 1},
		Event{Action: Up, Pointers: end[:1]},
	)
}
