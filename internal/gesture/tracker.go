package gesture

// Tracker combines the classifier with a ScaleDetector and keeps the
// state between events. It is not safe for concurrent use.
type Tracker struct {
	state State
	scale *ScaleDetector
}

// NewTracker returns a Tracker in mode None.
func NewTracker() *Tracker {
	return &Tracker{scale: NewScaleDetector()}
}

// State returns the current classifier state.
func (t *Tracker) State() State {
	return t.state
}

// Pinching reports whether a pinch is in progress.
func (t *Tracker) Pinching() bool {
	return t.scale.InProgress()
}

// Handle feeds one event and returns the commands it produces, zoom
// first. Events with no pointers are ignored except Up and Cancel.
func (t *Tracker) Handle(ev Event) []Command {
	if len(ev.Pointers) == 0 && ev.Action != Up && ev.Action != Cancel {
		return nil
	}

	var out []Command
	if factor, ok := t.scale.Feed(ev); ok {
		if delta, ok := ZoomDelta(factor); ok && delta != 0 {
			out = append(out, Command{Kind: ZoomCommand, Delta: delta})
		}
	}

	var cmd Command
	t.state, cmd = Step(t.state, ev, t.scale.InProgress())
	if cmd.Kind != NoCommand {
		out = append(out, cmd)
	}
	return out
}

// Reset returns the tracker to mode None.
func (t *Tracker) Reset() {
	t.state = State{}
	t.scale.Reset()
}
