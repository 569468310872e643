package gesture

import "github.com/chewxy/math32"

// Defaults for ScaleDetector, in surface pixels.
const (
	DefaultMinSpan  = 48
	DefaultSpanSlop = 16
)

// ScaleDetector recognises two-or-more finger pinches. A pinch begins
// once the pointer span has moved more than SpanSlop away from where it
// started while staying above MinSpan; from then on every Move reports
// the span ratio to the previous Move.
type ScaleDetector struct {
	MinSpan  float32
	SpanSlop float32

	inProgress  bool
	initialSpan float32
	prevSpan    float32
}

// NewScaleDetector returns a detector with the default thresholds.
func NewScaleDetector() *ScaleDetector {
	return &ScaleDetector{MinSpan: DefaultMinSpan, SpanSlop: DefaultSpanSlop}
}

// InProgress reports whether a pinch is currently active.
func (d *ScaleDetector) InProgress() bool {
	return d.inProgress
}

// Reset forgets any pinch in progress.
func (d *ScaleDetector) Reset() {
	d.inProgress = false
	d.initialSpan = 0
	d.prevSpan = 0
}

// Feed consumes one event. It returns the scale factor since the
// previous event when a pinch is in progress.
func (d *ScaleDetector) Feed(ev Event) (float32, bool) {
	switch ev.Action {
	case Up, Cancel:
		d.Reset()
		return 0, false
	}

	points := ev.Pointers
	if ev.Action == PointerUp {
		points = without(points, ev.ActionIndex)
	}
	span := Span(points)

	if ev.Action != Move {
		// pointer set changed: take a new baseline so the jump in span
		// is not reported as scaling
		d.inProgress = d.inProgress && len(points) >= 2 && span >= d.MinSpan
		d.initialSpan = span
		d.prevSpan = span
		return 0, false
	}

	if len(points) < 2 || span < d.MinSpan {
		d.inProgress = false
		return 0, false
	}

	if !d.inProgress {
		if math32.Abs(span-d.initialSpan) > d.SpanSlop {
			d.inProgress = true
			d.prevSpan = span
		}
		return 0, false
	}

	if d.prevSpan <= 0 {
		d.prevSpan = span
		return 0, false
	}
	scale := span / d.prevSpan
	d.prevSpan = span
	return scale, true
}

// Span is twice the mean distance of the points from their centroid.
// Fewer than two points have no span.
func Span(points []Point) float32 {
	if len(points) < 2 {
		return 0
	}
	c := Centroid(points)
	var sum float32
	for _, p := range points {
		d := p.Sub(c)
		sum += math32.Hypot(d.X, d.Y)
	}
	return 2 * sum / float32(len(points))
}
