// Package gesture classifies pointer sequences on the story media into tap
// navigation, vertical swipes and drags. Mouse and touch input are both
// reported as Points relative to the container's top-left corner.
package gesture

import "math"

type Point struct {
	X, Y float64
}

func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

type Intent int

const (
	IntentNone Intent = iota
	IntentPrev
	IntentNext
	// IntentCenter is a tap in the middle band. It never navigates.
	IntentCenter
	// IntentVertical is a sequence left to the feed's swipe handling.
	IntentVertical
	IntentDrag
)

func (i Intent) String() string {
	switch i {
	case IntentPrev:
		return "prev"
	case IntentNext:
		return "next"
	case IntentCenter:
		return "center"
	case IntentVertical:
		return "vertical"
	case IntentDrag:
		return "drag"
	}
	return "none"
}

const (
	// TapThreshold is the movement in pixels separating a tap from a drag and
	// the vertical movement that hands a sequence to the feed.
	TapThreshold = 10.0
	PrevZone     = 0.3
	NextZone     = 0.7
)

// Disambiguator tracks one pointer sequence at a time.
type Disambiguator struct {
	start    *Point
	vertical bool
}

// Down records the start of a sequence. Nothing is classified yet.
func (d *Disambiguator) Down(p Point) {
	d.start = &p
	d.vertical = false
}

// Move drops the sequence once vertical movement dominates and exceeds the
// threshold. It reports whether the sequence is now vertical.
func (d *Disambiguator) Move(p Point) bool {
	if d.start == nil {
		return d.vertical
	}
	dx := math.Abs(p.X - d.start.X)
	dy := math.Abs(p.Y - d.start.Y)
	if dy > dx && dy > TapThreshold {
		d.start = nil
		d.vertical = true
	}
	return d.vertical
}

// Up ends the sequence and classifies it against a container of the given
// width.
func (d *Disambiguator) Up(p Point, width float64) Intent {
	start, vertical := d.start, d.vertical
	d.start, d.vertical = nil, false
	if start == nil {
		if vertical {
			return IntentVertical
		}
		return IntentNone
	}
	if start.Distance(p) > TapThreshold {
		return IntentDrag
	}
	return TapZone(p.X, width)
}

// Cancel forgets the current sequence.
func (d *Disambiguator) Cancel() {
	d.start, d.vertical = nil, false
}

// Tracking reports whether a sequence is in progress and still a tap candidate.
func (d *Disambiguator) Tracking() bool { return d.start != nil }

// TapZone maps a horizontal position to a navigation intent.
func TapZone(x, width float64) Intent {
	if width <= 0 {
		return IntentNone
	}
	switch f := x / width; {
	case f < PrevZone:
		return IntentPrev
	case f > NextZone:
		return IntentNext
	}
	return IntentCenter
}
