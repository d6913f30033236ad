package gesture

import "math"

// MinSwipeDistance is the vertical travel in pixels needed to change
// restaurant.
const MinSwipeDistance = 50.0

type Swipe int

const (
	SwipeNone Swipe = iota
	// SwipeUp moves to the next restaurant.
	SwipeUp
	// SwipeDown moves to the previous restaurant.
	SwipeDown
)

// SwipeTracker classifies feed-level vertical swipes.
type SwipeTracker struct {
	start, end *Point
}

func (s *SwipeTracker) Down(p Point) {
	s.start = &p
	s.end = nil
}

func (s *SwipeTracker) Move(p Point) {
	if s.start != nil {
		s.end = &p
	}
}

// Up finishes the sequence. A sequence without movement is never a swipe.
func (s *SwipeTracker) Up() Swipe {
	start, end := s.start, s.end
	s.start, s.end = nil, nil
	if start == nil || end == nil {
		return SwipeNone
	}
	vertical := math.Abs(start.Y - end.Y)
	horizontal := math.Abs(start.X - end.X)
	if vertical <= horizontal {
		return SwipeNone
	}
	switch distance := start.Y - end.Y; {
	case distance > MinSwipeDistance:
		return SwipeUp
	case distance < -MinSwipeDistance:
		return SwipeDown
	}
	return SwipeNone
}

func (s *SwipeTracker) Cancel() {
	s.start, s.end = nil, nil
}
