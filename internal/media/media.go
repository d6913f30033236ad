// Package media describes the playback surface the feed drives and provides a
// simulated video clip that runs on the feed's scheduler.
package media

import "time"

type EventType string

const (
	EventLoaded     EventType = "loaded"
	EventTimeUpdate EventType = "timeupdate"
	EventEnded      EventType = "ended"
	EventError      EventType = "error"
)

type Event struct {
	Type        EventType
	CurrentTime time.Duration
	Duration    time.Duration
	Err         error
}

// Surface is a playable media element. Events are delivered on the
// scheduler's dispatch goroutine.
type Surface interface {
	Play()
	Pause()
	Paused() bool
	CurrentTime() time.Duration
	// Duration is zero until the media is loaded.
	Duration() time.Duration
	// Subscribe registers fn for every event and returns a function that
	// removes it.
	Subscribe(fn func(Event)) (unsubscribe func())
}

// Factory creates the surface for a video media item. It returns nil for
// media that has no playback surface.
type Factory func(url string) Surface
