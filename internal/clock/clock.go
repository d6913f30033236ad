// Package clock schedules every timer and posted callback of the feed on a
// single dispatch goroutine. Callbacks never run concurrently with each other.
package clock

import (
	"context"
	"sync"
	"time"

	"github.com/chrisdamba/foodstory/internal/models"
)

// Timer is a pending one-shot or repeating callback.
type Timer interface {
	// Stop cancels the timer. It reports whether the timer was still active.
	Stop() bool
}

type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
	Every(d time.Duration, fn func()) Timer
	// Post runs fn on the dispatch goroutine at the current time.
	Post(fn func())
}

// Virtual is a Scheduler whose time only moves when Advance is called.
// Events are kept in the time-ordered queue and fired in order.
type Virtual struct {
	mu    sync.Mutex
	now   time.Time
	queue *models.EventQueue
}

type timer struct {
	v      *Virtual
	period time.Duration
	fn     func()

	mu      sync.Mutex
	event   *models.Event
	stopped bool
}

func NewVirtual(start time.Time) *Virtual {
	return &Virtual{now: start, queue: models.NewEventQueue()}
}

func (v *Virtual) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

func (v *Virtual) AfterFunc(d time.Duration, fn func()) Timer {
	t := &timer{v: v, fn: fn}
	t.schedule(v.Now().Add(d), models.EventTimer)
	return t
}

// Every fires fn every d until stopped. A non-positive period is treated as one nanosecond.
func (v *Virtual) Every(d time.Duration, fn func()) Timer {
	if d <= 0 {
		d = time.Nanosecond
	}
	t := &timer{v: v, fn: fn, period: d}
	t.schedule(v.Now().Add(d), models.EventTicker)
	return t
}

func (v *Virtual) Post(fn func()) {
	v.queue.Enqueue(&models.Event{Time: v.Now(), Type: models.EventPosted, Data: fn})
}

// Pending returns the number of scheduled events.
func (v *Virtual) Pending() int {
	return v.queue.Len()
}

// RunPending fires every event that is already due.
func (v *Virtual) RunPending() int {
	return v.Advance(0)
}

// Advance moves time forward by d, firing due events in time order. The clock
// reads each event's time while its callback runs. It returns the number of
// callbacks fired.
func (v *Virtual) Advance(d time.Duration) int {
	target := v.Now().Add(d)
	fired := 0
	for {
		event := v.queue.DequeueDue(target)
		if event == nil {
			break
		}
		v.mu.Lock()
		if event.Time.After(v.now) {
			v.now = event.Time
		}
		v.mu.Unlock()

		v.fire(event)
		fired++
	}
	v.mu.Lock()
	if target.After(v.now) {
		v.now = target
	}
	v.mu.Unlock()
	return fired
}

func (v *Virtual) fire(event *models.Event) {
	switch data := event.Data.(type) {
	case func():
		data()
	case *timer:
		data.fire()
	}
}

func (t *timer) schedule(at time.Time, eventType string) {
	event := &models.Event{Time: at, Type: eventType, Data: t}
	t.mu.Lock()
	t.event = event
	t.mu.Unlock()
	t.v.queue.Enqueue(event)
}

func (t *timer) fire() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	if t.period == 0 {
		t.stopped = true
	}
	t.mu.Unlock()

	if t.period > 0 {
		// reschedule before running so that fn can stop the ticker
		t.schedule(t.v.Now().Add(t.period), models.EventTicker)
	}
	t.fn()
}

func (t *timer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	if t.event != nil {
		t.v.queue.Remove(t.event)
	}
	return true
}

// Run drives a Virtual clock from wall time until ctx is done, advancing it by
// the real elapsed time on every tick of the given resolution.
func Run(ctx context.Context, v *Virtual, resolution time.Duration) error {
	ticker := time.NewTicker(resolution)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			v.Advance(now.Sub(last))
			last = now
		}
	}
}
