// Package notify keeps the timed toast messages shown by the feed.
package notify

import (
	"time"

	"github.com/google/uuid"

	"github.com/chrisdamba/foodstory/internal/clock"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"

	DefaultDuration = 3 * time.Second
)

type Notification struct {
	ID        string
	Message   string
	Kind      Kind
	Duration  time.Duration
	CreatedAt time.Time
	// HasUndo reports whether an undo action is attached.
	HasUndo bool
}

type entry struct {
	Notification
	onUndo func()
	expiry clock.Timer
}

// Queue holds active notifications. Each one expires on a one-shot timer of
// the scheduler unless dismissed first.
type Queue struct {
	sched   clock.Scheduler
	entries []*entry
}

func NewQueue(sched clock.Scheduler) *Queue {
	return &Queue{sched: sched}
}

// Show adds a notification and returns its id. A non-positive duration uses
// DefaultDuration. onUndo may be nil.
func (q *Queue) Show(message string, kind Kind, duration time.Duration, onUndo func()) string {
	if duration <= 0 {
		duration = DefaultDuration
	}
	e := &entry{
		Notification: Notification{
			ID:        uuid.NewString(),
			Message:   message,
			Kind:      kind,
			Duration:  duration,
			CreatedAt: q.sched.Now(),
			HasUndo:   onUndo != nil,
		},
		onUndo: onUndo,
	}
	id := e.ID
	e.expiry = q.sched.AfterFunc(duration, func() { q.remove(id) })
	q.entries = append(q.entries, e)
	return id
}

func (q *Queue) find(id string) (int, *entry) {
	for i, e := range q.entries {
		if e.ID == id {
			return i, e
		}
	}
	return -1, nil
}

func (q *Queue) remove(id string) bool {
	i, e := q.find(id)
	if e == nil {
		return false
	}
	q.entries = append(q.entries[:i:i], q.entries[i+1:]...)
	return true
}

// Dismiss removes the notification before it expires.
func (q *Queue) Dismiss(id string) bool {
	_, e := q.find(id)
	if e == nil {
		return false
	}
	e.expiry.Stop()
	return q.remove(id)
}

// Undo runs the notification's undo action. It does not dismiss the
// notification; callers do that as a separate step.
func (q *Queue) Undo(id string) bool {
	_, e := q.find(id)
	if e == nil || e.onUndo == nil {
		return false
	}
	e.onUndo()
	return true
}

// Active returns the visible notifications, oldest first.
func (q *Queue) Active() []Notification {
	out := make([]Notification, len(q.entries))
	for i, e := range q.entries {
		out[i] = e.Notification
	}
	return out
}

func (q *Queue) Len() int { return len(q.entries) }
