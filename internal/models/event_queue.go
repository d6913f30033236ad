package models

import (
	"container/heap"
	"sync"
	"time"
)

const (
	EventTimer  = "Timer"
	EventTicker = "Ticker"
	EventPosted = "Posted"
)

// Event is a callback scheduled at a point in time. Seq breaks ties so that
// events due at the same instant run in the order they were enqueued.
type Event struct {
	Time time.Time
	Seq  uint64
	Type string
	Data interface{}

	index int
}

// EventQueue is a priority queue of events
type EventQueue struct {
	events []*Event
	seq    uint64
	mutex  sync.Mutex
}

// eventHeap implements heap.Interface and holds Events
type eventHeap []*Event

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].Time.Equal(h[j].Time) {
		return h[i].Seq < h[j].Seq
	}
	return h[i].Time.Before(h[j].Time)
}
func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *eventHeap) Push(x interface{}) {
	e := x.(*Event)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	x.index = -1
	*h = old[0 : n-1]
	return x
}

// NewEventQueue creates a new EventQueue
func NewEventQueue() *EventQueue {
	return &EventQueue{events: make([]*Event, 0)}
}

// Enqueue adds an event to the queue and stamps its sequence number
func (eq *EventQueue) Enqueue(event *Event) {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	eq.seq++
	event.Seq = eq.seq
	heap.Push((*eventHeap)(&eq.events), event)
}

// Dequeue removes and returns the earliest event from the queue
func (eq *EventQueue) Dequeue() *Event {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	if len(eq.events) == 0 {
		return nil
	}
	return heap.Pop((*eventHeap)(&eq.events)).(*Event)
}

// DequeueDue removes and returns the earliest event if it is due at or before t.
func (eq *EventQueue) DequeueDue(t time.Time) *Event {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	if len(eq.events) == 0 || eq.events[0].Time.After(t) {
		return nil
	}
	return heap.Pop((*eventHeap)(&eq.events)).(*Event)
}

// Remove takes a pending event out of the queue. It reports false when the
// event already fired or was removed.
func (eq *EventQueue) Remove(event *Event) bool {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	i := event.index
	if i < 0 || i >= len(eq.events) || eq.events[i] != event {
		return false
	}
	heap.Remove((*eventHeap)(&eq.events), i)
	return true
}

// Peek returns the earliest event without removing it
func (eq *EventQueue) Peek() *Event {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	if len(eq.events) == 0 {
		return nil
	}
	return eq.events[0]
}

// IsEmpty returns true if the queue is empty
func (eq *EventQueue) IsEmpty() bool {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	return len(eq.events) == 0
}

// Len returns the number of events in the queue
func (eq *EventQueue) Len() int {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	return len(eq.events)
}
