package media

import (
	"errors"
	"sort"
	"time"

	"github.com/chrisdamba/foodstory/internal/clock"
)

var ErrLoadFailed = errors.New("media: failed to load")

const DefaultUpdateInterval = 250 * time.Millisecond

// Clip is a simulated video of a fixed length. It loads after a delay,
// advances while playing and emits time updates at a fixed interval.
type Clip struct {
	sched    clock.Scheduler
	length   time.Duration
	interval time.Duration
	fail     bool

	loaded  bool
	failed  bool
	paused  bool
	current time.Duration

	load    clock.Timer
	ticker  clock.Timer
	resume  clock.Timer
	nextSub int
	subs    map[int]func(Event)
}

type ClipOption func(*Clip)

// WithLoadDelay delays the loaded event. The default is to load on the next
// dispatch.
func WithLoadDelay(d time.Duration) ClipOption {
	return func(c *Clip) {
		c.load.Stop()
		c.load = c.sched.AfterFunc(d, c.finishLoad)
	}
}

func WithUpdateInterval(d time.Duration) ClipOption {
	return func(c *Clip) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithLoadFailure makes the clip emit an error instead of loading.
func WithLoadFailure() ClipOption {
	return func(c *Clip) { c.fail = true }
}

func NewClip(sched clock.Scheduler, length time.Duration, opts ...ClipOption) *Clip {
	c := &Clip{
		sched:    sched,
		length:   length,
		interval: DefaultUpdateInterval,
		paused:   true,
		subs:     make(map[int]func(Event)),
	}
	c.load = sched.AfterFunc(0, c.finishLoad)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Clip) emit(t EventType, err error) {
	ev := Event{Type: t, CurrentTime: c.current, Duration: c.Duration(), Err: err}
	ids := make([]int, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		// a subscriber may have been removed by an earlier one
		if fn, ok := c.subs[id]; ok {
			fn(ev)
		}
	}
}

func (c *Clip) finishLoad() {
	if c.fail || c.length <= 0 {
		c.failed = true
		c.emit(EventError, ErrLoadFailed)
		return
	}
	c.loaded = true
	c.emit(EventLoaded, nil)
	if !c.paused {
		c.startTicker()
	}
}

func (c *Clip) startTicker() {
	if c.ticker != nil {
		return
	}
	c.ticker = c.sched.Every(c.interval, c.advance)
}

func (c *Clip) stopTicker() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}

func (c *Clip) advance() {
	c.current += c.interval
	if c.current >= c.length {
		c.current = c.length
		c.stopTicker()
		c.paused = true
		c.emit(EventTimeUpdate, nil)
		c.emit(EventEnded, nil)
		return
	}
	c.emit(EventTimeUpdate, nil)
}

// Play starts or resumes playback. Before the clip is loaded it only records
// the intent to play.
func (c *Clip) Play() {
	if c.failed || !c.paused {
		return
	}
	if c.current >= c.length && c.loaded {
		c.current = 0
	}
	c.paused = false
	if c.loaded && c.resume == nil {
		c.startTicker()
	}
}

func (c *Clip) Pause() {
	c.paused = true
	c.stopTicker()
	if c.resume != nil {
		c.resume.Stop()
		c.resume = nil
	}
}

// Stall simulates buffering: time stops advancing for d without any event.
func (c *Clip) Stall(d time.Duration) {
	if c.paused || !c.loaded {
		return
	}
	c.stopTicker()
	if c.resume != nil {
		c.resume.Stop()
	}
	c.resume = c.sched.AfterFunc(d, func() {
		c.resume = nil
		if !c.paused {
			c.startTicker()
		}
	})
}

func (c *Clip) Paused() bool               { return c.paused }
func (c *Clip) CurrentTime() time.Duration { return c.current }

func (c *Clip) Duration() time.Duration {
	if !c.loaded {
		return 0
	}
	return c.length
}

func (c *Clip) Subscribe(fn func(Event)) func() {
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() { delete(c.subs, id) }
}

// Subscribers returns the number of attached listeners.
func (c *Clip) Subscribers() int { return len(c.subs) }

// Close releases every timer and listener of the clip.
func (c *Clip) Close() {
	c.load.Stop()
	c.Pause()
	c.subs = make(map[int]func(Event))
}
