// Package progress drives the 0-100 playback percentage of the media item on
// screen. Images advance on a scheduler ticker; videos derive the percentage
// from their playback surface.
package progress

import (
	"log"
	"time"

	"github.com/chrisdamba/foodstory/internal/clock"
	"github.com/chrisdamba/foodstory/internal/media"
	"github.com/chrisdamba/foodstory/internal/models"
)

const DefaultTick = 50 * time.Millisecond

type State int

const (
	Idle State = iota
	Running
	Paused
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	}
	return "unknown"
}

type mode int

const (
	modeNone mode = iota
	modeImage
	modeVideo
)

type Engine struct {
	sched      clock.Scheduler
	tick       time.Duration
	onProgress func(float64)
	onComplete func()

	state      State
	percent    float64
	checkpoint float64
	hasCheck   bool
	reported   bool

	mode        mode
	duration    time.Duration
	surface     media.Surface
	ticker      clock.Timer
	unsubscribe func()
}

type Option func(*Engine)

func WithTick(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.tick = d
		}
	}
}

// OnProgress is called with the new percentage on every change.
func OnProgress(fn func(percent float64)) Option {
	return func(e *Engine) { e.onProgress = fn }
}

// OnComplete is called once per media item when the percentage reaches 100.
func OnComplete(fn func()) Option {
	return func(e *Engine) { e.onComplete = fn }
}

func New(sched clock.Scheduler, opts ...Option) *Engine {
	e := &Engine{sched: sched, tick: DefaultTick}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) State() State        { return e.state }
func (e *Engine) Percent() float64    { return e.percent }
func (e *Engine) Tick() time.Duration { return e.tick }

// Checkpoint returns the percentage saved by the last Pause, if any.
func (e *Engine) Checkpoint() (float64, bool) {
	return e.checkpoint, e.hasCheck
}

// Active reports whether a ticker or a surface listener is attached.
func (e *Engine) Active() bool {
	return e.ticker != nil || e.unsubscribe != nil
}

// Start begins timing for item. Images start running immediately. Videos
// attach to surface and start running on the first measurable sample, or
// right away when the surface already knows its duration. A video without a
// surface is timed like an image.
func (e *Engine) Start(item *models.MediaItem, surface media.Surface) {
	e.Reset()
	if item == nil {
		return
	}
	if item.IsVideo() && surface != nil {
		e.mode = modeVideo
		e.surface = surface
		e.attach()
		if surface.Duration() > 0 {
			e.state = Running
		}
		return
	}
	e.mode = modeImage
	e.duration = item.Duration()
	e.state = Running
	e.attach()
}

// Pause checkpoints current and synchronously detaches the ticker or
// listener. Pausing while paused overwrites the checkpoint. A completed or
// unstarted engine ignores it.
func (e *Engine) Pause(current float64) {
	switch e.state {
	case Completed:
		return
	case Idle:
		if e.mode == modeNone {
			return
		}
	}
	e.detach()
	e.checkpoint = clamp(current)
	e.hasCheck = true
	e.state = Paused
}

// Resume continues from the checkpoint, or from 0 when there is none.
func (e *Engine) Resume() {
	if e.state != Paused {
		return
	}
	from := 0.0
	if e.hasCheck {
		from = e.checkpoint
	}
	e.checkpoint, e.hasCheck = 0, false
	e.state = Running
	e.set(from)
	if e.state == Running {
		e.attach()
	}
}

// Reset returns to Idle at 0 and releases every timer and listener.
func (e *Engine) Reset() {
	e.detach()
	e.state = Idle
	e.percent = 0
	e.checkpoint, e.hasCheck = 0, false
	e.reported = false
	e.mode = modeNone
	e.surface = nil
	e.duration = 0
}

func (e *Engine) attach() {
	e.detach()
	switch e.mode {
	case modeImage:
		e.ticker = e.sched.Every(e.tick, e.onTick)
	case modeVideo:
		e.unsubscribe = e.surface.Subscribe(e.onMediaEvent)
	}
}

func (e *Engine) detach() {
	if e.ticker != nil {
		e.ticker.Stop()
		e.ticker = nil
	}
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
}

func (e *Engine) onTick() {
	if e.state != Running {
		return
	}
	e.set(e.percent + 100*float64(e.tick)/float64(e.duration))
}

func (e *Engine) onMediaEvent(ev media.Event) {
	switch ev.Type {
	case media.EventLoaded, media.EventTimeUpdate:
		if ev.Duration <= 0 {
			return
		}
		if e.state == Idle {
			e.state = Running
		}
		if e.state == Running {
			e.set(100 * float64(ev.CurrentTime) / float64(ev.Duration))
		}
	case media.EventEnded:
		if e.state == Idle || e.state == Running {
			e.state = Running
			e.set(100)
		}
	case media.EventError:
		log.Printf("Error playing video, falling back to image timing: %v", ev.Err)
		e.fallback()
	}
}

// fallback swaps the surface listener for an image ticker of the default
// duration, continuing from the current percentage.
func (e *Engine) fallback() {
	e.detach()
	e.mode = modeImage
	e.surface = nil
	e.duration = models.DefaultImageDurationMs * time.Millisecond
	if e.state == Idle {
		e.state = Running
	}
	if e.state == Running {
		e.attach()
	}
}

func clamp(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p >= 100-1e-9:
		return 100
	}
	return p
}

func (e *Engine) set(p float64) {
	p = clamp(p)
	if p != e.percent {
		e.percent = p
		if e.onProgress != nil {
			e.onProgress(p)
		}
	}
	if p < 100 || e.state != Running {
		return
	}
	e.detach()
	e.state = Completed
	if e.reported {
		return
	}
	e.reported = true
	if e.onComplete != nil {
		e.onComplete()
	}
}
