// Package feed is the vertical list of restaurant stories. It owns the
// current restaurant and hands everything else to a story coordinator.
package feed

import (
	"github.com/chrisdamba/foodstory/internal/activity"
	"github.com/chrisdamba/foodstory/internal/gesture"
	"github.com/chrisdamba/foodstory/internal/models"
	"github.com/chrisdamba/foodstory/internal/story"
)

type Controller struct {
	catalog *models.Catalog
	deps    story.Deps
	opts    story.Options

	index    int
	current  *story.Coordinator
	swipe    gesture.SwipeTracker
	captured bool
	closed   bool
}

func New(catalog *models.Catalog, deps story.Deps, opts story.Options) *Controller {
	if catalog == nil {
		catalog = &models.Catalog{}
	}
	f := &Controller{catalog: catalog, deps: deps, opts: opts}
	f.mount()
	return f
}

func (f *Controller) mount() {
	if f.current != nil {
		f.current.Dispose()
	}
	f.swipe.Cancel()
	f.captured = false
	r := f.catalog.Restaurant(f.index)
	f.current = story.New(r, f.deps, f.opts)
	if r != nil {
		f.deps.Activity.Record(activity.Event{Type: models.ActivityRestaurantViewed, RestaurantID: r.ID})
	}
}

func (f *Controller) Index() int { return f.index }
func (f *Controller) Len() int   { return len(f.catalog.Restaurants) }

func (f *Controller) Restaurant() *models.Restaurant {
	return f.catalog.Restaurant(f.index)
}

// Story is the coordinator of the current restaurant.
func (f *Controller) Story() *story.Coordinator { return f.current }

func (f *Controller) NextRestaurant() bool {
	if f.closed || f.index >= f.Len()-1 {
		return false
	}
	f.index++
	f.mount()
	return true
}

func (f *Controller) PrevRestaurant() bool {
	if f.closed || f.index == 0 {
		return false
	}
	f.index--
	f.mount()
	return true
}

// PointerDown goes to the story first. Sequences captured by a hotspot never
// reach the swipe tracker.
func (f *Controller) PointerDown(p gesture.Point) {
	if f.closed {
		return
	}
	f.captured = f.current.PointerDown(p)
	if !f.captured {
		f.swipe.Down(p)
	}
}

func (f *Controller) PointerMove(p gesture.Point) {
	if f.closed {
		return
	}
	f.current.PointerMove(p)
	if !f.captured {
		f.swipe.Move(p)
	}
}

// PointerUp returns the story's classification of the sequence and the
// restaurant swipe it produced, if any.
func (f *Controller) PointerUp(p gesture.Point) (gesture.Intent, gesture.Swipe) {
	if f.closed {
		return gesture.IntentNone, gesture.SwipeNone
	}
	intent, consumed := f.current.PointerUp(p)
	if consumed || f.captured {
		f.captured = false
		f.swipe.Cancel()
		return intent, gesture.SwipeNone
	}
	f.swipe.Move(p)
	s := f.swipe.Up()
	switch s {
	case gesture.SwipeUp:
		f.NextRestaurant()
	case gesture.SwipeDown:
		f.PrevRestaurant()
	}
	return intent, s
}

func (f *Controller) PointerCancel() {
	if f.closed {
		return
	}
	f.current.PointerCancel()
	f.swipe.Cancel()
	f.captured = false
}

// Close disposes the current story. The controller ignores input afterwards.
func (f *Controller) Close() {
	if f.closed {
		return
	}
	f.closed = true
	f.current.Dispose()
}
