package feed

import (
	"testing"
	"time"

	"github.com/chrisdamba/foodstory/internal/activity"
	"github.com/chrisdamba/foodstory/internal/catalog"
	"github.com/chrisdamba/foodstory/internal/clock"
	"github.com/chrisdamba/foodstory/internal/gesture"
	"github.com/chrisdamba/foodstory/internal/models"
	"github.com/chrisdamba/foodstory/internal/story"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController(t *testing.T, c *models.Catalog) (*Controller, *clock.Virtual, *activity.Recorder) {
	t.Helper()
	v := clock.NewVirtual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	rec := activity.NewRecorder(nil, v.Now)
	f := New(c, story.Deps{Scheduler: v, Activity: rec}, story.Options{
		Tick:   50 * time.Millisecond,
		Width:  300,
		Height: 600,
	})
	return f, v, rec
}

func swipe(f *Controller, from, to gesture.Point) (gesture.Intent, gesture.Swipe) {
	f.PointerDown(from)
	f.PointerMove(to)
	return f.PointerUp(to)
}

func TestController_SwipeChangesRestaurant(t *testing.T) {
	f, _, rec := newController(t, catalog.Sample())
	require.Equal(t, "r1", f.Restaurant().ID)

	intent, s := swipe(f, gesture.Point{X: 150, Y: 500}, gesture.Point{X: 150, Y: 400})
	assert.Equal(t, gesture.IntentVertical, intent)
	assert.Equal(t, gesture.SwipeUp, s)
	assert.Equal(t, 1, f.Index())
	assert.Equal(t, "r2", f.Story().Restaurant().ID)
	assert.Equal(t, 0, f.Story().Index())

	// already at the last restaurant
	swipe(f, gesture.Point{X: 150, Y: 500}, gesture.Point{X: 150, Y: 400})
	assert.Equal(t, 1, f.Index())

	swipe(f, gesture.Point{X: 150, Y: 300}, gesture.Point{X: 150, Y: 420})
	assert.Equal(t, 0, f.Index())
	assert.Equal(t, 3, rec.Counts()[models.ActivityRestaurantViewed])
}

func TestController_RestaurantChangeDisposesOldStory(t *testing.T) {
	f, v, _ := newController(t, catalog.Sample())
	v.Advance(2 * time.Second)
	old := f.Story()
	require.Equal(t, 40.0, old.Progress())

	require.True(t, f.NextRestaurant())
	assert.Nil(t, old.Dish())
	assert.Zero(t, f.Story().Progress())

	v.Advance(200 * time.Millisecond)
	assert.Equal(t, 4.0, f.Story().Progress())
	assert.Zero(t, old.Progress())
	assert.Equal(t, 1, v.Pending())
}

func TestController_TapsReachStory(t *testing.T) {
	f, _, _ := newController(t, catalog.Sample())
	f.PointerDown(gesture.Point{X: 260, Y: 100})
	intent, s := f.PointerUp(gesture.Point{X: 260, Y: 100})
	assert.Equal(t, gesture.IntentNext, intent)
	assert.Equal(t, gesture.SwipeNone, s)
	assert.Equal(t, 1, f.Story().Index())
	assert.Equal(t, 0, f.Index())
}

func TestController_HotspotSequenceIsNotASwipe(t *testing.T) {
	f, _, _ := newController(t, catalog.Sample())
	// h1 of the first dish is at (255, 300)
	intent, s := swipe(f, gesture.Point{X: 255, Y: 300}, gesture.Point{X: 255, Y: 150})
	assert.Equal(t, gesture.IntentNone, intent)
	assert.Equal(t, gesture.SwipeNone, s)
	assert.Equal(t, 0, f.Index())
	assert.Equal(t, story.ModalNone, f.Story().Modal().Kind)
}

func TestController_HorizontalDragIsIgnored(t *testing.T) {
	f, _, _ := newController(t, catalog.Sample())
	intent, s := swipe(f, gesture.Point{X: 40, Y: 300}, gesture.Point{X: 200, Y: 240})
	assert.Equal(t, gesture.IntentDrag, intent)
	assert.Equal(t, gesture.SwipeNone, s)
	assert.Equal(t, 0, f.Index())
	assert.Equal(t, 0, f.Story().Index())
}

func TestController_EmptyCatalog(t *testing.T) {
	f, v, _ := newController(t, nil)
	assert.Zero(t, f.Len())
	assert.Nil(t, f.Restaurant())
	assert.True(t, f.Story().Empty())
	assert.False(t, f.NextRestaurant())
	assert.False(t, f.PrevRestaurant())
	swipe(f, gesture.Point{X: 150, Y: 500}, gesture.Point{X: 150, Y: 400})
	assert.Zero(t, v.Pending())
}

func TestController_Close(t *testing.T) {
	f, v, _ := newController(t, catalog.Sample())
	f.Close()
	assert.Zero(t, v.Pending())
	assert.False(t, f.NextRestaurant())

	f.PointerDown(gesture.Point{X: 260, Y: 100})
	intent, s := f.PointerUp(gesture.Point{X: 260, Y: 100})
	assert.Equal(t, gesture.IntentNone, intent)
	assert.Equal(t, gesture.SwipeNone, s)
}
