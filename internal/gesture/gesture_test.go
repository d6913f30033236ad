package gesture

import (
	"testing"

	"github.com/chrisdamba/foodstory/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const width = 300.0

func TestDisambiguator_TapZones(t *testing.T) {
	tests := []struct {
		name     string
		down, up Point
		want     Intent
	}{
		{"left tap with jitter", Point{50, 400}, Point{52, 400}, IntentPrev},
		{"right tap", Point{250, 400}, Point{250, 400}, IntentNext},
		{"center tap", Point{150, 400}, Point{150, 400}, IntentCenter},
		{"boundary 0.3 is center", Point{90, 10}, Point{90, 10}, IntentCenter},
		{"boundary 0.7 is center", Point{210, 10}, Point{210, 10}, IntentCenter},
		{"ten pixels is still a tap", Point{20, 10}, Point{26, 18}, IntentPrev},
		{"horizontal drag", Point{20, 10}, Point{60, 10}, IntentDrag},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Disambiguator
			d.Down(tt.down)
			assert.Equal(t, tt.want, d.Up(tt.up, width))
			assert.False(t, d.Tracking())
		})
	}
}

func TestDisambiguator_VerticalMoveIsNotATap(t *testing.T) {
	var d Disambiguator
	d.Down(Point{150, 400})
	require.True(t, d.Move(Point{150, 415}))
	assert.False(t, d.Tracking())

	assert.Equal(t, IntentVertical, d.Up(Point{150, 400}, width))
}

func TestDisambiguator_SmallVerticalMoveKeepsTap(t *testing.T) {
	var d Disambiguator
	d.Down(Point{250, 400})
	assert.False(t, d.Move(Point{250, 408}))
	assert.Equal(t, IntentNext, d.Up(Point{250, 405}, width))
}

func TestDisambiguator_HorizontalDominantMoveStaysTracked(t *testing.T) {
	var d Disambiguator
	d.Down(Point{100, 100})
	assert.False(t, d.Move(Point{130, 120}))
	assert.True(t, d.Tracking())
	assert.Equal(t, IntentDrag, d.Up(Point{130, 120}, width))
}

func TestDisambiguator_UpWithoutDown(t *testing.T) {
	var d Disambiguator
	assert.Equal(t, IntentNone, d.Up(Point{10, 10}, width))

	d.Down(Point{10, 10})
	d.Cancel()
	assert.Equal(t, IntentNone, d.Up(Point{10, 10}, width))
}

func TestTapZone_ZeroWidth(t *testing.T) {
	assert.Equal(t, IntentNone, TapZone(10, 0))
}

func TestSwipeTracker(t *testing.T) {
	tests := []struct {
		name     string
		from, to Point
		want     Swipe
	}{
		{"swipe up", Point{150, 600}, Point{155, 500}, SwipeUp},
		{"swipe down", Point{150, 300}, Point{140, 420}, SwipeDown},
		{"too short", Point{150, 300}, Point{150, 340}, SwipeNone},
		{"horizontal dominates", Point{50, 300}, Point{250, 220}, SwipeNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s SwipeTracker
			s.Down(tt.from)
			s.Move(tt.to)
			assert.Equal(t, tt.want, s.Up())
		})
	}
}

func TestSwipeTracker_TapIsNotASwipe(t *testing.T) {
	var s SwipeTracker
	s.Down(Point{150, 300})
	assert.Equal(t, SwipeNone, s.Up())
	s.Move(Point{150, 100})
	assert.Equal(t, SwipeNone, s.Up())
}

func TestHitHotspot(t *testing.T) {
	hotspots := []models.Hotspot{
		{ID: "h1", X: 0.5, Y: 0.5, IngredientID: "i1"},
		{ID: "h2", X: 0.6, Y: 0.5, IngredientID: "i2"},
	}
	// container 300x600: h1 at (150,300), h2 at (180,300)
	hit := HitHotspot(hotspots, Point{170, 300}, 300, 600, 24)
	require.NotNil(t, hit)
	assert.Equal(t, "h2", hit.ID)

	hit = HitHotspot(hotspots, Point{150, 310}, 300, 600, 24)
	require.NotNil(t, hit)
	assert.Equal(t, "h1", hit.ID)

	assert.Nil(t, HitHotspot(hotspots, Point{20, 20}, 300, 600, 24))
	assert.Nil(t, HitHotspot(nil, Point{150, 300}, 300, 600, 24))
}
