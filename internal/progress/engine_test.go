package progress

import (
	"testing"
	"time"

	"github.com/chrisdamba/foodstory/internal/clock"
	"github.com/chrisdamba/foodstory/internal/media"
	"github.com/chrisdamba/foodstory/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	values    []float64
	completed int
}

func newEngine(t *testing.T) (*Engine, *clock.Virtual, *recorder) {
	t.Helper()
	v := clock.NewVirtual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	r := &recorder{}
	e := New(v,
		OnProgress(func(p float64) { r.values = append(r.values, p) }),
		OnComplete(func() { r.completed++ }),
	)
	return e, v, r
}

func image(ms int) *models.MediaItem {
	return &models.MediaItem{ID: "m", Type: models.MediaTypeImage, DurationMs: ms}
}

func video() *models.MediaItem {
	return &models.MediaItem{ID: "v", Type: models.MediaTypeVideo}
}

func TestEngine_ImageProgressIsMonotonicAndCompletesOnce(t *testing.T) {
	e, v, r := newEngine(t)
	e.Start(image(5000), nil)
	require.Equal(t, Running, e.State())

	v.Advance(4950 * time.Millisecond)
	assert.Equal(t, 99.0, e.Percent())
	assert.Zero(t, r.completed)

	v.Advance(50 * time.Millisecond)
	assert.Equal(t, 100.0, e.Percent())
	assert.Equal(t, Completed, e.State())
	assert.Equal(t, 1, r.completed)

	require.Len(t, r.values, 100)
	for i := 1; i < len(r.values); i++ {
		assert.Greater(t, r.values[i], r.values[i-1])
		assert.LessOrEqual(t, r.values[i], 100.0)
	}

	v.Advance(time.Second)
	assert.Equal(t, 1, r.completed)
	assert.Len(t, r.values, 100)
	assert.Zero(t, v.Pending())
}

func TestEngine_DefaultImageDuration(t *testing.T) {
	e, v, _ := newEngine(t)
	e.Start(image(0), nil)
	v.Advance(2500 * time.Millisecond)
	assert.Equal(t, 50.0, e.Percent())
}

func TestEngine_UnevenDurationReachesExactly100(t *testing.T) {
	e, v, r := newEngine(t)
	e.Start(image(3333), nil)
	v.Advance(3350 * time.Millisecond)
	assert.Equal(t, 100.0, e.Percent())
	assert.Equal(t, 1, r.completed)
}

func TestEngine_PauseResumeFidelity(t *testing.T) {
	e, v, _ := newEngine(t)
	e.Start(image(5000), nil)
	v.Advance(2 * time.Second)
	require.Equal(t, 40.0, e.Percent())

	e.Pause(e.Percent())
	assert.Equal(t, Paused, e.State())
	assert.False(t, e.Active())
	assert.Zero(t, v.Pending())
	cp, ok := e.Checkpoint()
	assert.True(t, ok)
	assert.Equal(t, 40.0, cp)

	v.Advance(3 * time.Second)
	assert.Equal(t, 40.0, e.Percent())

	e.Resume()
	assert.Equal(t, Running, e.State())
	assert.Equal(t, 40.0, e.Percent())
	_, ok = e.Checkpoint()
	assert.False(t, ok)

	v.Advance(50 * time.Millisecond)
	assert.Equal(t, 41.0, e.Percent())
}

func TestEngine_PauseWhilePausedOverwritesCheckpoint(t *testing.T) {
	e, v, _ := newEngine(t)
	e.Start(image(5000), nil)
	v.Advance(time.Second)
	e.Pause(20)
	e.Pause(25)

	cp, _ := e.Checkpoint()
	assert.Equal(t, 25.0, cp)
	e.Resume()
	assert.Equal(t, 25.0, e.Percent())
}

func TestEngine_PauseIgnoredWhenCompletedOrUnstarted(t *testing.T) {
	e, v, _ := newEngine(t)
	e.Pause(10)
	assert.Equal(t, Idle, e.State())

	e.Start(image(100), nil)
	v.Advance(100 * time.Millisecond)
	require.Equal(t, Completed, e.State())
	e.Pause(50)
	assert.Equal(t, Completed, e.State())
	assert.Equal(t, 100.0, e.Percent())

	e.Resume()
	assert.Equal(t, Completed, e.State())
}

func TestEngine_ResetReleasesTicker(t *testing.T) {
	e, v, r := newEngine(t)
	e.Start(image(5000), nil)
	v.Advance(time.Second)
	e.Reset()

	assert.Equal(t, Idle, e.State())
	assert.Zero(t, e.Percent())
	assert.Zero(t, v.Pending())

	n := len(r.values)
	v.Advance(200 * time.Millisecond)
	assert.Len(t, r.values, n)
}

func TestEngine_RestartResetsCompletionReport(t *testing.T) {
	e, v, r := newEngine(t)
	e.Start(image(100), nil)
	v.Advance(100 * time.Millisecond)
	e.Start(image(100), nil)
	v.Advance(100 * time.Millisecond)
	assert.Equal(t, 2, r.completed)
}

func TestEngine_VideoWaitsForFirstSample(t *testing.T) {
	e, v, r := newEngine(t)
	clip := media.NewClip(v, 2*time.Second, media.WithLoadDelay(100*time.Millisecond))
	e.Start(video(), clip)
	assert.Equal(t, Idle, e.State())
	assert.Equal(t, 1, v.Pending(), "only the clip load is scheduled")

	clip.Play()
	v.Advance(100 * time.Millisecond)
	assert.Equal(t, Running, e.State())

	v.Advance(time.Second)
	assert.Equal(t, 50.0, e.Percent())

	v.Advance(time.Second)
	assert.Equal(t, 100.0, e.Percent())
	assert.Equal(t, Completed, e.State())
	assert.Equal(t, 1, r.completed)
	assert.Zero(t, clip.Subscribers())
}

func TestEngine_VideoAlreadyLoadedStartsRunning(t *testing.T) {
	e, v, _ := newEngine(t)
	clip := media.NewClip(v, time.Second)
	v.RunPending()

	e.Start(video(), clip)
	assert.Equal(t, Running, e.State())
	assert.Equal(t, 1, clip.Subscribers())
}

func TestEngine_VideoPauseDetachesListener(t *testing.T) {
	e, v, _ := newEngine(t)
	clip := media.NewClip(v, 4*time.Second)
	e.Start(video(), clip)
	clip.Play()
	v.Advance(time.Second)
	require.Equal(t, 25.0, e.Percent())

	e.Pause(e.Percent())
	clip.Pause()
	assert.Zero(t, clip.Subscribers())

	v.Advance(time.Second)
	assert.Equal(t, 25.0, e.Percent())

	e.Resume()
	clip.Play()
	assert.Equal(t, 1, clip.Subscribers())
	v.Advance(time.Second)
	assert.Equal(t, 50.0, e.Percent())
}

func TestEngine_VideoStallHoldsPercentage(t *testing.T) {
	e, v, _ := newEngine(t)
	clip := media.NewClip(v, 4*time.Second)
	e.Start(video(), clip)
	clip.Play()
	v.Advance(time.Second)
	clip.Stall(2 * time.Second)
	v.Advance(2 * time.Second)
	assert.Equal(t, 25.0, e.Percent())
}

func TestEngine_VideoErrorFallsBackToImageTiming(t *testing.T) {
	e, v, r := newEngine(t)
	clip := media.NewClip(v, time.Second, media.WithLoadFailure())
	e.Start(video(), clip)
	clip.Play()

	v.RunPending()
	assert.Equal(t, Running, e.State())
	assert.Zero(t, clip.Subscribers())

	v.Advance(models.DefaultImageDurationMs * time.Millisecond)
	assert.Equal(t, 100.0, e.Percent())
	assert.Equal(t, 1, r.completed)
}

func TestEngine_VideoWithoutSurfaceUsesImageTiming(t *testing.T) {
	e, v, _ := newEngine(t)
	e.Start(video(), nil)
	v.Advance(time.Second)
	assert.Equal(t, 20.0, e.Percent())
}
