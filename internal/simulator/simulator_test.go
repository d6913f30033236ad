package simulator

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/chrisdamba/foodstory/internal/activity"
	"github.com/chrisdamba/foodstory/internal/catalog"
	"github.com/chrisdamba/foodstory/internal/models"
	"github.com/chrisdamba/foodstory/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *models.Config {
	return &models.Config{
		Seed:                1,
		CatalogSource:       "sample",
		InitialRestaurants:  3,
		DishesPerRestaurant: 3,
		VideoRatio:          0.3,
		TickInterval:        50 * time.Millisecond,
		ToastDuration:       3 * time.Second,
		ViewportWidth:       390,
		ViewportHeight:      844,
		HotspotRadius:       24,
		SimulationDuration:  2 * time.Minute,
		ActionInterval:      time.Second,
		OfflineProbability:  0.2,
		StorageBackend:      models.StorageBackendMemory,
	}
}

func newTestSimulator(t *testing.T, cfg *models.Config) *Simulator {
	t.Helper()
	c, err := LoadCatalog(context.Background(), cfg)
	require.NoError(t, err)
	store := storage.New(storage.NewMemoryBackend(), time.Second)
	return NewSimulator(cfg, c, store, activity.NewConsoleOutput(io.Discard))
}

func TestRun_VirtualClock(t *testing.T) {
	sim := newTestSimulator(t, testConfig())

	summary, err := sim.Run(context.Background())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, summary.Elapsed, 2*time.Minute)
	assert.NotEmpty(t, summary.SessionID)
	assert.NotEmpty(t, summary.Actions)
	assert.Positive(t, summary.Activity[models.ActivityRestaurantViewed])
	assert.Positive(t, summary.Activity[models.ActivityDishViewed])
	assert.Equal(t, sim.Cart.Count(), summary.CartItems)
}

func TestRun_SameSeedSameActions(t *testing.T) {
	a, err := newTestSimulator(t, testConfig()).Run(context.Background())
	require.NoError(t, err)
	b, err := newTestSimulator(t, testConfig()).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a.Actions, b.Actions)
	assert.Equal(t, a.Activity, b.Activity)
	assert.Equal(t, a.CartTotal, b.CartTotal)
}

func TestRun_CancelledContext(t *testing.T) {
	sim := newTestSimulator(t, testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_OfflineNeverAddsToCart(t *testing.T) {
	cfg := testConfig()
	cfg.OfflineProbability = 1
	sim := newTestSimulator(t, cfg)

	summary, err := sim.Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, summary.CartItems)
	assert.Zero(t, summary.Activity[models.ActivityCartItemAdded])
}

func TestRun_ShowProgress(t *testing.T) {
	cfg := testConfig()
	cfg.ShowProgress = true
	cfg.SimulationDuration = 5 * time.Second
	sim := newTestSimulator(t, cfg)

	_, err := sim.Run(context.Background())
	assert.NoError(t, err)
}

func TestPickAction_CoversWeights(t *testing.T) {
	sim := newTestSimulator(t, testConfig())

	seen := map[string]bool{}
	for i := 0; i < 2000; i++ {
		seen[sim.pickAction()] = true
	}
	assert.Len(t, seen, len(actionWeights))
}

func TestLoadCatalog(t *testing.T) {
	cfg := testConfig()

	c, err := LoadCatalog(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, catalog.Sample(), c)

	cfg.CatalogSource = "generated"
	c, err = LoadCatalog(context.Background(), cfg)
	require.NoError(t, err)
	assert.Len(t, c.Restaurants, 3)

	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, catalog.Save(path, catalog.Sample()))
	cfg.CatalogSource = "file"
	cfg.CatalogFile = path
	c, err = LoadCatalog(context.Background(), cfg)
	require.NoError(t, err)
	assert.Len(t, c.Restaurants, 2)

	cfg.CatalogSource = "ftp"
	_, err = LoadCatalog(context.Background(), cfg)
	assert.Error(t, err)
}
