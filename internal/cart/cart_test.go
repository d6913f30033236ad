package cart

import (
	"fmt"
	"testing"
	"time"

	"github.com/chrisdamba/foodstory/internal/models"
	"github.com/chrisdamba/foodstory/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(dishID string, price float64) models.CartLineItem {
	return models.CartLineItem{DishID: dishID, DishName: "dish " + dishID, BasePrice: price, FinalPrice: price}
}

func TestStore_AddGeneratesUniqueIDs(t *testing.T) {
	s := NewStore(nil)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := s.Add(line("d1", 1))
		require.NotEmpty(t, id)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Equal(t, 100, s.Count())
}

func TestStore_RemoveByIDRemovesExactlyOne(t *testing.T) {
	s := NewStore(nil)
	first := s.Add(line("d1", 9.99))
	second := s.Add(line("d1", 10.99))
	s.Add(line("d2", 5))

	require.True(t, s.RemoveByID(second))
	assert.Equal(t, 2, s.Count())

	_, ok := s.Get(first)
	assert.True(t, ok)
	_, ok = s.Get(second)
	assert.False(t, ok)

	assert.False(t, s.RemoveByID(second))
	assert.Equal(t, 2, s.Count())
}

func TestStore_RemoveAllMatchingDish(t *testing.T) {
	s := NewStore(nil)
	s.Add(line("d1", 1))
	s.Add(line("d2", 2))
	s.Add(line("d1", 3))

	assert.Equal(t, 2, s.RemoveAllMatchingDish("d1"))
	require.Equal(t, 1, s.Count())
	assert.Equal(t, "d2", s.Items()[0].DishID)
	assert.Zero(t, s.RemoveAllMatchingDish("d9"))
}

func TestStore_SnapshotIsIndependent(t *testing.T) {
	s := NewStore(nil)
	q := 2
	item := line("d1", 12.49)
	item.Customizations = []models.CustomizationRecord{{DishID: "d1", IngredientID: "i1", Quantity: &q, PriceChange: 2.5}}

	id := s.Add(item)
	q = 7
	item.Customizations[0].PriceChange = 99

	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, 2, *got.Customizations[0].Quantity)
	assert.Equal(t, 2.5, got.Customizations[0].PriceChange)
}

func TestStore_TotalAndClear(t *testing.T) {
	s := NewStore(nil)
	s.Add(line("d1", 9.99))
	s.Add(line("d2", 0.02))
	assert.Equal(t, 10.01, s.Total())

	s.Clear()
	assert.Zero(t, s.Count())
	assert.Zero(t, s.Total())
}

func TestStore_Persistence(t *testing.T) {
	adapter := storage.New(storage.NewMemoryBackend(), time.Second)
	n := 0
	gen := WithIDGenerator(func() string { n++; return fmt.Sprintf("c%d", n) })

	s := NewStore(adapter, gen)
	s.Add(line("d1", 1))
	s.Add(line("d2", 2))

	reloaded := NewStore(adapter)
	require.Equal(t, 2, reloaded.Count())
	assert.Equal(t, []string{"c1", "c2"}, []string{reloaded.Items()[0].CartItemID, reloaded.Items()[1].CartItemID})

	reloaded.RemoveByID("c1")
	assert.Equal(t, 1, NewStore(adapter).Count())
}
