// Package cart holds the ordered list of line items added from the feed.
package cart

import (
	"github.com/lucsky/cuid"

	"github.com/chrisdamba/foodstory/internal/models"
	"github.com/chrisdamba/foodstory/internal/storage"
)

// Store keeps line items in insertion order and persists the list under
// models.StorageKeyCart after every mutation.
type Store struct {
	items   []models.CartLineItem
	storage storage.Adapter
	newID   func() string
}

type Option func(*Store)

// WithIDGenerator replaces the cuid generator used for line item ids.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

func NewStore(a storage.Adapter, opts ...Option) *Store {
	s := &Store{
		items:   storage.GetOr(a, models.StorageKeyCart, []models.CartLineItem{}),
		storage: a,
		newID:   cuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) persist() {
	if s.storage == nil {
		return
	}
	s.storage.Set(models.StorageKeyCart, s.items)
}

func cloneItem(item models.CartLineItem) models.CartLineItem {
	out := item
	out.Customizations = make([]models.CustomizationRecord, len(item.Customizations))
	for i, rec := range item.Customizations {
		out.Customizations[i] = rec.Clone()
	}
	return out
}

// Add appends a snapshot of item under a freshly generated id and returns it.
// Any id already set on item is ignored.
func (s *Store) Add(item models.CartLineItem) string {
	item = cloneItem(item)
	item.CartItemID = s.newID()
	s.items = append(s.items, item)
	s.persist()
	return item.CartItemID
}

// RemoveByID removes the single line item with the given id. It reports
// whether an item was removed.
func (s *Store) RemoveByID(id string) bool {
	for i, item := range s.items {
		if item.CartItemID == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			s.persist()
			return true
		}
	}
	return false
}

// RemoveAllMatchingDish removes every line item for the dish and returns how
// many were removed.
func (s *Store) RemoveAllMatchingDish(dishID string) int {
	kept := s.items[:0:0]
	for _, item := range s.items {
		if item.DishID != dishID {
			kept = append(kept, item)
		}
	}
	removed := len(s.items) - len(kept)
	if removed > 0 {
		s.items = kept
		s.persist()
	}
	return removed
}

func (s *Store) Clear() {
	s.items = nil
	s.persist()
}

func (s *Store) Count() int { return len(s.items) }

// Items returns copies of the line items in insertion order.
func (s *Store) Items() []models.CartLineItem {
	out := make([]models.CartLineItem, len(s.items))
	for i, item := range s.items {
		out[i] = cloneItem(item)
	}
	return out
}

func (s *Store) Get(id string) (models.CartLineItem, bool) {
	for _, item := range s.items {
		if item.CartItemID == id {
			return cloneItem(item), true
		}
	}
	return models.CartLineItem{}, false
}

// Total is the sum of final prices.
func (s *Store) Total() float64 {
	total := 0.0
	for _, item := range s.items {
		total += item.FinalPrice
	}
	return models.RoundMoney(total)
}
