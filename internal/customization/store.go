// Package customization keeps per (dish, ingredient) modification records.
package customization

import (
	"sort"

	"github.com/chrisdamba/foodstory/internal/models"
	"github.com/chrisdamba/foodstory/internal/storage"
)

// Store holds records by dish and then ingredient, and writes the whole map
// through the storage adapter after every mutation. It does not interpret
// records.
type Store struct {
	records map[string]map[string]models.CustomizationRecord
	storage storage.Adapter
}

// NewStore loads persisted records from the adapter. A nil adapter keeps the
// store in memory only.
func NewStore(a storage.Adapter) *Store {
	records := storage.GetOr(a, models.StorageKeyCustomizations, map[string]map[string]models.CustomizationRecord{})
	if records == nil {
		records = make(map[string]map[string]models.CustomizationRecord)
	}
	// keys are authoritative over the ids stored inside a record
	for dishID, byIngredient := range records {
		if len(byIngredient) == 0 {
			delete(records, dishID)
			continue
		}
		for ingredientID, rec := range byIngredient {
			rec.DishID = dishID
			rec.IngredientID = ingredientID
			byIngredient[ingredientID] = rec
		}
	}
	return &Store{records: records, storage: a}
}

func (s *Store) persist() {
	if s.storage == nil {
		return
	}
	s.storage.Set(models.StorageKeyCustomizations, s.records)
}

func (s *Store) lookup(dishID, ingredientID string) (models.CustomizationRecord, bool) {
	rec, ok := s.records[dishID][ingredientID]
	if !ok || rec.DishID != dishID || rec.IngredientID != ingredientID {
		return models.CustomizationRecord{}, false
	}
	return rec, true
}

func (s *Store) Get(dishID, ingredientID string) (models.CustomizationRecord, bool) {
	rec, ok := s.lookup(dishID, ingredientID)
	if !ok {
		return models.CustomizationRecord{}, false
	}
	return rec.Clone(), true
}

// Set upserts a record. The dish and ingredient ids of the record are
// overwritten to match the key.
func (s *Store) Set(dishID, ingredientID string, rec models.CustomizationRecord) {
	rec = rec.Clone()
	rec.DishID = dishID
	rec.IngredientID = ingredientID
	byIngredient, ok := s.records[dishID]
	if !ok {
		byIngredient = make(map[string]models.CustomizationRecord)
		s.records[dishID] = byIngredient
	}
	byIngredient[ingredientID] = rec
	s.persist()
}

func (s *Store) Remove(dishID, ingredientID string) {
	byIngredient, ok := s.records[dishID]
	if !ok {
		return
	}
	if _, ok := byIngredient[ingredientID]; !ok {
		return
	}
	delete(byIngredient, ingredientID)
	if len(byIngredient) == 0 {
		delete(s.records, dishID)
	}
	s.persist()
}

// AllForDish returns the dish's records ordered by ingredient id.
func (s *Store) AllForDish(dishID string) []models.CustomizationRecord {
	var out []models.CustomizationRecord
	for _, rec := range s.records[dishID] {
		out = append(out, rec.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IngredientID < out[j].IngredientID })
	return out
}

func (s *Store) ClearForDish(dishID string) {
	if _, ok := s.records[dishID]; !ok {
		return
	}
	delete(s.records, dishID)
	s.persist()
}

// IsCustomized reports whether the ingredient currently has a substitution.
func (s *Store) IsCustomized(dishID, ingredientID string) bool {
	rec, ok := s.lookup(dishID, ingredientID)
	return ok && rec.Substitution != nil
}

// Total is the sum of price changes of the dish's records.
func (s *Store) Total(dishID string) float64 {
	total := 0.0
	for _, rec := range s.AllForDish(dishID) {
		total += rec.PriceChange
	}
	return models.RoundMoney(total)
}

// Len is the number of records across all dishes.
func (s *Store) Len() int {
	n := 0
	for _, byIngredient := range s.records {
		n += len(byIngredient)
	}
	return n
}
