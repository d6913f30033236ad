package models

// CustomizationRecord is a stored deviation of one ingredient from its default.
// Absence of a record is the default state.
type CustomizationRecord struct {
	DishID         string        `json:"dishId"`
	IngredientID   string        `json:"ingredientId"`
	IngredientName string        `json:"ingredientName"`
	Quantity       *int          `json:"quantity,omitempty"`
	Substitution   *Substitution `json:"substitution"`
	Removed        bool          `json:"removed"`
	PriceChange    float64       `json:"priceChange"`
}

// Clone returns a deep copy so snapshots do not alias store state.
func (r CustomizationRecord) Clone() CustomizationRecord {
	out := r
	if r.Quantity != nil {
		q := *r.Quantity
		out.Quantity = &q
	}
	if r.Substitution != nil {
		s := *r.Substitution
		out.Substitution = &s
	}
	return out
}
