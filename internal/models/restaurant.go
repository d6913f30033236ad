package models

// Restaurant is one vertical entry of the feed. Its Stories are shown one dish at a time.
type Restaurant struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Logo    string `json:"logo,omitempty"`
	Stories []Dish `json:"stories"`
}

// Catalog is the read-only structure consumed once at feed start.
type Catalog struct {
	Restaurants []Restaurant `json:"restaurants"`
}

// Restaurant returns the restaurant at index i, or nil when the index is out of range.
func (c *Catalog) Restaurant(i int) *Restaurant {
	if c == nil || i < 0 || i >= len(c.Restaurants) {
		return nil
	}
	return &c.Restaurants[i]
}

// Dish returns the dish at index i, or nil when the index is out of range.
func (r *Restaurant) Dish(i int) *Dish {
	if r == nil || i < 0 || i >= len(r.Stories) {
		return nil
	}
	return &r.Stories[i]
}
