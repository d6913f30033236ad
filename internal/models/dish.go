package models

import (
	"math"
	"time"
)

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"

	// DefaultImageDurationMs is used when an image media item carries no duration.
	DefaultImageDurationMs = 5000

	PlaceholderImageURL = "https://via.placeholder.com/800x1200/333333/ffffff?text=Image+Not+Found"
)

type Dish struct {
	DishID      string       `json:"dishId"`
	DishName    string       `json:"dishName"`
	Description string       `json:"description"`
	BasePrice   float64      `json:"basePrice"`
	Media       []MediaItem  `json:"media"`
	Ingredients []Ingredient `json:"ingredients"`
}

type MediaItem struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"` // "image" or "video"
	URL        string    `json:"url"`
	DurationMs int       `json:"duration,omitempty"` // images only
	Hotspots   []Hotspot `json:"hotspots"`
}

// Hotspot coordinates are fractions of the container size.
type Hotspot struct {
	ID           string  `json:"id"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	IngredientID string  `json:"ingredientId"`
}

type Nutrition struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

type Ingredient struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Image         string         `json:"image,omitempty"`
	Nutrition     *Nutrition     `json:"nutrition,omitempty"`
	Allergens     []string       `json:"allergens"`
	Customizable  bool           `json:"customizable"`
	Quantity      int            `json:"quantity,omitempty"`
	PriceImpact   float64        `json:"priceImpact"` // per unit above or below the base quantity
	Substitutions []Substitution `json:"substitutions"`
}

type Substitution struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	PriceChange float64 `json:"priceChange"` // per unit of the current quantity
}

// PrimaryMedia returns the single media item shown for the dish.
func (d *Dish) PrimaryMedia() *MediaItem {
	if d == nil || len(d.Media) == 0 {
		return nil
	}
	return &d.Media[0]
}

func (d *Dish) Ingredient(id string) *Ingredient {
	if d == nil {
		return nil
	}
	for i := range d.Ingredients {
		if d.Ingredients[i].ID == id {
			return &d.Ingredients[i]
		}
	}
	return nil
}

func (m *MediaItem) IsVideo() bool { return m != nil && m.Type == MediaTypeVideo }

// Duration is the display time of an image item.
func (m *MediaItem) Duration() time.Duration {
	if m == nil || m.DurationMs <= 0 {
		return DefaultImageDurationMs * time.Millisecond
	}
	return time.Duration(m.DurationMs) * time.Millisecond
}

// BaseQuantity is the default quantity of the ingredient, never less than 1.
func (i *Ingredient) BaseQuantity() int {
	if i == nil || i.Quantity <= 0 {
		return 1
	}
	return i.Quantity
}

func (i *Ingredient) Substitution(id string) *Substitution {
	if i == nil {
		return nil
	}
	for k := range i.Substitutions {
		if i.Substitutions[k].ID == id {
			return &i.Substitutions[k]
		}
	}
	return nil
}

// RoundMoney rounds an amount to cents.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
