package catalog

import "github.com/chrisdamba/foodstory/internal/models"

func sub(id, name string, price float64) models.Substitution {
	return models.Substitution{ID: id, Name: name, PriceChange: price}
}

// Sample returns a small built-in catalog with two restaurants, image and
// video dishes and hotspots on every dish.
func Sample() *models.Catalog {
	return &models.Catalog{Restaurants: []models.Restaurant{
		{
			ID:   "r1",
			Name: "Spice Route Bistro",
			Stories: []models.Dish{
				{
					DishID:      "d1",
					DishName:    "Butter Chicken",
					Description: "Tender chicken simmered in a creamy tomato curry.",
					BasePrice:   9.99,
					Media: []models.MediaItem{{
						ID: "m1", Type: models.MediaTypeImage, URL: "https://images.example.com/butter-chicken.jpg", DurationMs: 5000,
						Hotspots: []models.Hotspot{
							{ID: "h1", X: 0.85, Y: 0.5, IngredientID: "i1"},
							{ID: "h2", X: 0.65, Y: 0.45, IngredientID: "i2"},
						},
					}},
					Ingredients: []models.Ingredient{
						{
							ID: "i1", Name: "Chicken", Allergens: []string{}, Customizable: true, Quantity: 1, PriceImpact: 2.5,
							Nutrition:     &models.Nutrition{Calories: 250, ProteinG: 25, FatG: 15},
							Substitutions: []models.Substitution{sub("i1a", "Tofu", -1)},
						},
						{
							ID: "i2", Name: "Butter Sauce", Allergens: []string{"Dairy"}, Customizable: true, Quantity: 1,
							Substitutions: []models.Substitution{sub("i2a", "Cashew Cream", 0.5)},
						},
						{
							ID: "i3", Name: "Cilantro Garnish", Allergens: []string{}, Customizable: true, Quantity: 1,
							Substitutions: []models.Substitution{sub("i3a", "Mint Leaves", 0.25)},
						},
					},
				},
				{
					DishID:    "d2",
					DishName:  "Paneer Tikka Masala",
					BasePrice: 8.49,
					Media: []models.MediaItem{{
						ID: "m3", Type: models.MediaTypeImage, URL: "https://images.example.com/paneer.jpg", DurationMs: 5000,
						Hotspots: []models.Hotspot{{ID: "h4", X: 0.5, Y: 0.55, IngredientID: "i4"}},
					}},
					Ingredients: []models.Ingredient{
						{
							ID: "i4", Name: "Paneer Cubes", Allergens: []string{"Dairy"}, Customizable: true, Quantity: 1,
							Substitutions: []models.Substitution{sub("i4a", "Tofu Cubes", -0.5)},
						},
						{ID: "i4b", Name: "Masala Gravy", Allergens: []string{}, Customizable: false, Quantity: 1},
					},
				},
				{
					DishID:    "d3",
					DishName:  "Lamb Biryani",
					BasePrice: 14.99,
					Media: []models.MediaItem{{
						ID: "m6", Type: models.MediaTypeVideo, URL: "https://media.example.com/biryani.mp4",
						Hotspots: []models.Hotspot{
							{ID: "h8", X: 0.4, Y: 0.5, IngredientID: "i9"},
							{ID: "h9", X: 0.6, Y: 0.6, IngredientID: "i10"},
						},
					}},
					Ingredients: []models.Ingredient{
						{
							ID: "i9", Name: "Lamb Pieces", Allergens: []string{}, Customizable: true, Quantity: 1, PriceImpact: 4,
							Substitutions: []models.Substitution{sub("i9a", "Chicken Pieces", -2), sub("i9b", "Vegetables", -3)},
						},
						{
							ID: "i10", Name: "Saffron Rice", Allergens: []string{}, Customizable: true, Quantity: 1,
							Substitutions: []models.Substitution{sub("i10a", "Brown Rice", 0)},
						},
					},
				},
			},
		},
		{
			ID:   "r2",
			Name: "Tokyo Street Eats",
			Stories: []models.Dish{
				{
					DishID:    "d4",
					DishName:  "Ramen Bowl Deluxe",
					BasePrice: 12.5,
					Media: []models.MediaItem{{
						ID: "m4", Type: models.MediaTypeImage, URL: "https://images.example.com/ramen.jpg", DurationMs: 5000,
						Hotspots: []models.Hotspot{
							{ID: "h5", X: 0.45, Y: 0.4, IngredientID: "i5"},
							{ID: "h6", X: 0.6, Y: 0.55, IngredientID: "i6"},
						},
					}},
					Ingredients: []models.Ingredient{
						{
							ID: "i5", Name: "Soft-Boiled Egg", Allergens: []string{"Eggs"}, Customizable: true, Quantity: 1,
							Substitutions: []models.Substitution{sub("i5a", "Vegan Egg", 0.75)},
						},
						{
							ID: "i6", Name: "Pork Chashu", Allergens: []string{}, Customizable: true, Quantity: 2, PriceImpact: 1.5,
							Substitutions: []models.Substitution{sub("i6a", "Tofu Protein", -0.5)},
						},
					},
				},
				{
					DishID:    "d5",
					DishName:  "Sushi Platter",
					BasePrice: 15.99,
					Media: []models.MediaItem{{
						ID: "m5", Type: models.MediaTypeImage, URL: "https://images.example.com/sushi.jpg", DurationMs: 8000,
						Hotspots: []models.Hotspot{{ID: "h7", X: 0.5, Y: 0.5, IngredientID: "i7"}},
					}},
					Ingredients: []models.Ingredient{
						{
							ID: "i7", Name: "Salmon", Allergens: []string{"Fish"}, Customizable: true, Quantity: 1,
							Substitutions: []models.Substitution{sub("i7a", "Avocado (Veg Option)", -1)},
						},
					},
				},
			},
		},
	}}
}
