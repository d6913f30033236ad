package factories

import (
	"fmt"

	"github.com/chrisdamba/foodstory/internal/models"
	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
)

type DishFactory struct {
	fake faker.Faker
}

var dishNames = map[string][]string{
	"Pizza":         {"Margherita", "Pepperoni", "Hawaiian", "Veggie Supreme"},
	"Curry":         {"Chicken Tikka Masala", "Vegetable Curry", "Beef Madras", "Paneer Butter Masala"},
	"Burgers":       {"Classic Cheeseburger", "Veggie Burger", "BBQ Bacon Burger", "Mushroom Swiss Burger"},
	"Grill":         {"Grilled Chicken", "BBQ Ribs", "Grilled Salmon", "Mixed Grill Platter"},
	"Salad":         {"Caesar Salad", "Greek Salad", "Cobb Salad", "Quinoa Salad"},
	"Italian":       {"Margherita Pizza", "Spaghetti Carbonara", "Lasagna", "Tiramisu"},
	"Indian":        {"Chicken Tikka Masala", "Vegetable Curry", "Naan Bread", "Biryani"},
	"American":      {"Cheeseburger", "Hot Dog", "BBQ Ribs", "Apple Pie"},
	"Japanese":      {"Sushi Roll", "Ramen", "Tempura", "Miso Soup"},
	"Mexican":       {"Tacos", "Burrito", "Guacamole", "Quesadilla"},
	"Chinese":       {"Kung Pao Chicken", "Fried Rice", "Dumplings", "Mapo Tofu"},
	"Thai":          {"Pad Thai", "Green Curry", "Tom Yum Soup", "Mango Sticky Rice"},
	"Greek":         {"Gyros", "Greek Salad", "Moussaka", "Baklava"},
	"French":        {"Coq au Vin", "Beef Bourguignon", "Ratatouille", "Crème Brûlée"},
	"Mediterranean": {"Falafel", "Hummus", "Tabbouleh", "Grilled Halloumi"},
}

// ingredient name -> possible substitutions
var substitutionOptions = map[string][]string{
	"Chicken": {"Tofu", "Tempeh"},
	"Beef":    {"Chicken", "Portobello Mushroom"},
	"Pork":    {"Chicken", "Jackfruit"},
	"Fish":    {"Tofu"},
	"Tofu":    {"Paneer"},
	"Cheese":  {"Vegan Cheese"},
	"Tomato":  {"Roasted Pepper"},
	"Lettuce": {"Spinach", "Rocket"},
	"Onion":   {"Shallot"},
	"Garlic":  {"Ginger"},
	"Bread":   {"Gluten-Free Bread"},
	"Rice":    {"Brown Rice", "Cauliflower Rice"},
	"Pasta":   {"Zucchini Noodles"},
	"Egg":     {"Avocado"},
	"Milk":    {"Oat Milk", "Almond Milk"},
}

var allergens = map[string][]string{
	"Fish":   {"fish"},
	"Cheese": {"dairy"},
	"Milk":   {"dairy"},
	"Bread":  {"gluten"},
	"Pasta":  {"gluten", "egg"},
	"Egg":    {"egg"},
	"Tofu":   {"soy"},
}

var allIngredients = []string{"Chicken", "Beef", "Pork", "Fish", "Tofu", "Cheese", "Tomato", "Lettuce", "Onion", "Garlic", "Bread", "Rice", "Pasta", "Egg", "Milk"}

func (df *DishFactory) CreateDish(cuisines []string, videoRatio float64) models.Dish {
	id := cuid.New()
	dish := models.Dish{
		DishID:      id,
		DishName:    df.generateRandomDishName(cuisines),
		Description: df.fake.Lorem().Sentence(10),
		BasePrice:   df.fake.Float64(2, 5, 30),
		Ingredients: df.generateRandomIngredients(),
	}

	media := models.MediaItem{ID: cuid.New()}
	if df.fake.Float64(2, 0, 1) < videoRatio {
		media.Type = models.MediaTypeVideo
		media.URL = fmt.Sprintf("https://media.example.com/dishes/%s.mp4", id)
	} else {
		media.Type = models.MediaTypeImage
		media.URL = fmt.Sprintf("https://media.example.com/dishes/%s.jpg", id)
		media.DurationMs = df.fake.IntBetween(4, 8) * 1000
	}
	media.Hotspots = df.generateHotspots(dish.Ingredients)
	dish.Media = []models.MediaItem{media}
	return dish
}

func (df *DishFactory) generateRandomDishName(cuisines []string) string {
	if len(cuisines) == 0 {
		return "Special of the Day"
	}
	cuisine := df.fake.RandomStringElement(cuisines)
	if items, ok := dishNames[cuisine]; ok {
		return df.fake.RandomStringElement(items)
	}
	return "Special of the Day"
}

// generateRandomIngredients picks 2 to 5 distinct ingredients.
func (df *DishFactory) generateRandomIngredients() []models.Ingredient {
	names := make([]string, len(allIngredients))
	copy(names, allIngredients)
	for i := len(names) - 1; i > 0; i-- {
		j := df.fake.IntBetween(0, i)
		names[i], names[j] = names[j], names[i]
	}
	count := df.fake.IntBetween(2, 5)

	ingredients := make([]models.Ingredient, 0, count)
	for _, name := range names[:count] {
		ing := models.Ingredient{
			ID:           cuid.New(),
			Name:         name,
			Allergens:    append([]string{}, allergens[name]...),
			Customizable: df.fake.IntBetween(0, 9) > 0,
			Quantity:     df.fake.IntBetween(1, 2),
			PriceImpact:  df.fake.Float64(2, 0, 3),
			Nutrition: &models.Nutrition{
				Calories: df.fake.Float64(0, 20, 400),
				ProteinG: df.fake.Float64(1, 0, 30),
				CarbsG:   df.fake.Float64(1, 0, 40),
				FatG:     df.fake.Float64(1, 0, 25),
			},
			Substitutions: []models.Substitution{},
		}
		if ing.Customizable {
			for _, sub := range substitutionOptions[name] {
				ing.Substitutions = append(ing.Substitutions, models.Substitution{
					ID:          cuid.New(),
					Name:        sub,
					PriceChange: df.fake.Float64(2, -2, 2),
				})
			}
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients
}

// generateHotspots places one hotspot per customizable ingredient, at most three.
func (df *DishFactory) generateHotspots(ingredients []models.Ingredient) []models.Hotspot {
	hotspots := make([]models.Hotspot, 0, 3)
	for _, ing := range ingredients {
		if !ing.Customizable || len(hotspots) == 3 {
			continue
		}
		hotspots = append(hotspots, models.Hotspot{
			ID:           cuid.New(),
			X:            df.fake.Float64(2, 15, 85) / 100,
			Y:            df.fake.Float64(2, 20, 80) / 100,
			IngredientID: ing.ID,
		})
	}
	return hotspots
}
