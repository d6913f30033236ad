package factories

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/chrisdamba/foodstory/internal/models"
	"github.com/jaswdr/faker"
)

// RestaurantFactory generates story catalogs. Restaurants are keyed by a
// slug of their name so ids stay stable for a given seed.
type RestaurantFactory struct {
	fake      faker.Faker
	slugCache sync.Map // to track used slugs
	dishes    *DishFactory
}

func NewRestaurantFactory(seed int64) *RestaurantFactory {
	fake := faker.NewWithSeed(rand.NewSource(seed))
	return &RestaurantFactory{
		fake:   fake,
		dishes: &DishFactory{fake: fake},
	}
}

// CreateCatalog builds InitialRestaurants restaurants with DishesPerRestaurant stories each.
func (rf *RestaurantFactory) CreateCatalog(config *models.Config) *models.Catalog {
	catalog := &models.Catalog{Restaurants: make([]models.Restaurant, 0, config.InitialRestaurants)}
	for i := 0; i < config.InitialRestaurants; i++ {
		catalog.Restaurants = append(catalog.Restaurants, rf.CreateRestaurant(config.DishesPerRestaurant, config.VideoRatio))
	}
	return catalog
}

func (rf *RestaurantFactory) CreateRestaurant(dishCount int, videoRatio float64) models.Restaurant {
	name := rf.fake.Company().Name()
	slug := rf.createUniqueSlug(name)
	cuisines := rf.generateRandomCuisines()

	restaurant := models.Restaurant{
		ID:      slug,
		Name:    name,
		Logo:    fmt.Sprintf("https://images.example.com/logos/%s.png", slug),
		Stories: make([]models.Dish, 0, dishCount),
	}
	for i := 0; i < dishCount; i++ {
		restaurant.Stories = append(restaurant.Stories, rf.dishes.CreateDish(cuisines, videoRatio))
	}
	return restaurant
}

func (rf *RestaurantFactory) createUniqueSlug(name string) string {
	base := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, base)
	if base == "" {
		base = "restaurant"
	}

	slug := base
	counter := 1

	for {
		if _, exists := rf.slugCache.LoadOrStore(slug, true); !exists {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
		counter++
	}
}

func (rf *RestaurantFactory) generateRandomCuisines() []string {
	allCuisines := []string{"Italian", "Indian", "American", "Japanese", "Mexican", "Chinese", "Thai", "Greek", "French", "Mediterranean", "Pizza", "Curry", "Burgers", "Grill", "Salad"}
	cuisineCount := rf.fake.IntBetween(1, 3)
	cuisines := make([]string, cuisineCount)
	for i := 0; i < cuisineCount; i++ {
		cuisines[i] = rf.fake.RandomStringElement(allCuisines)
	}
	return cuisines
}
