package repositories

import (
	"context"

	"github.com/chrisdamba/foodstory/internal/models"
)

type RestaurantRepository interface {
	EnsureSchema(ctx context.Context) error
	BulkCreate(ctx context.Context, restaurants []*models.Restaurant) error
	Create(ctx context.Context, restaurant *models.Restaurant, position int) error
	GetAll(ctx context.Context) ([]*models.Restaurant, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type DishRepository interface {
	EnsureSchema(ctx context.Context) error
	BulkCreate(ctx context.Context, restaurantID string, dishes []models.Dish) error
	GetAll(ctx context.Context) (map[string][]models.Dish, error)
	GetByRestaurantID(ctx context.Context, restaurantID string) ([]models.Dish, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}
