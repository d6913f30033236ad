package postgres

import (
	"context"
	"fmt"

	"github.com/chrisdamba/foodstory/internal/models"
	"github.com/chrisdamba/foodstory/internal/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogStore persists a whole catalog across the restaurant and dish tables.
type CatalogStore struct {
	restaurants repositories.RestaurantRepository
	dishes      repositories.DishRepository
}

func NewCatalogStore(pool *pgxpool.Pool) *CatalogStore {
	return &CatalogStore{
		restaurants: NewRestaurantRepository(pool),
		dishes:      NewDishRepository(pool),
	}
}

func (s *CatalogStore) EnsureSchema(ctx context.Context) error {
	if err := s.restaurants.EnsureSchema(ctx); err != nil {
		return err
	}
	return s.dishes.EnsureSchema(ctx)
}

// Replace deletes the stored catalog and writes c in its place.
func (s *CatalogStore) Replace(ctx context.Context, c *models.Catalog) error {
	if err := s.dishes.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to delete dishes: %w", err)
	}
	if err := s.restaurants.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to delete restaurants: %w", err)
	}

	restaurants := make([]*models.Restaurant, len(c.Restaurants))
	for i := range c.Restaurants {
		restaurants[i] = &c.Restaurants[i]
	}
	if err := s.restaurants.BulkCreate(ctx, restaurants); err != nil {
		return fmt.Errorf("failed to insert restaurants: %w", err)
	}
	for _, r := range restaurants {
		if len(r.Stories) == 0 {
			continue
		}
		if err := s.dishes.BulkCreate(ctx, r.ID, r.Stories); err != nil {
			return fmt.Errorf("failed to insert dishes for %s: %w", r.ID, err)
		}
	}
	return nil
}

func (s *CatalogStore) Load(ctx context.Context) (*models.Catalog, error) {
	restaurants, err := s.restaurants.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load restaurants: %w", err)
	}
	dishes, err := s.dishes.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dishes: %w", err)
	}

	c := &models.Catalog{Restaurants: make([]models.Restaurant, 0, len(restaurants))}
	for _, r := range restaurants {
		if stories, ok := dishes[r.ID]; ok {
			r.Stories = stories
		}
		c.Restaurants = append(c.Restaurants, *r)
	}
	return c, nil
}

// Count returns the number of restaurants and dishes stored.
func (s *CatalogStore) Count(ctx context.Context) (int, int, error) {
	restaurants, err := s.restaurants.Count(ctx)
	if err != nil {
		return 0, 0, err
	}
	dishes, err := s.dishes.Count(ctx)
	return restaurants, dishes, err
}
