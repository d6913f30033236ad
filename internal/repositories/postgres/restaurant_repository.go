package postgres

import (
	"context"
	"fmt"

	"github.com/chrisdamba/foodstory/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

const restaurantSchema = `
    CREATE TABLE IF NOT EXISTS restaurants (
        id       TEXT PRIMARY KEY,
        name     TEXT NOT NULL,
        logo     TEXT NOT NULL DEFAULT '',
        position INTEGER NOT NULL
    )
`

type RestaurantRepository struct {
	pool *pgxpool.Pool
}

func NewRestaurantRepository(pool *pgxpool.Pool) *RestaurantRepository {
	return &RestaurantRepository{pool: pool}
}

func (r *RestaurantRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, restaurantSchema); err != nil {
		return fmt.Errorf("failed to create restaurants table: %w", err)
	}
	return nil
}

// BulkCreate inserts restaurant rows in feed order. Stories are stored by the dish repository.
func (r *RestaurantRepository) BulkCreate(ctx context.Context, restaurants []*models.Restaurant) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i, restaurant := range restaurants {
		query := `
            INSERT INTO restaurants (id, name, logo, position)
            VALUES ($1, $2, $3, $4)
        `
		_, err = tx.Exec(ctx, query, restaurant.ID, restaurant.Name, restaurant.Logo, i)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *RestaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant, position int) error {
	query := `
        INSERT INTO restaurants (id, name, logo, position)
        VALUES ($1, $2, $3, $4)
    `
	_, err := r.pool.Exec(ctx, query, restaurant.ID, restaurant.Name, restaurant.Logo, position)
	return err
}

// GetAll returns restaurants in feed order without their stories.
func (r *RestaurantRepository) GetAll(ctx context.Context) ([]*models.Restaurant, error) {
	query := `
        SELECT id, name, logo
        FROM restaurants
        ORDER BY position, id
    `
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []*models.Restaurant
	for rows.Next() {
		restaurant := &models.Restaurant{Stories: []models.Dish{}}
		if err := rows.Scan(&restaurant.ID, &restaurant.Name, &restaurant.Logo); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, restaurant)
	}
	return restaurants, rows.Err()
}

func (r *RestaurantRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM restaurants").Scan(&count)
	return count, err
}

func (r *RestaurantRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM restaurants")
	return err
}
