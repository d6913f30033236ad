package postgres

import (
	"context"
	"fmt"

	"github.com/chrisdamba/foodstory/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dishSchema = `
    CREATE TABLE IF NOT EXISTS dishes (
        id            TEXT PRIMARY KEY,
        restaurant_id TEXT NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
        position      INTEGER NOT NULL,
        name          TEXT NOT NULL,
        description   TEXT NOT NULL DEFAULT '',
        base_price    DOUBLE PRECISION NOT NULL,
        media         JSONB NOT NULL,
        ingredients   JSONB NOT NULL
    )
`

type DishRepository struct {
	pool *pgxpool.Pool
}

func NewDishRepository(pool *pgxpool.Pool) *DishRepository {
	return &DishRepository{pool: pool}
}

func (r *DishRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, dishSchema); err != nil {
		return fmt.Errorf("failed to create dishes table: %w", err)
	}
	return nil
}

// BulkCreate copies the stories of one restaurant, keeping their order.
func (r *DishRepository) BulkCreate(ctx context.Context, restaurantID string, dishes []models.Dish) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"dishes"},
		[]string{
			"id", "restaurant_id", "position", "name", "description",
			"base_price", "media", "ingredients",
		},
		pgx.CopyFromSlice(len(dishes), func(i int) ([]interface{}, error) {
			return []interface{}{
				dishes[i].DishID,
				restaurantID,
				i,
				dishes[i].DishName,
				dishes[i].Description,
				dishes[i].BasePrice,
				dishes[i].Media,
				dishes[i].Ingredients,
			}, nil
		}),
	)
	return err
}

func (r *DishRepository) GetAll(ctx context.Context) (map[string][]models.Dish, error) {
	query := `
        SELECT restaurant_id, id, name, description, base_price, media, ingredients
        FROM dishes
        ORDER BY restaurant_id, position
    `
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dishes := make(map[string][]models.Dish)
	for rows.Next() {
		var restaurantID string
		dish, err := scanDish(rows, &restaurantID)
		if err != nil {
			return nil, err
		}
		dishes[restaurantID] = append(dishes[restaurantID], dish)
	}
	return dishes, rows.Err()
}

func (r *DishRepository) GetByRestaurantID(ctx context.Context, restaurantID string) ([]models.Dish, error) {
	query := `
        SELECT restaurant_id, id, name, description, base_price, media, ingredients
        FROM dishes
        WHERE restaurant_id = $1
        ORDER BY position
    `
	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dishes []models.Dish
	for rows.Next() {
		var owner string
		dish, err := scanDish(rows, &owner)
		if err != nil {
			return nil, err
		}
		dishes = append(dishes, dish)
	}
	return dishes, rows.Err()
}

func scanDish(rows pgx.Rows, restaurantID *string) (models.Dish, error) {
	var dish models.Dish
	err := rows.Scan(
		restaurantID,
		&dish.DishID,
		&dish.DishName,
		&dish.Description,
		&dish.BasePrice,
		&dish.Media,
		&dish.Ingredients,
	)
	return dish, err
}

func (r *DishRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM dishes").Scan(&count)
	return count, err
}

func (r *DishRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM dishes")
	return err
}
