package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const activitySchema = `
    CREATE TABLE IF NOT EXISTS %s (
        event_time    TIMESTAMPTZ NOT NULL,
        session_id    TEXT NOT NULL,
        event_type    TEXT NOT NULL,
        restaurant_id TEXT,
        dish_id       TEXT,
        ingredient_id TEXT,
        cart_item_id  TEXT,
        price         DOUBLE PRECISION,
        percent       DOUBLE PRECISION
    )
`

// PostgresOutput inserts events into fact tables chosen by topic.
type PostgresOutput struct {
	pool    *pgxpool.Pool
	timeout time.Duration
	ready   map[string]bool
}

func NewPostgresOutput(ctx context.Context, connString string) (*PostgresOutput, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	return &PostgresOutput{pool: pool, timeout: 5 * time.Second, ready: make(map[string]bool)}, nil
}

func (p *PostgresOutput) WriteMessage(topic string, msg []byte) error {
	e, err := decode(msg)
	if err != nil {
		return err
	}
	table := topicToTable(topic)

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if !p.ready[table] {
		if _, err := p.pool.Exec(ctx, fmt.Sprintf(activitySchema, table)); err != nil {
			return fmt.Errorf("failed to create %s: %w", table, err)
		}
		p.ready[table] = true
	}

	query := fmt.Sprintf(`
        INSERT INTO %s (
            event_time, session_id, event_type, restaurant_id, dish_id,
            ingredient_id, cart_item_id, price, percent
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `, table)
	_, err = p.pool.Exec(ctx, query,
		e.Time(),
		e.SessionID,
		e.Type,
		nullable(e.RestaurantID),
		nullable(e.DishID),
		nullable(e.IngredientID),
		nullable(e.CartItemID),
		e.Price,
		e.Percent,
	)
	if err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return nil
}

func (p *PostgresOutput) Close() error {
	p.pool.Close()
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func topicToTable(topic string) string {
	tableMap := map[string]string{
		"restaurant_viewed_events":     "fact_story_view",
		"dish_viewed_events":           "fact_story_view",
		"dish_completed_events":        "fact_story_view",
		"ingredient_inspected_events":  "fact_ingredient_interaction",
		"customization_changed_events": "fact_ingredient_interaction",
		"cart_item_added_events":       "fact_cart",
		"cart_item_removed_events":     "fact_cart",
	}
	if table, ok := tableMap[topic]; ok {
		return table
	}
	return "fact_activity"
}
