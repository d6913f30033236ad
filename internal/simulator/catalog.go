package simulator

import (
	"context"
	"fmt"

	"github.com/chrisdamba/foodstory/internal/catalog"
	"github.com/chrisdamba/foodstory/internal/factories"
	"github.com/chrisdamba/foodstory/internal/models"
	"github.com/chrisdamba/foodstory/internal/repositories/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LoadCatalog returns the catalog selected by cfg.CatalogSource.
func LoadCatalog(ctx context.Context, cfg *models.Config) (*models.Catalog, error) {
	var (
		c   *models.Catalog
		err error
	)
	switch cfg.CatalogSource {
	case "sample":
		c = catalog.Sample()
	case "file":
		c, err = catalog.Load(cfg.CatalogFile)
	case "postgres":
		c, err = loadFromPostgres(ctx, cfg)
	case "generated", "":
		c = factories.NewRestaurantFactory(int64(cfg.Seed)).CreateCatalog(cfg)
	default:
		return nil, fmt.Errorf("unsupported catalog source: %s", cfg.CatalogSource)
	}
	if err != nil {
		return nil, err
	}
	if err := catalog.Validate(c); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return c, nil
}

func loadFromPostgres(ctx context.Context, cfg *models.Config) (*models.Catalog, error) {
	pool, err := pgxpool.New(ctx, cfg.Database.ConnString())
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	defer pool.Close()

	store := postgres.NewCatalogStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return store.Load(ctx)
}
