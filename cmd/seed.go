package cmd

import (
	"context"
	"fmt"

	"github.com/chrisdamba/foodstory/internal/catalog"
	"github.com/chrisdamba/foodstory/internal/factories"
	"github.com/chrisdamba/foodstory/internal/models"
	"github.com/chrisdamba/foodstory/internal/repositories/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var seedFlags = map[string]string{
	"seed":                "seed",
	"initial-restaurants": "initial_restaurants",
	"dishes":              "dishes_per_restaurant",
	"video-ratio":         "video_ratio",
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate a fake catalog into a JSON file or Postgres",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, seedFlags)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		out, _ := cmd.Flags().GetString("out")
		toPostgres, _ := cmd.Flags().GetBool("postgres")
		if out == "" && !toPostgres {
			return fmt.Errorf("nothing to do: set --out or --postgres")
		}

		c := factories.NewRestaurantFactory(int64(cfg.Seed)).CreateCatalog(cfg)
		if err := catalog.Validate(c); err != nil {
			return fmt.Errorf("generated catalog is invalid: %w", err)
		}

		if out != "" {
			if err := catalog.Save(out, c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d restaurants to %s\n", len(c.Restaurants), out)
		}
		if toPostgres {
			if err := seedPostgres(cmd.Context(), cfg, c); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().Int("seed", 42, "Random seed for catalog generation")
	seedCmd.Flags().Int("initial-restaurants", 5, "Number of restaurants")
	seedCmd.Flags().Int("dishes", 4, "Number of dishes per restaurant")
	seedCmd.Flags().Float64("video-ratio", 0.25, "Share of dishes with video media")
	seedCmd.Flags().String("out", "", "Write the catalog as JSON to this file")
	seedCmd.Flags().Bool("postgres", false, "Replace the catalog stored in Postgres")
}

func seedPostgres(ctx context.Context, cfg *models.Config, c *models.Catalog) error {
	pool, err := pgxpool.New(ctx, cfg.Database.ConnString())
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer pool.Close()

	store := postgres.NewCatalogStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := store.Replace(ctx, c); err != nil {
		return err
	}
	restaurants, dishes, err := store.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Seeded %d restaurants and %d dishes\n", restaurants, dishes)
	return nil
}
