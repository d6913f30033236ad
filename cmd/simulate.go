package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/chrisdamba/foodstory/internal/activity"
	"github.com/chrisdamba/foodstory/internal/models"
	"github.com/chrisdamba/foodstory/internal/simulator"
	"github.com/chrisdamba/foodstory/internal/storage"
	"github.com/spf13/cobra"
)

var simulateFlags = map[string]string{
	"seed":                "seed",
	"catalog-source":      "catalog_source",
	"catalog-file":        "catalog_file",
	"initial-restaurants": "initial_restaurants",
	"dishes":              "dishes_per_restaurant",
	"video-ratio":         "video_ratio",
	"duration":            "simulation_duration",
	"realtime":            "realtime",
	"action-interval":     "action_interval",
	"offline-probability": "offline_probability",
	"show-progress":       "show_progress",
	"kafka-enabled":       "kafka_enabled",
	"kafka-broker-list":   "kafka_broker_list",
	"output-path":         "output_path",
	"output-format":       "output_format",
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate a viewer browsing the story feed",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, mergeFlags(simulateFlags, storageFlags))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return runSimulation(ctx, cfg)
	},
}

func init() {
	simulateCmd.Flags().Int("seed", 42, "Random seed for catalog generation and viewer actions")
	simulateCmd.Flags().String("catalog-source", "generated", "Catalog source: generated, sample, file or postgres")
	simulateCmd.Flags().String("catalog-file", "", "Catalog JSON file when catalog-source is file")
	simulateCmd.Flags().Int("initial-restaurants", 5, "Number of generated restaurants")
	simulateCmd.Flags().Int("dishes", 4, "Number of generated dishes per restaurant")
	simulateCmd.Flags().Float64("video-ratio", 0.25, "Share of generated dishes with video media")
	simulateCmd.Flags().Duration("duration", 2*time.Minute, "Simulated viewing time")
	simulateCmd.Flags().Bool("realtime", false, "Run on wall clock time instead of the virtual clock")
	simulateCmd.Flags().Duration("action-interval", 2*time.Second, "Mean time between viewer actions")
	simulateCmd.Flags().Float64("offline-probability", 0, "Probability of being offline at each action")
	simulateCmd.Flags().Bool("show-progress", false, "Render a progress bar")
	simulateCmd.Flags().Bool("kafka-enabled", false, "Send activity events to Kafka")
	simulateCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	simulateCmd.Flags().String("output-path", "", "Directory for activity files (stdout when empty)")
	simulateCmd.Flags().String("output-format", "json", "Activity file format: json, csv or parquet")
}

func runSimulation(ctx context.Context, cfg *models.Config) error {
	catalog, err := simulator.LoadCatalog(ctx, cfg)
	if err != nil {
		return err
	}

	store, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	out, err := activity.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := out.Close(); err != nil {
			log.Printf("Error closing activity output: %v", err)
		}
	}()

	sim := simulator.NewSimulator(cfg, catalog, store, out)
	summary, err := sim.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	printSummary(summary)
	return nil
}

func printSummary(s simulator.Summary) {
	fmt.Fprintf(os.Stderr, "session %s, simulated %s\n", s.SessionID, s.Elapsed)
	for _, group := range []struct {
		title  string
		counts map[string]int
	}{{"actions", s.Actions}, {"activity", s.Activity}} {
		keys := make([]string, 0, len(group.counts))
		for k := range group.counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintf(os.Stderr, "%s:\n", group.title)
		for _, k := range keys {
			fmt.Fprintf(os.Stderr, "  %-22s %d\n", k, group.counts[k])
		}
	}
	fmt.Fprintf(os.Stderr, "cart: %d items, total %.2f\n", s.CartItems, s.CartTotal)
}
