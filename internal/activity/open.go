package activity

import (
	"context"
	"fmt"
	"os"

	"github.com/chrisdamba/foodstory/internal/cloudwriter"
	"github.com/chrisdamba/foodstory/internal/models"
)

func mkdirAll(dir string) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return nil
}

// Open selects the output for the configuration: Kafka when enabled, Postgres
// for the postgres format, a file format when an output path or cloud bucket
// is set, else the console.
func Open(ctx context.Context, cfg *models.Config) (Output, error) {
	if cfg.KafkaEnabled {
		return NewKafkaOutput(cfg.KafkaBrokerList)
	}
	if cfg.OutputFormat == "postgres" {
		return NewPostgresOutput(ctx, cfg.Database.ConnString())
	}
	if cfg.OutputFormat == "parquet" && cfg.CloudStorage.Provider != "" {
		if cfg.CloudStorage.Provider != "s3" {
			return nil, fmt.Errorf("unsupported cloud storage provider: %s", cfg.CloudStorage.Provider)
		}
		factory, err := cloudwriter.NewS3WriterFactory(ctx, cfg.CloudStorage.Region, cfg.CloudStorage.Prefix)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
		}
		return NewCloudParquetOutput(factory, cfg.CloudStorage.BucketName, cfg.OutputFolder), nil
	}
	if cfg.OutputPath == "" {
		return NewConsoleOutput(nil), nil
	}
	switch cfg.OutputFormat {
	case "parquet":
		return NewParquetOutput(cfg.OutputPath, cfg.OutputFolder), nil
	case "json":
		return NewJSONOutput(cfg.OutputPath, cfg.OutputFolder), nil
	case "csv":
		return NewCSVOutput(cfg.OutputPath, cfg.OutputFolder), nil
	}
	return nil, fmt.Errorf("unsupported output format: %s", cfg.OutputFormat)
}
