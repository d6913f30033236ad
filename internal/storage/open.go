package storage

import (
	"context"
	"fmt"

	"github.com/chrisdamba/foodstory/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Open builds the Store selected by the configuration. The returned close
// function releases backend connections.
func Open(ctx context.Context, cfg *models.Config) (*Store, func(), error) {
	noop := func() {}

	switch cfg.StorageBackend {
	case models.StorageBackendMemory, "":
		return New(NewMemoryBackend(), cfg.StorageTimeout), noop, nil

	case models.StorageBackendFile:
		backend, err := NewFileBackend(cfg.StoragePath)
		if err != nil {
			return nil, nil, err
		}
		return New(backend, cfg.StorageTimeout), noop, nil

	case models.StorageBackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.ConnString())
		if err != nil {
			return nil, nil, fmt.Errorf("error connecting to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("error pinging database: %w", err)
		}
		backend := NewPostgresBackend(pool)
		if err := backend.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return New(backend, cfg.StorageTimeout), pool.Close, nil

	case models.StorageBackendS3:
		backend, err := NewS3Backend(ctx, cfg.CloudStorage.Region, cfg.CloudStorage.BucketName, cfg.CloudStorage.Prefix)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create S3 storage: %w", err)
		}
		return New(backend, cfg.StorageTimeout), noop, nil
	}

	return nil, nil, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
}
