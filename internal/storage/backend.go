package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/gravadigital/proagil-api/internal/config"
	"github.com/gravadigital/proagil-api/internal/logger"
	"github.com/gravadigital/proagil-api/internal/storage/objectstore"
	"github.com/gravadigital/proagil-api/internal/storage/postgres"
)

// Backend bundles the relational store and the optional image store
type Backend struct {
	Container postgres.RepositoryContainer
	// Images is nil when no object storage endpoint is configured
	Images objectstore.ImageStore
}

// Open connects to PostgreSQL and, when configured, to the image bucket
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	log := logger.Service("storage")

	container, err := postgres.NewContainer(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	backend := &Backend{Container: container}

	if !cfg.ObjectStoreEnabled() {
		log.Info("Object storage not configured, image uploads disabled")
		return backend, nil
	}

	images, err := objectstore.NewMinioImageStore(cfg)
	if err != nil {
		_ = container.Close()
		return nil, fmt.Errorf("failed to open object storage: %w", err)
	}

	if err := images.EnsureBucket(ctx); err != nil {
		_ = container.Close()
		return nil, fmt.Errorf("failed to prepare object storage: %w", err)
	}

	backend.Images = images
	log.Info("Object storage ready", "endpoint", cfg.ObjectStore.Endpoint, "bucket", cfg.ObjectStore.Bucket)
	return backend, nil
}

// Close releases the database pool
func (b *Backend) Close() error {
	if b == nil || b.Container == nil {
		return errors.New("storage backend is not open")
	}
	return b.Container.Close()
}
