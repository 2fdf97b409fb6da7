package postgres

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/gravadigital/proagil-api/internal/config"
	"github.com/gravadigital/proagil-api/internal/domain"
	"github.com/gravadigital/proagil-api/internal/logger"
)

// Container implements RepositoryContainer. It owns the connection pool;
// every call to Repository starts a fresh unit of work on it.
type Container struct {
	db  *gorm.DB
	log *log.Logger
}

// NewContainer connects, migrates and health-checks the database
func NewContainer(cfg *config.Config) (*Container, error) {
	log := logger.Repository("postgres_container")
	log.Info("Initializing PostgreSQL repository container...")

	db, err := Connect(cfg)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		log.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	container := NewContainerWithDB(db)

	if err := container.Health(context.Background()); err != nil {
		log.Error("Container health check failed", "error", err)
		return nil, fmt.Errorf("container health check failed: %w", err)
	}

	log.Info("PostgreSQL repository container initialized successfully")
	return container, nil
}

// NewContainerWithDB creates a container with an existing database connection
func NewContainerWithDB(db *gorm.DB) *Container {
	return &Container{
		db:  db,
		log: logger.Repository("postgres_container"),
	}
}

// Repository returns a repository bound to a new unit of work
func (c *Container) Repository() ProAgilRepository {
	return NewPostgresProAgilRepository(c.db)
}

// Eventos returns the direct evento reader
func (c *Container) Eventos() EventoStore {
	return NewPostgresEventoStore(c.db)
}

// Health pings the database and checks every table answers a count
func (c *Container) Health(ctx context.Context) error {
	c.log.Debug("Performing container health check...")

	if err := HealthCheck(ctx, c.db); err != nil {
		c.log.Error("Database health check failed", "error", err)
		return fmt.Errorf("database health check failed: %w", err)
	}

	metrics := GetDatabaseMetrics(c.db)
	c.log.Debug("Database connection metrics",
		"open_connections", metrics.OpenConnections,
		"in_use_connections", metrics.InUseConnections,
		"idle_connections", metrics.IdleConnections)

	tables := []domain.Entity{
		&domain.Evento{},
		&domain.Palestrante{},
		&domain.Lote{},
		&domain.RedeSocial{},
		&domain.PalestranteEvento{},
	}

	for _, table := range tables {
		var count int64
		if err := c.db.WithContext(ctx).Table(table.TableName()).Count(&count).Error; err != nil {
			c.log.Error("Table health check failed", "table", table.TableName(), "error", err)
			return fmt.Errorf("table %s health check failed: %w", table.TableName(), err)
		}
		c.log.Debug("Table health check passed", "table", table.TableName(), "rows", count)
	}

	c.log.Debug("Container health check completed successfully")
	return nil
}

// Close gracefully shuts down the container and closes database connections
func (c *Container) Close() error {
	c.log.Info("Closing PostgreSQL repository container...")

	if c.db == nil {
		c.log.Warn("Database connection is nil, nothing to close")
		return nil
	}

	if err := Close(c.db); err != nil {
		c.log.Error("Failed to close database connection", "error", err)
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	c.db = nil

	c.log.Info("PostgreSQL repository container closed successfully")
	return nil
}
