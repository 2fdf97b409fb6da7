package postgres

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/gravadigital/proagil-api/internal/domain"
	"github.com/gravadigital/proagil-api/internal/logger"
)

// PostgresEventoStore reads bare evento rows without children or tracking
type PostgresEventoStore struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresEventoStore creates a direct evento reader
func NewPostgresEventoStore(db *gorm.DB) *PostgresEventoStore {
	return &PostgresEventoStore{
		db:  db,
		log: logger.Repository("evento_store"),
	}
}

func (s *PostgresEventoStore) ListEventos(ctx context.Context) ([]domain.Evento, error) {
	eventos := make([]domain.Evento, 0)
	if err := s.db.WithContext(ctx).Find(&eventos).Error; err != nil {
		s.log.Error("Failed to list eventos", "error", err)
		return nil, fmt.Errorf("failed to list eventos: %w", err)
	}

	s.log.Debug("Listed eventos", "count", len(eventos))
	return eventos, nil
}

// FindEvento returns the evento with the given id. A missing row is an error
// wrapping gorm.ErrRecordNotFound.
func (s *PostgresEventoStore) FindEvento(ctx context.Context, id int) (*domain.Evento, error) {
	var evento domain.Evento
	if err := s.db.WithContext(ctx).First(&evento, id).Error; err != nil {
		s.log.Debug("Failed to find evento", "id", id, "error", err)
		return nil, fmt.Errorf("failed to find evento %d: %w", id, err)
	}
	return &evento, nil
}
