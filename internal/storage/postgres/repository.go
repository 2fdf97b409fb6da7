package postgres

import (
	"context"

	"github.com/gravadigital/proagil-api/internal/domain"
)

// ProAgilRepository defines the operations over eventos and palestrantes.
// Mutations are staged and only reach the database on SaveChanges.
type ProAgilRepository interface {
	// General
	Add(entity domain.Entity)
	Update(entity domain.Entity)
	Delete(entity domain.Entity)
	SaveChanges(ctx context.Context) (bool, error)

	// Eventos
	GetAllEventos(ctx context.Context, incluiPalestrantes bool) ([]domain.Evento, error)
	GetEventoByID(ctx context.Context, eventoID int, incluiPalestrantes bool) (*domain.Evento, error)
	GetEventosByTema(ctx context.Context, tema string, incluiPalestrantes bool) ([]domain.Evento, error)

	// Palestrantes
	GetPalestrantesByNome(ctx context.Context, nome string, incluiEventos bool) ([]domain.Palestrante, error)
	GetPalestranteByID(ctx context.Context, palestranteID int, incluiEventos bool) (*domain.Palestrante, error)
}

// EventoStore reads eventos straight from the database, without the repository
type EventoStore interface {
	ListEventos(ctx context.Context) ([]domain.Evento, error)
	FindEvento(ctx context.Context, id int) (*domain.Evento, error)
}

// RepositoryContainer hands out per-request repositories over a shared pool
type RepositoryContainer interface {
	Repository() ProAgilRepository
	Eventos() EventoStore
	Health(ctx context.Context) error
	Close() error
}
