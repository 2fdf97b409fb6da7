package postgres

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/gravadigital/proagil-api/internal/domain"
	"github.com/gravadigital/proagil-api/internal/logger"
)

// Association paths eager-loaded by the reads
const (
	includeLotes               = "Lotes"
	includeRedesSociais        = "RedesSociais"
	includePalestrantesEvento  = "PalestrantesEventos.Palestrante"
	includeEventosPalestrantes = "PalestrantesEventos.Evento"
)

// PostgresProAgilRepository implements ProAgilRepository on top of a UnitOfWork
type PostgresProAgilRepository struct {
	uow *UnitOfWork
	log *log.Logger
}

// NewPostgresProAgilRepository creates a repository with its own unit of work
func NewPostgresProAgilRepository(db *gorm.DB) *PostgresProAgilRepository {
	return NewPostgresProAgilRepositoryWithUnitOfWork(NewUnitOfWork(db))
}

// NewPostgresProAgilRepositoryWithUnitOfWork creates a repository that stages into uow
func NewPostgresProAgilRepositoryWithUnitOfWork(uow *UnitOfWork) *PostgresProAgilRepository {
	return &PostgresProAgilRepository{
		uow: uow,
		log: logger.Repository("proagil"),
	}
}

func (r *PostgresProAgilRepository) Add(entity domain.Entity) {
	r.uow.Add(entity)
}

func (r *PostgresProAgilRepository) Update(entity domain.Entity) {
	r.uow.Update(entity)
}

func (r *PostgresProAgilRepository) Delete(entity domain.Entity) {
	r.uow.Delete(entity)
}

func (r *PostgresProAgilRepository) SaveChanges(ctx context.Context) (bool, error) {
	r.log.Debug("saving changes", "pending", r.uow.Pending(), "tracked", r.uow.Tracked())
	return r.uow.SaveChanges(ctx)
}

// eventos builds the base evento query: lots and links always, speakers on request
func (r *PostgresProAgilRepository) eventos(incluiPalestrantes bool) *Query[domain.Evento, *domain.Evento] {
	return From[domain.Evento](r.uow.DB()).
		Include(includeLotes, includeRedesSociais).
		IncludeIf(incluiPalestrantes, includePalestrantesEvento).
		OrderBy("data_evento", true).
		OrderBy("id", true)
}

// palestrantes builds the base palestrante query: links always, events on request
func (r *PostgresProAgilRepository) palestrantes(incluiEventos bool) *Query[domain.Palestrante, *domain.Palestrante] {
	return From[domain.Palestrante](r.uow.DB()).
		Include(includeRedesSociais).
		IncludeIf(incluiEventos, includeEventosPalestrantes)
}

func (r *PostgresProAgilRepository) GetAllEventos(ctx context.Context, incluiPalestrantes bool) ([]domain.Evento, error) {
	r.log.Debug("retrieving all eventos", "inclui_palestrantes", incluiPalestrantes)

	eventos, err := r.eventos(incluiPalestrantes).ToSlice(ctx)
	if err != nil {
		r.log.Error("Failed to get all eventos", "error", err)
		return nil, fmt.Errorf("failed to get all eventos: %w", err)
	}

	r.log.Debug("Retrieved all eventos", "count", len(eventos))
	return eventos, nil
}

func (r *PostgresProAgilRepository) GetEventoByID(ctx context.Context, eventoID int, incluiPalestrantes bool) (*domain.Evento, error) {
	r.log.Debug("retrieving evento by ID", "evento_id", eventoID, "inclui_palestrantes", incluiPalestrantes)

	evento, err := r.eventos(incluiPalestrantes).WhereEq("id", eventoID).FirstOrNil(ctx)
	if err != nil {
		r.log.Error("Failed to get evento by ID", "evento_id", eventoID, "error", err)
		return nil, fmt.Errorf("failed to get evento by ID: %w", err)
	}

	if evento == nil {
		r.log.Debug("Evento not found", "evento_id", eventoID)
	}
	return evento, nil
}

func (r *PostgresProAgilRepository) GetEventosByTema(ctx context.Context, tema string, incluiPalestrantes bool) ([]domain.Evento, error) {
	r.log.Debug("retrieving eventos by tema", "tema", tema, "inclui_palestrantes", incluiPalestrantes)

	eventos, err := r.eventos(incluiPalestrantes).WhereContains("tema", tema).ToSlice(ctx)
	if err != nil {
		r.log.Error("Failed to get eventos by tema", "tema", tema, "error", err)
		return nil, fmt.Errorf("failed to get eventos by tema: %w", err)
	}

	r.log.Debug("Retrieved eventos by tema", "tema", tema, "count", len(eventos))
	return eventos, nil
}

func (r *PostgresProAgilRepository) GetPalestrantesByNome(ctx context.Context, nome string, incluiEventos bool) ([]domain.Palestrante, error) {
	r.log.Debug("retrieving palestrantes by nome", "nome", nome, "inclui_eventos", incluiEventos)

	palestrantes, err := r.palestrantes(incluiEventos).WhereContains("nome", nome).ToSlice(ctx)
	if err != nil {
		r.log.Error("Failed to get palestrantes by nome", "nome", nome, "error", err)
		return nil, fmt.Errorf("failed to get palestrantes by nome: %w", err)
	}

	r.log.Debug("Retrieved palestrantes by nome", "nome", nome, "count", len(palestrantes))
	return palestrantes, nil
}

func (r *PostgresProAgilRepository) GetPalestranteByID(ctx context.Context, palestranteID int, incluiEventos bool) (*domain.Palestrante, error) {
	r.log.Debug("retrieving palestrante by ID", "palestrante_id", palestranteID, "inclui_eventos", incluiEventos)

	palestrante, err := r.palestrantes(incluiEventos).
		WhereEq("id", palestranteID).
		OrderBy("nome", false).
		FirstOrNil(ctx)
	if err != nil {
		r.log.Error("Failed to get palestrante by ID", "palestrante_id", palestranteID, "error", err)
		return nil, fmt.Errorf("failed to get palestrante by ID: %w", err)
	}

	if palestrante == nil {
		r.log.Debug("Palestrante not found", "palestrante_id", palestranteID)
	}
	return palestrante, nil
}
