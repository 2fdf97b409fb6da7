package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/gravadigital/proagil-api/internal/logger"
	"github.com/gravadigital/proagil-api/internal/response"
	"github.com/gravadigital/proagil-api/internal/storage/postgres"
	"github.com/gravadigital/proagil-api/internal/storage/storeerr"
)

// StoreHandler serves evento rows read straight from the database, with no
// related records and no unit of work.
type StoreHandler struct {
	store postgres.EventoStore
	log   *log.Logger
}

func NewStoreHandler(store postgres.EventoStore) *StoreHandler {
	return &StoreHandler{
		store: store,
		log:   logger.Handler("store"),
	}
}

// ListEventos handles GET /api/store/eventos
func (h *StoreHandler) ListEventos(c *gin.Context) {
	eventos, err := h.store.ListEventos(c.Request.Context())
	if err != nil {
		status := response.StoreError(c, "Database failure", err)
		h.log.Error("Failed to list eventos", "status", status, "error", err)
		return
	}

	response.ListResponse(c, eventos)
}

// GetEvento handles GET /api/store/eventos/{id}
func (h *StoreHandler) GetEvento(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	evento, err := h.store.FindEvento(c.Request.Context(), id)
	if err != nil {
		status := response.StoreError(c, "Database failure", err)
		if storeerr.KindOf(err) == storeerr.NotFound {
			h.log.Debug("Evento not found", "evento_id", id)
			return
		}
		h.log.Error("Failed to find evento", "evento_id", id, "status", status, "error", err)
		return
	}

	response.SuccessResponse(c, http.StatusOK, "", evento)
}
