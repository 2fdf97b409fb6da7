package handlers

import (
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/gravadigital/proagil-api/internal/domain"
	"github.com/gravadigital/proagil-api/internal/logger"
	"github.com/gravadigital/proagil-api/internal/response"
	"github.com/gravadigital/proagil-api/internal/storage/objectstore"
	"github.com/gravadigital/proagil-api/internal/validation"
)

type EventoHandler struct {
	newRepo      RepositoryFactory
	images       objectstore.ImageStore
	maxImageSize int64
	validate     validation.EventoValidation
	log          *log.Logger
}

// NewEventoHandler creates the evento handler. images may be nil, in which
// case image uploads answer 503.
func NewEventoHandler(newRepo RepositoryFactory, images objectstore.ImageStore, maxImageSize int64) *EventoHandler {
	return &EventoHandler{
		newRepo:      newRepo,
		images:       images,
		maxImageSize: maxImageSize,
		log:          logger.Handler("evento"),
	}
}

// GetAllEventos handles GET /api/eventos
func (h *EventoHandler) GetAllEventos(c *gin.Context) {
	incluiPalestrantes, ok := queryFlag(c, "incluiPalestrantes")
	if !ok {
		return
	}

	eventos, err := h.newRepo().GetAllEventos(c.Request.Context(), incluiPalestrantes)
	if err != nil {
		response.StoreError(c, "Failed to retrieve eventos", err)
		return
	}

	response.ListResponse(c, eventos)
}

// GetEventoByID handles GET /api/eventos/{id}
func (h *EventoHandler) GetEventoByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	incluiPalestrantes, ok := queryFlag(c, "incluiPalestrantes")
	if !ok {
		return
	}

	evento, err := h.newRepo().GetEventoByID(c.Request.Context(), id, incluiPalestrantes)
	if err != nil {
		response.StoreError(c, "Failed to retrieve evento", err)
		return
	}
	if evento == nil {
		response.NotFoundError(c, "Evento not found")
		return
	}

	response.SuccessResponse(c, http.StatusOK, "", evento)
}

// GetEventosByTema handles GET /api/eventos/tema/{tema}
func (h *EventoHandler) GetEventosByTema(c *gin.Context) {
	tema := c.Param("tema")
	if err := validation.ValidateSearchTerm(tema, "tema"); err != nil {
		response.BadRequestError(c, "Invalid tema", err)
		return
	}
	incluiPalestrantes, ok := queryFlag(c, "incluiPalestrantes")
	if !ok {
		return
	}

	eventos, err := h.newRepo().GetEventosByTema(c.Request.Context(), tema, incluiPalestrantes)
	if err != nil {
		response.StoreError(c, "Failed to retrieve eventos", err)
		return
	}

	response.ListResponse(c, eventos)
}

// CreateEvento handles POST /api/eventos
func (h *EventoHandler) CreateEvento(c *gin.Context) {
	var req EventoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload", err)
		return
	}

	evento := req.newEvento()
	if err := h.validate.Validate(evento); err != nil {
		response.BadRequestError(c, "Invalid evento", err)
		return
	}

	repo := h.newRepo()
	repo.Add(evento)
	if !saveChanges(c, repo, h.log, "Failed to create evento") {
		return
	}

	h.log.Info("Evento created", "evento_id", evento.ID, "lotes", len(evento.Lotes))
	c.Header("Location", "/api/eventos/"+strconv.Itoa(evento.ID))
	response.SuccessResponse(c, http.StatusCreated, "Evento created", evento)
}

// UpdateEvento handles PUT /api/eventos/{id}. Lots and links in the body
// replace the stored ones: new entries are inserted, missing ones deleted.
func (h *EventoHandler) UpdateEvento(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req EventoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload", err)
		return
	}

	repo := h.newRepo()
	evento, err := repo.GetEventoByID(c.Request.Context(), id, false)
	if err != nil {
		response.StoreError(c, "Failed to retrieve evento", err)
		return
	}
	if evento == nil {
		response.NotFoundError(c, "Evento not found")
		return
	}

	stored := *evento
	req.applyTo(evento)
	evento.Lotes = req.lotes(id)
	evento.RedesSociais = redesSociais(req.RedesSociais, ownedByEvento(id))

	if err := h.validate.Validate(evento); err != nil {
		response.BadRequestError(c, "Invalid evento", err)
		return
	}

	repo.Update(evento)
	if err := stageChildren(repo, stored.Lotes, evento.Lotes); err != nil {
		response.BadRequestError(c, "Invalid lotes", err)
		return
	}
	if err := stageChildren(repo, stored.RedesSociais, evento.RedesSociais); err != nil {
		response.BadRequestError(c, "Invalid redes_sociais", err)
		return
	}

	if !saveChanges(c, repo, h.log, "Failed to update evento") {
		return
	}

	h.log.Info("Evento updated", "evento_id", id)
	response.SuccessResponse(c, http.StatusOK, "Evento updated", evento)
}

// DeleteEvento handles DELETE /api/eventos/{id}
func (h *EventoHandler) DeleteEvento(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	repo := h.newRepo()
	evento, err := repo.GetEventoByID(c.Request.Context(), id, false)
	if err != nil {
		response.StoreError(c, "Failed to retrieve evento", err)
		return
	}
	if evento == nil {
		response.NotFoundError(c, "Evento not found")
		return
	}

	repo.Delete(evento)
	if !saveChanges(c, repo, h.log, "Failed to delete evento") {
		return
	}

	h.log.Info("Evento deleted", "evento_id", id)
	response.SuccessResponse(c, http.StatusOK, "Evento deleted", nil)
}

// UploadImagem handles POST /api/eventos/{id}/imagem
func (h *EventoHandler) UploadImagem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	repo := h.newRepo()
	evento, err := repo.GetEventoByID(c.Request.Context(), id, false)
	if err != nil {
		response.StoreError(c, "Failed to retrieve evento", err)
		return
	}
	if evento == nil {
		response.NotFoundError(c, "Evento not found")
		return
	}

	url, ok := uploadImage(c, h.log, h.images, h.maxImageSize, "eventos/"+strconv.Itoa(id))
	if !ok {
		return
	}

	evento.ImagemURL = url
	repo.Update(evento)
	if !saveChanges(c, repo, h.log, "Failed to update evento imagem") {
		return
	}

	response.SuccessResponse(c, http.StatusOK, "Imagem uploaded", gin.H{"imagem_url": url})
}

// AddPalestrante handles POST /api/eventos/{id}/palestrantes/{palestranteId}
func (h *EventoHandler) AddPalestrante(c *gin.Context) {
	eventoID, ok := pathID(c, "id")
	if !ok {
		return
	}
	palestranteID, ok := pathID(c, "palestranteId")
	if !ok {
		return
	}

	repo := h.newRepo()
	ctx := c.Request.Context()

	evento, err := repo.GetEventoByID(ctx, eventoID, true)
	if err != nil {
		response.StoreError(c, "Failed to retrieve evento", err)
		return
	}
	if evento == nil {
		response.NotFoundError(c, "Evento not found")
		return
	}
	for _, pe := range evento.PalestrantesEventos {
		if pe.PalestranteID == palestranteID {
			response.ConflictError(c, "Palestrante already linked to this evento")
			return
		}
	}

	palestrante, err := repo.GetPalestranteByID(ctx, palestranteID, false)
	if err != nil {
		response.StoreError(c, "Failed to retrieve palestrante", err)
		return
	}
	if palestrante == nil {
		response.NotFoundError(c, "Palestrante not found")
		return
	}

	link := domain.NewPalestranteEvento(palestranteID, eventoID)
	repo.Add(link)
	if !saveChanges(c, repo, h.log, "Failed to link palestrante") {
		return
	}

	h.log.Info("Palestrante linked", "evento_id", eventoID, "palestrante_id", palestranteID)
	response.SuccessResponse(c, http.StatusCreated, "Palestrante linked", link)
}

// RemovePalestrante handles DELETE /api/eventos/{id}/palestrantes/{palestranteId}
func (h *EventoHandler) RemovePalestrante(c *gin.Context) {
	eventoID, ok := pathID(c, "id")
	if !ok {
		return
	}
	palestranteID, ok := pathID(c, "palestranteId")
	if !ok {
		return
	}

	repo := h.newRepo()
	repo.Delete(domain.NewPalestranteEvento(palestranteID, eventoID))

	removed, err := repo.SaveChanges(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to unlink palestrante", "evento_id", eventoID, "palestrante_id", palestranteID, "error", err)
		response.StoreError(c, "Failed to unlink palestrante", err)
		return
	}
	if !removed {
		response.NotFoundError(c, "Palestrante is not linked to this evento")
		return
	}

	h.log.Info("Palestrante unlinked", "evento_id", eventoID, "palestrante_id", palestranteID)
	response.SuccessResponse(c, http.StatusOK, "Palestrante unlinked", nil)
}
