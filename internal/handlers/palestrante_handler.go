package handlers

import (
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/gravadigital/proagil-api/internal/logger"
	"github.com/gravadigital/proagil-api/internal/response"
	"github.com/gravadigital/proagil-api/internal/storage/objectstore"
	"github.com/gravadigital/proagil-api/internal/validation"
)

type PalestranteHandler struct {
	newRepo      RepositoryFactory
	images       objectstore.ImageStore
	maxImageSize int64
	validate     validation.PalestranteValidation
	log          *log.Logger
}

func NewPalestranteHandler(newRepo RepositoryFactory, images objectstore.ImageStore, maxImageSize int64) *PalestranteHandler {
	return &PalestranteHandler{
		newRepo:      newRepo,
		images:       images,
		maxImageSize: maxImageSize,
		log:          logger.Handler("palestrante"),
	}
}

// GetPalestrantes handles GET /api/palestrantes?nome=
func (h *PalestranteHandler) GetPalestrantes(c *gin.Context) {
	nome := c.Query("nome")
	if err := validation.ValidateSearchTerm(nome, "nome"); err != nil {
		response.BadRequestError(c, "Invalid nome", err)
		return
	}
	incluiEventos, ok := queryFlag(c, "incluiEventos")
	if !ok {
		return
	}

	palestrantes, err := h.newRepo().GetPalestrantesByNome(c.Request.Context(), nome, incluiEventos)
	if err != nil {
		response.StoreError(c, "Failed to retrieve palestrantes", err)
		return
	}

	response.ListResponse(c, palestrantes)
}

// GetPalestranteByID handles GET /api/palestrantes/{id}
func (h *PalestranteHandler) GetPalestranteByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	incluiEventos, ok := queryFlag(c, "incluiEventos")
	if !ok {
		return
	}

	palestrante, err := h.newRepo().GetPalestranteByID(c.Request.Context(), id, incluiEventos)
	if err != nil {
		response.StoreError(c, "Failed to retrieve palestrante", err)
		return
	}
	if palestrante == nil {
		response.NotFoundError(c, "Palestrante not found")
		return
	}

	response.SuccessResponse(c, http.StatusOK, "", palestrante)
}

// CreatePalestrante handles POST /api/palestrantes
func (h *PalestranteHandler) CreatePalestrante(c *gin.Context) {
	var req PalestranteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload", err)
		return
	}

	palestrante := req.newPalestrante()
	if err := h.validate.Validate(palestrante); err != nil {
		response.BadRequestError(c, "Invalid palestrante", err)
		return
	}

	repo := h.newRepo()
	repo.Add(palestrante)
	if !saveChanges(c, repo, h.log, "Failed to create palestrante") {
		return
	}

	h.log.Info("Palestrante created", "palestrante_id", palestrante.ID)
	c.Header("Location", "/api/palestrantes/"+strconv.Itoa(palestrante.ID))
	response.SuccessResponse(c, http.StatusCreated, "Palestrante created", palestrante)
}

// UpdatePalestrante handles PUT /api/palestrantes/{id}
func (h *PalestranteHandler) UpdatePalestrante(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req PalestranteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload", err)
		return
	}

	repo := h.newRepo()
	palestrante, err := repo.GetPalestranteByID(c.Request.Context(), id, false)
	if err != nil {
		response.StoreError(c, "Failed to retrieve palestrante", err)
		return
	}
	if palestrante == nil {
		response.NotFoundError(c, "Palestrante not found")
		return
	}

	stored := *palestrante
	req.applyTo(palestrante)
	palestrante.RedesSociais = redesSociais(req.RedesSociais, ownedByPalestrante(id))

	if err := h.validate.Validate(palestrante); err != nil {
		response.BadRequestError(c, "Invalid palestrante", err)
		return
	}

	repo.Update(palestrante)
	if err := stageChildren(repo, stored.RedesSociais, palestrante.RedesSociais); err != nil {
		response.BadRequestError(c, "Invalid redes_sociais", err)
		return
	}

	if !saveChanges(c, repo, h.log, "Failed to update palestrante") {
		return
	}

	h.log.Info("Palestrante updated", "palestrante_id", id)
	response.SuccessResponse(c, http.StatusOK, "Palestrante updated", palestrante)
}

// DeletePalestrante handles DELETE /api/palestrantes/{id}
func (h *PalestranteHandler) DeletePalestrante(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	repo := h.newRepo()
	palestrante, err := repo.GetPalestranteByID(c.Request.Context(), id, false)
	if err != nil {
		response.StoreError(c, "Failed to retrieve palestrante", err)
		return
	}
	if palestrante == nil {
		response.NotFoundError(c, "Palestrante not found")
		return
	}

	repo.Delete(palestrante)
	if !saveChanges(c, repo, h.log, "Failed to delete palestrante") {
		return
	}

	h.log.Info("Palestrante deleted", "palestrante_id", id)
	response.SuccessResponse(c, http.StatusOK, "Palestrante deleted", nil)
}

// UploadImagem handles POST /api/palestrantes/{id}/imagem
func (h *PalestranteHandler) UploadImagem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	repo := h.newRepo()
	palestrante, err := repo.GetPalestranteByID(c.Request.Context(), id, false)
	if err != nil {
		response.StoreError(c, "Failed to retrieve palestrante", err)
		return
	}
	if palestrante == nil {
		response.NotFoundError(c, "Palestrante not found")
		return
	}

	url, ok := uploadImage(c, h.log, h.images, h.maxImageSize, "palestrantes/"+strconv.Itoa(id))
	if !ok {
		return
	}

	palestrante.ImagemURL = url
	repo.Update(palestrante)
	if !saveChanges(c, repo, h.log, "Failed to update palestrante imagem") {
		return
	}

	response.SuccessResponse(c, http.StatusOK, "Imagem uploaded", gin.H{"imagem_url": url})
}
