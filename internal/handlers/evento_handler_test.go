package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/proagil-api/internal/domain"
	"github.com/gravadigital/proagil-api/internal/storage/objectstore"
)

const maxTestImageSize = 1 << 20

func newEventoRouter(repo *fakeRepository, images objectstore.ImageStore) *gin.Engine {
	router := gin.New()
	RegisterRoutes(router.Group("/api"),
		NewEventoHandler(repo.factory(), images, maxTestImageSize),
		NewPalestranteHandler(repo.factory(), images, maxTestImageSize),
		NewStoreHandler(&fakeEventoStore{}),
	)
	return router
}

func seededRepository() *fakeRepository {
	repo := newFakeRepository()
	eventoID := 1
	repo.eventos = []domain.Evento{
		{
			ID:         1,
			Local:      "Recife",
			DataEvento: time.Date(2026, time.November, 5, 19, 0, 0, 0, time.UTC),
			Tema:       "Go na prática",
			QtdPessoas: 120,
			Lotes: []domain.Lote{
				{ID: 1, Nome: "Primeiro lote", Preco: 50, Quantidade: 100, EventoID: 1},
				{ID: 2, Nome: "Segundo lote", Preco: 80, Quantidade: 100, EventoID: 1},
			},
			RedesSociais: []domain.RedeSocial{
				{ID: 7, Nome: "Instagram", URL: "https://instagram.com/gonapratica", EventoID: &eventoID},
			},
		},
		{
			ID:         2,
			Local:      "Natal",
			DataEvento: time.Date(2026, time.October, 1, 19, 0, 0, 0, time.UTC),
			Tema:       "Angular avançado",
			QtdPessoas: 80,
		},
	}
	repo.palestrantes = []domain.Palestrante{{ID: 3, Nome: "Ana Souza"}}
	return repo
}

func eventoPayload() map[string]any {
	return map[string]any{
		"local":       "Recife",
		"data_evento": "2026-11-05T19:00:00Z",
		"tema":        "Go na prática",
		"qtd_pessoas": 120,
		"lotes": []map[string]any{
			{"nome": "Primeiro lote", "preco": 50, "quantidade": 100},
		},
		"redes_sociais": []map[string]any{
			{"nome": "Instagram", "url": "https://instagram.com/gonapratica"},
		},
	}
}

func TestGetAllEventos(t *testing.T) {
	repo := seededRepository()
	router := newEventoRouter(repo, nil)

	w, env := perform(t, router, http.MethodGet, "/api/eventos?incluiPalestrantes=true", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, repo.lastInclude)
	require.NotNil(t, env.Count)
	assert.Equal(t, 2, *env.Count)
}

func TestGetAllEventosRejectsBadFlag(t *testing.T) {
	router := newEventoRouter(seededRepository(), nil)

	w, env := perform(t, router, http.MethodGet, "/api/eventos?incluiPalestrantes=sim", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Details, "incluiPalestrantes")
}

func TestGetAllEventosMapsStoreErrors(t *testing.T) {
	repo := seededRepository()
	repo.readErr = &pgconn.PgError{Code: "57P01", Message: "terminating connection"}
	router := newEventoRouter(repo, nil)

	w, env := perform(t, router, http.MethodGet, "/api/eventos", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unavailable", env.Kind)
	assert.Contains(t, env.Details, "terminating connection")
}

func TestGetEventoByID(t *testing.T) {
	router := newEventoRouter(seededRepository(), nil)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"found", "/api/eventos/1", http.StatusOK},
		{"missing", "/api/eventos/99", http.StatusNotFound},
		{"not a number", "/api/eventos/abc", http.StatusBadRequest},
		{"zero", "/api/eventos/0", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := perform(t, router, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestGetEventoByIDOmitsSpeakersWhenNotRequested(t *testing.T) {
	repo := seededRepository()
	router := newEventoRouter(repo, nil)

	w, env := perform(t, router, http.MethodGet, "/api/eventos/1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, repo.lastInclude)
	assert.NotContains(t, string(env.Data), "palestrantes_eventos")
	evento := decodeData[domain.Evento](t, env)
	assert.Len(t, evento.Lotes, 2)
}

func TestGetEventosByTema(t *testing.T) {
	repo := seededRepository()
	router := newEventoRouter(repo, nil)

	w, env := perform(t, router, http.MethodGet, "/api/eventos/tema/ANGULAR", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ANGULAR", repo.lastTerm)
	eventos := decodeData[[]domain.Evento](t, env)
	require.Len(t, eventos, 1)
	assert.Equal(t, 2, eventos[0].ID)
}

func TestCreateEvento(t *testing.T) {
	repo := newFakeRepository()
	router := newEventoRouter(repo, nil)

	w, env := perform(t, router, http.MethodPost, "/api/eventos", eventoPayload())

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, repo.added, 1)
	evento, ok := repo.added[0].(*domain.Evento)
	require.True(t, ok)
	assert.Len(t, evento.Lotes, 1)
	assert.Len(t, evento.RedesSociais, 1)
	assert.Equal(t, "/api/eventos/101", w.Header().Get("Location"))
	assert.Equal(t, 101, decodeData[domain.Evento](t, env).ID)
}

func TestCreateEventoRejectsInvalidPayloads(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]any)
		detail string
	}{
		{"missing tema", func(p map[string]any) { delete(p, "tema") }, "Tema"},
		{"blank tema", func(p map[string]any) { p["tema"] = "   " }, "notblank"},
		{"short tema", func(p map[string]any) { p["tema"] = "Go" }, "tema must be at least 3"},
		{"capacity", func(p map[string]any) { p["qtd_pessoas"] = 500000 }, "qtd_pessoas"},
		{"bad link", func(p map[string]any) {
			p["redes_sociais"] = []map[string]any{{"nome": "Site", "url": "nope"}}
		}, "URL"},
		{"negative price", func(p map[string]any) {
			p["lotes"] = []map[string]any{{"nome": "Promo", "preco": -1}}
		}, "Preco"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			router := newEventoRouter(repo, nil)
			payload := eventoPayload()
			tt.mutate(payload)

			w, env := perform(t, router, http.MethodPost, "/api/eventos", payload)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, env.Details, tt.detail)
			assert.Zero(t, repo.saves)
		})
	}
}

func TestCreateEventoConflict(t *testing.T) {
	repo := newFakeRepository()
	repo.saveErr = &pgconn.PgError{Code: "23505", ConstraintName: "eventos_pkey"}
	router := newEventoRouter(repo, nil)

	w, env := perform(t, router, http.MethodPost, "/api/eventos", eventoPayload())

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "conflict", env.Kind)
}

func TestUpdateEventoSyncsChildren(t *testing.T) {
	repo := seededRepository()
	router := newEventoRouter(repo, nil)

	payload := eventoPayload()
	payload["tema"] = "Go em produção"
	payload["lotes"] = []map[string]any{
		{"id": 1, "nome": "Primeiro lote", "preco": 60, "quantidade": 100},
		{"nome": "Lote final", "preco": 120, "quantidade": 20},
	}
	payload["redes_sociais"] = []map[string]any{}

	w, env := perform(t, router, http.MethodPut, "/api/eventos/1", payload)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.Len(t, repo.updated, 2)
	evento, ok := repo.updated[0].(*domain.Evento)
	require.True(t, ok)
	assert.Equal(t, 1, evento.ID)
	assert.Equal(t, "Go em produção", evento.Tema)
	lote, ok := repo.updated[1].(*domain.Lote)
	require.True(t, ok)
	assert.Equal(t, 1, lote.ID)
	assert.Equal(t, 60.0, lote.Preco)
	assert.Equal(t, 1, lote.EventoID)

	require.Len(t, repo.added, 1)
	assert.Equal(t, "Lote final", repo.added[0].(*domain.Lote).Nome)

	require.Len(t, repo.deleted, 2)
	assert.Equal(t, 2, repo.deleted[0].(*domain.Lote).ID)
	assert.Equal(t, 7, repo.deleted[1].(*domain.RedeSocial).ID)

	updated := decodeData[domain.Evento](t, env)
	assert.Len(t, updated.Lotes, 2)
}

func TestUpdateEventoRejectsForeignChild(t *testing.T) {
	repo := seededRepository()
	router := newEventoRouter(repo, nil)

	payload := eventoPayload()
	payload["lotes"] = []map[string]any{{"id": 99, "nome": "Outro evento"}}

	w, env := perform(t, router, http.MethodPut, "/api/eventos/1", payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Details, "lotes 99 does not belong")
	assert.Zero(t, repo.saves)
}

func TestUpdateEventoNotFound(t *testing.T) {
	router := newEventoRouter(seededRepository(), nil)

	w, _ := perform(t, router, http.MethodPut, "/api/eventos/99", eventoPayload())

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteEvento(t *testing.T) {
	repo := seededRepository()
	router := newEventoRouter(repo, nil)

	w, _ := perform(t, router, http.MethodDelete, "/api/eventos/2", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, repo.deleted, 1)
	assert.Equal(t, 2, repo.deleted[0].(*domain.Evento).ID)

	w, _ = perform(t, router, http.MethodDelete, "/api/eventos/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteEventoNothingSaved(t *testing.T) {
	repo := seededRepository()
	repo.noRows = true
	router := newEventoRouter(repo, nil)

	w, env := perform(t, router, http.MethodDelete, "/api/eventos/2", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No changes were saved", env.Error)
}

func TestAddPalestrante(t *testing.T) {
	repo := seededRepository()
	router := newEventoRouter(repo, nil)

	w, _ := perform(t, router, http.MethodPost, "/api/eventos/1/palestrantes/3", nil)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.added, 1)
	assert.Equal(t, domain.NewPalestranteEvento(3, 1), repo.added[0])
}

func TestAddPalestranteMissingSpeaker(t *testing.T) {
	repo := seededRepository()
	router := newEventoRouter(repo, nil)

	w, env := perform(t, router, http.MethodPost, "/api/eventos/1/palestrantes/42", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Palestrante not found", env.Error)
	assert.Empty(t, repo.added)
}

func TestAddPalestranteAlreadyLinked(t *testing.T) {
	repo := seededRepository()
	repo.saveErr = &pgconn.PgError{Code: "23505", ConstraintName: "palestrantes_eventos_pkey"}
	router := newEventoRouter(repo, nil)

	w, _ := perform(t, router, http.MethodPost, "/api/eventos/1/palestrantes/3", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAddPalestranteRejectsExistingLink(t *testing.T) {
	repo := seededRepository()
	repo.eventos[0].PalestrantesEventos = []domain.PalestranteEvento{*domain.NewPalestranteEvento(3, 1)}
	router := newEventoRouter(repo, nil)

	w, env := perform(t, router, http.MethodPost, "/api/eventos/1/palestrantes/3", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Palestrante already linked to this evento", env.Error)
	assert.True(t, repo.lastInclude)
	assert.Empty(t, repo.added)
	assert.Zero(t, repo.saves)
}

func TestRemovePalestrante(t *testing.T) {
	repo := seededRepository()
	router := newEventoRouter(repo, nil)

	w, _ := perform(t, router, http.MethodDelete, "/api/eventos/1/palestrantes/3", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.NewPalestranteEvento(3, 1), repo.deleted[0])

	repo.noRows = true
	w, _ = perform(t, router, http.MethodDelete, "/api/eventos/1/palestrantes/3", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func imageRequest(t *testing.T, path, contentType string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="capa.PNG"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadEventoImagem(t *testing.T) {
	repo := seededRepository()
	images := &fakeImageStore{}
	router := newEventoRouter(repo, images)

	w, env := serve(t, router, imageRequest(t, "/api/eventos/1/imagem", "image/png", []byte("png-bytes")))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, images.uploaded, 1)
	for name, data := range images.uploaded {
		assert.Regexp(t, `^eventos/1/[0-9a-f-]{36}\.png$`, name)
		assert.Equal(t, []byte("png-bytes"), data)
	}

	require.Len(t, repo.updated, 1)
	evento := repo.updated[0].(*domain.Evento)
	assert.Contains(t, evento.ImagemURL, "http://images.local/proagil-imagens/eventos/1/")
	assert.Contains(t, string(env.Data), evento.ImagemURL)
}

func TestUploadEventoImagemRejections(t *testing.T) {
	t.Run("storage disabled", func(t *testing.T) {
		router := newEventoRouter(seededRepository(), nil)
		w, _ := serve(t, router, imageRequest(t, "/api/eventos/1/imagem", "image/png", []byte("x")))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("wrong type", func(t *testing.T) {
		router := newEventoRouter(seededRepository(), &fakeImageStore{})
		w, _ := serve(t, router, imageRequest(t, "/api/eventos/1/imagem", "application/pdf", []byte("x")))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("too large", func(t *testing.T) {
		router := newEventoRouter(seededRepository(), &fakeImageStore{})
		w, _ := serve(t, router, imageRequest(t, "/api/eventos/1/imagem", "image/png", make([]byte, maxTestImageSize+1)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown evento", func(t *testing.T) {
		images := &fakeImageStore{}
		router := newEventoRouter(seededRepository(), images)
		w, _ := serve(t, router, imageRequest(t, "/api/eventos/99/imagem", "image/png", []byte("x")))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, images.uploaded)
	})
}
