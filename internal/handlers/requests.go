package handlers

import (
	"time"

	"github.com/gravadigital/proagil-api/internal/domain"
)

type LoteRequest struct {
	ID         int        `json:"id"`
	Nome       string     `json:"nome" binding:"required,notblank"`
	Preco      float64    `json:"preco" binding:"gte=0"`
	DataInicio *time.Time `json:"data_inicio"`
	DataFim    *time.Time `json:"data_fim"`
	Quantidade int        `json:"quantidade" binding:"gte=0"`
}

type RedeSocialRequest struct {
	ID   int    `json:"id"`
	Nome string `json:"nome" binding:"required,notblank"`
	URL  string `json:"url" binding:"required,url"`
}

type EventoRequest struct {
	Local        string              `json:"local" binding:"required,notblank"`
	DataEvento   time.Time           `json:"data_evento" binding:"required"`
	Tema         string              `json:"tema" binding:"required,notblank"`
	QtdPessoas   int                 `json:"qtd_pessoas"`
	ImagemURL    string              `json:"imagem_url"`
	Telefone     string              `json:"telefone"`
	Email        string              `json:"email"`
	Lotes        []LoteRequest       `json:"lotes" binding:"dive"`
	RedesSociais []RedeSocialRequest `json:"redes_sociais" binding:"dive"`
}

type PalestranteRequest struct {
	Nome          string              `json:"nome" binding:"required,notblank"`
	MiniCurriculo string              `json:"mini_curriculo"`
	ImagemURL     string              `json:"imagem_url"`
	Telefone      string              `json:"telefone"`
	Email         string              `json:"email"`
	RedesSociais  []RedeSocialRequest `json:"redes_sociais" binding:"dive"`
}

// applyTo copies the evento's own columns onto e
func (r EventoRequest) applyTo(e *domain.Evento) {
	e.Local = r.Local
	e.DataEvento = r.DataEvento
	e.Tema = r.Tema
	e.QtdPessoas = r.QtdPessoas
	e.ImagemURL = r.ImagemURL
	e.Telefone = r.Telefone
	e.Email = r.Email
}

// lotes builds the requested lots for the evento with the given id.
// Zero means the evento is new and every lot is inserted with it.
func (r EventoRequest) lotes(eventoID int) []domain.Lote {
	lotes := make([]domain.Lote, 0, len(r.Lotes))
	for _, l := range r.Lotes {
		lote := domain.Lote{
			Nome:       l.Nome,
			Preco:      l.Preco,
			DataInicio: l.DataInicio,
			DataFim:    l.DataFim,
			Quantidade: l.Quantidade,
			EventoID:   eventoID,
		}
		if eventoID != 0 {
			lote.ID = l.ID
		}
		lotes = append(lotes, lote)
	}
	return lotes
}

// newEvento builds a transient evento with its lots and links
func (r EventoRequest) newEvento() *domain.Evento {
	evento := &domain.Evento{}
	r.applyTo(evento)
	evento.Lotes = r.lotes(0)
	evento.RedesSociais = redesSociais(r.RedesSociais, nestedRede)
	return evento
}

func (r PalestranteRequest) applyTo(p *domain.Palestrante) {
	p.Nome = r.Nome
	p.MiniCurriculo = r.MiniCurriculo
	p.ImagemURL = r.ImagemURL
	p.Telefone = r.Telefone
	p.Email = r.Email
}

func (r PalestranteRequest) newPalestrante() *domain.Palestrante {
	palestrante := &domain.Palestrante{}
	r.applyTo(palestrante)
	palestrante.RedesSociais = redesSociais(r.RedesSociais, nestedRede)
	return palestrante
}

// redesSociais converts requested links, building each one with newRede.
// Ids are kept only when the link has an owner; new parents insert every link.
func redesSociais(reqs []RedeSocialRequest, newRede func(nome, url string) *domain.RedeSocial) []domain.RedeSocial {
	redes := make([]domain.RedeSocial, 0, len(reqs))
	for _, r := range reqs {
		rede := newRede(r.Nome, r.URL)
		if rede.EventoID != nil || rede.PalestranteID != nil {
			rede.ID = r.ID
		}
		redes = append(redes, *rede)
	}
	return redes
}

// nestedRede builds a link inserted along with a new parent, which sets the owner key
func nestedRede(nome, url string) *domain.RedeSocial {
	return &domain.RedeSocial{Nome: nome, URL: url}
}

func ownedByEvento(eventoID int) func(nome, url string) *domain.RedeSocial {
	return func(nome, url string) *domain.RedeSocial {
		return domain.NewEventoRedeSocial(eventoID, nome, url)
	}
}

func ownedByPalestrante(palestranteID int) func(nome, url string) *domain.RedeSocial {
	return func(nome, url string) *domain.RedeSocial {
		return domain.NewPalestranteRedeSocial(palestranteID, nome, url)
	}
}
