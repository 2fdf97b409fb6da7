package domain

import (
	"time"
)

// Evento is a scheduled event with its ticket lots, social links and speakers
type Evento struct {
	ID         int       `json:"id" gorm:"primaryKey"`
	Local      string    `json:"local"`
	DataEvento time.Time `json:"data_evento" gorm:"not null"`
	Tema       string    `json:"tema" gorm:"not null"`
	QtdPessoas int       `json:"qtd_pessoas"`
	ImagemURL  string    `json:"imagem_url"`
	Telefone   string    `json:"telefone"`
	Email      string    `json:"email"`

	// Relations
	Lotes               []Lote              `json:"lotes,omitempty" gorm:"foreignKey:EventoID;constraint:OnDelete:CASCADE"`
	RedesSociais        []RedeSocial        `json:"redes_sociais,omitempty" gorm:"foreignKey:EventoID;constraint:OnDelete:CASCADE"`
	PalestrantesEventos []PalestranteEvento `json:"palestrantes_eventos,omitempty" gorm:"foreignKey:EventoID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name used by GORM
func (Evento) TableName() string {
	return "eventos"
}

func (e *Evento) PrimaryKey() []int {
	return []int{e.ID}
}

// Palestrantes flattens the join rows into the linked speakers. Join rows
// loaded without their speaker are skipped.
func (e *Evento) Palestrantes() []Palestrante {
	palestrantes := make([]Palestrante, 0, len(e.PalestrantesEventos))
	for _, pe := range e.PalestrantesEventos {
		if pe.Palestrante != nil {
			palestrantes = append(palestrantes, *pe.Palestrante)
		}
	}
	return palestrantes
}

// Lote is a ticket batch. It is owned by exactly one Evento.
type Lote struct {
	ID         int        `json:"id" gorm:"primaryKey"`
	Nome       string     `json:"nome" gorm:"not null"`
	Preco      float64    `json:"preco"`
	DataInicio *time.Time `json:"data_inicio,omitempty"`
	DataFim    *time.Time `json:"data_fim,omitempty"`
	Quantidade int        `json:"quantidade"`
	EventoID   int        `json:"evento_id" gorm:"not null"`
}

// TableName overrides the table name used by GORM
func (Lote) TableName() string {
	return "lotes"
}

func (l *Lote) PrimaryKey() []int {
	return []int{l.ID}
}
