package domain

import "fmt"

// RedeSocial is a social-media link owned by either an Evento or a Palestrante
type RedeSocial struct {
	ID            int    `json:"id" gorm:"primaryKey"`
	Nome          string `json:"nome" gorm:"not null"`
	URL           string `json:"url" gorm:"column:url;not null"`
	EventoID      *int   `json:"evento_id,omitempty"`
	PalestranteID *int   `json:"palestrante_id,omitempty"`
}

// TableName overrides the table name used by GORM
func (RedeSocial) TableName() string {
	return "redes_sociais"
}

func (r *RedeSocial) PrimaryKey() []int {
	return []int{r.ID}
}

// NewEventoRedeSocial creates a link owned by an event
func NewEventoRedeSocial(eventoID int, nome, url string) *RedeSocial {
	return &RedeSocial{Nome: nome, URL: url, EventoID: &eventoID}
}

// NewPalestranteRedeSocial creates a link owned by a speaker
func NewPalestranteRedeSocial(palestranteID int, nome, url string) *RedeSocial {
	return &RedeSocial{Nome: nome, URL: url, PalestranteID: &palestranteID}
}

// ValidateOwner checks that exactly one owner is set. Links nested inside
// an Evento or Palestrante being added get their owner from the parent, so
// this only applies to links staged on their own.
func (r *RedeSocial) ValidateOwner() error {
	switch {
	case r.EventoID != nil && r.PalestranteID != nil:
		return fmt.Errorf("rede social %q cannot belong to both an evento and a palestrante", r.Nome)
	case r.EventoID == nil && r.PalestranteID == nil:
		return fmt.Errorf("rede social %q must belong to an evento or a palestrante", r.Nome)
	}
	return nil
}
