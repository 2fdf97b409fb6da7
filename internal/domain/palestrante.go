package domain

// Palestrante is a speaker who can take part in many eventos
type Palestrante struct {
	ID            int    `json:"id" gorm:"primaryKey"`
	Nome          string `json:"nome" gorm:"not null"`
	MiniCurriculo string `json:"mini_curriculo"`
	ImagemURL     string `json:"imagem_url"`
	Telefone      string `json:"telefone"`
	Email         string `json:"email"`

	// Relations
	RedesSociais        []RedeSocial        `json:"redes_sociais,omitempty" gorm:"foreignKey:PalestranteID;constraint:OnDelete:CASCADE"`
	PalestrantesEventos []PalestranteEvento `json:"palestrantes_eventos,omitempty" gorm:"foreignKey:PalestranteID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name used by GORM
func (Palestrante) TableName() string {
	return "palestrantes"
}

func (p *Palestrante) PrimaryKey() []int {
	return []int{p.ID}
}

// Eventos flattens the join rows into the linked events
func (p *Palestrante) Eventos() []Evento {
	eventos := make([]Evento, 0, len(p.PalestrantesEventos))
	for _, pe := range p.PalestrantesEventos {
		if pe.Evento != nil {
			eventos = append(eventos, *pe.Evento)
		}
	}
	return eventos
}

// PalestranteEvento links a Palestrante to an Evento. The pair is the key.
type PalestranteEvento struct {
	PalestranteID int          `json:"palestrante_id" gorm:"primaryKey;autoIncrement:false"`
	Palestrante   *Palestrante `json:"palestrante,omitempty" gorm:"foreignKey:PalestranteID;constraint:OnDelete:CASCADE"`
	EventoID      int          `json:"evento_id" gorm:"primaryKey;autoIncrement:false"`
	Evento        *Evento      `json:"evento,omitempty" gorm:"foreignKey:EventoID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name used by GORM
func (PalestranteEvento) TableName() string {
	return "palestrantes_eventos"
}

func (pe *PalestranteEvento) PrimaryKey() []int {
	return []int{pe.PalestranteID, pe.EventoID}
}

// NewPalestranteEvento builds the join row for an existing speaker and event
func NewPalestranteEvento(palestranteID, eventoID int) *PalestranteEvento {
	return &PalestranteEvento{
		PalestranteID: palestranteID,
		EventoID:      eventoID,
	}
}
