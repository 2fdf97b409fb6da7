package migrations

import "github.com/gravadigital/proagil-api/internal/domain"

// AllModels returns every persisted entity, parents before children
func AllModels() []any {
	return []any{
		&domain.Evento{},
		&domain.Palestrante{},
		&domain.Lote{},
		&domain.RedeSocial{},
		&domain.PalestranteEvento{},
	}
}

// Tables lists the tables created by AllModels, children first so they can be dropped in order
func Tables() []string {
	return []string{
		domain.PalestranteEvento{}.TableName(),
		domain.RedeSocial{}.TableName(),
		domain.Lote{}.TableName(),
		domain.Palestrante{}.TableName(),
		domain.Evento{}.TableName(),
	}
}
