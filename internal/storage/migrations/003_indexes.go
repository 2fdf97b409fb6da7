package migrations

import "gorm.io/gorm"

// migration003Up creates the indexes behind the read queries
func migration003Up(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_eventos_data_evento ON eventos(data_evento DESC, id DESC)",
		"CREATE INDEX IF NOT EXISTS idx_eventos_tema_lower ON eventos(LOWER(tema))",

		"CREATE INDEX IF NOT EXISTS idx_palestrantes_nome_lower ON palestrantes(LOWER(nome))",

		"CREATE INDEX IF NOT EXISTS idx_lotes_evento ON lotes(evento_id)",

		"CREATE INDEX IF NOT EXISTS idx_redes_sociais_evento ON redes_sociais(evento_id)",
		"CREATE INDEX IF NOT EXISTS idx_redes_sociais_palestrante ON redes_sociais(palestrante_id)",

		"CREATE INDEX IF NOT EXISTS idx_palestrantes_eventos_evento ON palestrantes_eventos(evento_id)",
	}

	for _, indexSQL := range indexes {
		if err := db.Exec(indexSQL).Error; err != nil {
			return err
		}
	}

	return nil
}

// migration003Down drops the indexes
func migration003Down(db *gorm.DB) error {
	indexes := []string{
		"idx_eventos_data_evento",
		"idx_eventos_tema_lower",
		"idx_palestrantes_nome_lower",
		"idx_lotes_evento",
		"idx_redes_sociais_evento",
		"idx_redes_sociais_palestrante",
		"idx_palestrantes_eventos_evento",
	}

	for _, index := range indexes {
		if err := db.Exec("DROP INDEX IF EXISTS " + index).Error; err != nil {
			return err
		}
	}

	return nil
}
