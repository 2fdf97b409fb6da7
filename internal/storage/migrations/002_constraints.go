package migrations

import "gorm.io/gorm"

// migration002Up adds the constraints GORM tags cannot express
func migration002Up(db *gorm.DB) error {
	constraints := []string{
		// a social link belongs to exactly one owner
		`ALTER TABLE redes_sociais ADD CONSTRAINT chk_redes_sociais_single_owner
            CHECK ((evento_id IS NULL) <> (palestrante_id IS NULL))`,
		`ALTER TABLE lotes ADD CONSTRAINT chk_lotes_preco_non_negative CHECK (preco >= 0)`,
		`ALTER TABLE lotes ADD CONSTRAINT chk_lotes_quantidade_non_negative CHECK (quantidade >= 0)`,
		`ALTER TABLE lotes ADD CONSTRAINT chk_lotes_periodo
            CHECK (data_inicio IS NULL OR data_fim IS NULL OR data_fim >= data_inicio)`,
		`ALTER TABLE eventos ADD CONSTRAINT chk_eventos_qtd_pessoas_non_negative CHECK (qtd_pessoas >= 0)`,
	}

	for _, constraintSQL := range constraints {
		if err := db.Exec(constraintSQL).Error; err != nil {
			return err
		}
	}

	return nil
}

// migration002Down drops the check constraints
func migration002Down(db *gorm.DB) error {
	drops := []string{
		"ALTER TABLE redes_sociais DROP CONSTRAINT IF EXISTS chk_redes_sociais_single_owner",
		"ALTER TABLE lotes DROP CONSTRAINT IF EXISTS chk_lotes_preco_non_negative",
		"ALTER TABLE lotes DROP CONSTRAINT IF EXISTS chk_lotes_quantidade_non_negative",
		"ALTER TABLE lotes DROP CONSTRAINT IF EXISTS chk_lotes_periodo",
		"ALTER TABLE eventos DROP CONSTRAINT IF EXISTS chk_eventos_qtd_pessoas_non_negative",
	}

	for _, dropSQL := range drops {
		if err := db.Exec(dropSQL).Error; err != nil {
			return err
		}
	}

	return nil
}
