package migrations

import "gorm.io/gorm"

// migration004Up inserts sample data for development
func migration004Up(db *gorm.DB) error {
	statements := []string{
		`INSERT INTO eventos (id, local, data_evento, tema, qtd_pessoas, imagem_url, telefone, email) VALUES
            (1, 'Belo Horizonte', '2026-11-20 19:00:00+00', 'Angular e suas Novidades', 250, 'img1.jpg', '(31) 3333-1111', 'contato@proagil.com'),
            (2, 'São Paulo', '2026-12-05 09:00:00+00', 'Tech Conference Go', 400, 'img2.jpg', '(11) 3333-2222', 'go@proagil.com')
        ON CONFLICT (id) DO NOTHING`,

		`INSERT INTO palestrantes (id, nome, mini_curriculo, imagem_url, telefone, email) VALUES
            (1, 'Ana Souza', 'Engenheira de software e organizadora de meetups.', 'ana.jpg', '(31) 98888-1111', 'ana@proagil.com'),
            (2, 'Bruno Lima', 'Arquiteto de sistemas distribuídos.', 'bruno.jpg', '(11) 97777-2222', 'bruno@proagil.com')
        ON CONFLICT (id) DO NOTHING`,

		`INSERT INTO lotes (id, nome, preco, data_inicio, data_fim, quantidade, evento_id) VALUES
            (1, '1º Lote', 50.00, '2026-09-01 00:00:00+00', '2026-10-01 00:00:00+00', 100, 1),
            (2, '2º Lote', 80.00, '2026-10-02 00:00:00+00', '2026-11-19 00:00:00+00', 150, 1),
            (3, 'Lote Único', 120.00, NULL, NULL, 400, 2)
        ON CONFLICT (id) DO NOTHING`,

		`INSERT INTO redes_sociais (id, nome, url, evento_id, palestrante_id) VALUES
            (1, 'Instagram', 'https://instagram.com/proagil', 1, NULL),
            (2, 'GitHub', 'https://github.com/anasouza', NULL, 1),
            (3, 'LinkedIn', 'https://linkedin.com/in/brunolima', NULL, 2)
        ON CONFLICT (id) DO NOTHING`,

		`INSERT INTO palestrantes_eventos (palestrante_id, evento_id) VALUES
            (1, 1),
            (1, 2),
            (2, 2)
        ON CONFLICT (palestrante_id, evento_id) DO NOTHING`,
	}

	for _, statement := range statements {
		if err := db.Exec(statement).Error; err != nil {
			return err
		}
	}

	// explicit ids above do not advance the serial sequences
	for _, table := range []string{"eventos", "palestrantes", "lotes", "redes_sociais"} {
		if err := db.Exec("SELECT setval(pg_get_serial_sequence('" + table + "', 'id'), COALESCE((SELECT MAX(id) FROM " + table + "), 1))").Error; err != nil {
			return err
		}
	}

	return nil
}

// migration004Down removes the sample rows
func migration004Down(db *gorm.DB) error {
	statements := []string{
		"DELETE FROM palestrantes_eventos WHERE (palestrante_id, evento_id) IN ((1, 1), (1, 2), (2, 2))",
		"DELETE FROM redes_sociais WHERE id IN (1, 2, 3)",
		"DELETE FROM lotes WHERE id IN (1, 2, 3)",
		"DELETE FROM palestrantes WHERE id IN (1, 2)",
		"DELETE FROM eventos WHERE id IN (1, 2)",
	}

	for _, statement := range statements {
		if err := db.Exec(statement).Error; err != nil {
			return err
		}
	}

	return nil
}
