package postgres

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// newMockDB opens GORM over sqlmock. Statement preparation stays off so
// expectations can be written against plain queries.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

var eventoColumns = []string{"id", "local", "data_evento", "tema", "qtd_pessoas", "imagem_url", "telefone", "email"}

var palestranteColumns = []string{"id", "nome", "mini_curriculo", "imagem_url", "telefone", "email"}

func eventoDate(day int) time.Time {
	return time.Date(2026, time.March, day, 19, 0, 0, 0, time.UTC)
}
