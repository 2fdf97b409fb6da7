package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/proagil-api/internal/domain"
)

func validEvento() *domain.Evento {
	return &domain.Evento{
		Local:      "Recife",
		DataEvento: time.Date(2026, time.November, 5, 19, 0, 0, 0, time.UTC),
		Tema:       "Go na prática",
		QtdPessoas: 120,
		Email:      "contato@proagil.dev",
	}
}

func TestLengthMessagesUseDecimalNumbers(t *testing.T) {
	err := ValidateMinLength("ab", 3, "tema")
	require.Error(t, err)
	assert.Equal(t, "tema must be at least 3 characters long", err.Error())

	err = ValidateMaxLength(strings.Repeat("a", 51), 50, "tema")
	require.Error(t, err)
	assert.Equal(t, "tema must be at most 50 characters long", err.Error())
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{" 42 ", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			id, err := ValidateID(tt.value, "id")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("ana@example.com"))
	assert.Error(t, ValidateEmail("ana.example.com"))
	assert.Error(t, ValidateEmail("ana@"))
}

func TestValidateDateRange(t *testing.T) {
	start := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	assert.NoError(t, ValidateDateRange(&start, &end))
	assert.NoError(t, ValidateDateRange(nil, &end))
	assert.Error(t, ValidateDateRange(&end, &start))
}

func TestEventoValidation(t *testing.T) {
	v := EventoValidation{}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, v.Validate(validEvento()))
	})

	t.Run("tema too short", func(t *testing.T) {
		evento := validEvento()
		evento.Tema = "Go"
		assert.ErrorContains(t, v.Validate(evento), "tema must be at least 3")
	})

	t.Run("capacity out of range", func(t *testing.T) {
		evento := validEvento()
		evento.QtdPessoas = 1
		assert.ErrorContains(t, v.Validate(evento), "qtd_pessoas")
	})

	t.Run("collects every failure", func(t *testing.T) {
		evento := validEvento()
		evento.Tema = ""
		evento.Local = ""
		evento.Email = "nope"
		evento.Lotes = []domain.Lote{{Nome: "Primeiro", Preco: -1}}
		evento.RedesSociais = []domain.RedeSocial{{Nome: "Site", URL: "not a url"}}

		err := v.Validate(evento)
		require.Error(t, err)
		for _, msg := range []string{"tema is required", "local is required", "email", "preco", "url"} {
			assert.ErrorContains(t, err, msg)
		}
	})
}

func TestPalestranteValidation(t *testing.T) {
	v := PalestranteValidation{}

	assert.NoError(t, v.Validate(&domain.Palestrante{Nome: "Ana Souza"}))
	assert.ErrorContains(t, v.Validate(&domain.Palestrante{Nome: "  "}), "nome is required")
	assert.ErrorContains(t, v.Validate(&domain.Palestrante{
		Nome:         "Ana Souza",
		RedesSociais: []domain.RedeSocial{{Nome: "LinkedIn", URL: "https://linkedin.com/in/ana"}, {URL: "https://x.com"}},
	}), "rede social nome is required")
}

func TestValidateSearchTerm(t *testing.T) {
	assert.NoError(t, ValidateSearchTerm("", "tema"))
	assert.Error(t, ValidateSearchTerm(strings.Repeat("x", SearchTermMaxLength+1), "tema"))
}
