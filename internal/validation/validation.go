package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/gravadigital/proagil-api/internal/domain"
)

var validate = validator.New()

// Límites de los campos de eventos y palestrantes
const (
	TemaMinLength        = 3
	TemaMaxLength        = 50
	LocalMaxLength       = 100
	NomeMinLength        = 3
	NomeMaxLength        = 100
	MiniCurriculoMaxLen  = 2000
	QtdPessoasMin        = 2
	QtdPessoasMax        = 120000
	SearchTermMaxLength  = 100
	RedeSocialNomeMaxLen = 50
)

// ValidateRequired valida que un campo no esté vacío
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New(fieldName + " is required")
	}
	return nil
}

// ValidateMinLength valida la longitud mínima de un string
func ValidateMinLength(value string, minLength int, fieldName string) error {
	if utf8.RuneCountInString(value) < minLength {
		return errors.New(fieldName + " must be at least " + strconv.Itoa(minLength) + " characters long")
	}
	return nil
}

// ValidateMaxLength valida la longitud máxima de un string
func ValidateMaxLength(value string, maxLength int, fieldName string) error {
	if utf8.RuneCountInString(value) > maxLength {
		return errors.New(fieldName + " must be at most " + strconv.Itoa(maxLength) + " characters long")
	}
	return nil
}

// ValidateID valida que un parámetro de ruta sea un identificador positivo
func ValidateID(value, fieldName string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0, errors.New(fieldName + " must be a positive integer")
	}
	return id, nil
}

// ValidateSearchTerm valida el término de búsqueda. Vacío es válido y trae todo.
func ValidateSearchTerm(term, fieldName string) error {
	return ValidateMaxLength(term, SearchTermMaxLength, fieldName)
}

// ValidateEmail valida el formato de email
func ValidateEmail(email string) error {
	if err := validate.Var(email, "email"); err != nil {
		return errors.New("email must have a valid format")
	}
	return nil
}

// ValidateURL valida que el link sea una URL absoluta
func ValidateURL(value, fieldName string) error {
	if err := validate.Var(value, "required,url"); err != nil {
		return errors.New(fieldName + " must be a valid URL")
	}
	return nil
}

// ValidateDateRange valida que el período esté en orden. Fechas ausentes no se comparan.
func ValidateDateRange(startDate, endDate *time.Time) error {
	if startDate == nil || endDate == nil {
		return nil
	}
	if endDate.Before(*startDate) {
		return errors.New("end date must be after start date")
	}
	return nil
}

// EventoValidation contiene validaciones específicas para eventos
type EventoValidation struct{}

// ValidateTema valida el tema de un evento
func (v EventoValidation) ValidateTema(tema string) error {
	if err := ValidateRequired(tema, "tema"); err != nil {
		return err
	}
	if err := ValidateMinLength(tema, TemaMinLength, "tema"); err != nil {
		return err
	}
	return ValidateMaxLength(tema, TemaMaxLength, "tema")
}

// ValidateLocal valida el lugar de un evento
func (v EventoValidation) ValidateLocal(local string) error {
	if err := ValidateRequired(local, "local"); err != nil {
		return err
	}
	return ValidateMaxLength(local, LocalMaxLength, "local")
}

// ValidateQtdPessoas valida la capacidad de un evento
func (v EventoValidation) ValidateQtdPessoas(qtd int) error {
	if qtd < QtdPessoasMin || qtd > QtdPessoasMax {
		return fmt.Errorf("qtd_pessoas must be between %d and %d", QtdPessoasMin, QtdPessoasMax)
	}
	return nil
}

// ValidateLote valida un lote de entradas
func (v EventoValidation) ValidateLote(lote domain.Lote) error {
	if err := ValidateRequired(lote.Nome, "lote nome"); err != nil {
		return err
	}
	if lote.Preco < 0 {
		return errors.New("lote preco cannot be negative")
	}
	if lote.Quantidade < 0 {
		return errors.New("lote quantidade cannot be negative")
	}
	return ValidateDateRange(lote.DataInicio, lote.DataFim)
}

// Validate junta todos los errores del evento y de sus hijos
func (v EventoValidation) Validate(evento *domain.Evento) error {
	errs := []error{
		v.ValidateTema(evento.Tema),
		v.ValidateLocal(evento.Local),
		v.ValidateQtdPessoas(evento.QtdPessoas),
	}
	if evento.DataEvento.IsZero() {
		errs = append(errs, errors.New("data_evento is required"))
	}
	if evento.Email != "" {
		errs = append(errs, ValidateEmail(evento.Email))
	}
	for _, lote := range evento.Lotes {
		errs = append(errs, v.ValidateLote(lote))
	}
	for _, rede := range evento.RedesSociais {
		errs = append(errs, ValidateRedeSocial(rede))
	}
	return errors.Join(errs...)
}

// PalestranteValidation contiene validaciones específicas para palestrantes
type PalestranteValidation struct{}

// ValidateNome valida el nombre de un palestrante
func (v PalestranteValidation) ValidateNome(nome string) error {
	if err := ValidateRequired(nome, "nome"); err != nil {
		return err
	}
	if err := ValidateMinLength(nome, NomeMinLength, "nome"); err != nil {
		return err
	}
	return ValidateMaxLength(nome, NomeMaxLength, "nome")
}

// Validate junta todos los errores del palestrante y de sus redes sociales
func (v PalestranteValidation) Validate(palestrante *domain.Palestrante) error {
	errs := []error{
		v.ValidateNome(palestrante.Nome),
		ValidateMaxLength(palestrante.MiniCurriculo, MiniCurriculoMaxLen, "mini_curriculo"),
	}
	if palestrante.Email != "" {
		errs = append(errs, ValidateEmail(palestrante.Email))
	}
	for _, rede := range palestrante.RedesSociais {
		errs = append(errs, ValidateRedeSocial(rede))
	}
	return errors.Join(errs...)
}

// ValidateRedeSocial valida un link de red social
func ValidateRedeSocial(rede domain.RedeSocial) error {
	if err := ValidateRequired(rede.Nome, "rede social nome"); err != nil {
		return err
	}
	if err := ValidateMaxLength(rede.Nome, RedeSocialNomeMaxLen, "rede social nome"); err != nil {
		return err
	}
	return ValidateURL(rede.URL, "rede social url")
}
