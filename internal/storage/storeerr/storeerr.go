// Package storeerr classifies errors coming out of the database drivers.
//
// Both drivers GORM can sit on are understood: pgx (*pgconn.PgError) and
// lib/pq (*pq.Error). The original error is always kept so callers can log
// the detail instead of a generic message.
package storeerr

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Kind is the coarse category of a store failure
type Kind int

const (
	// Internal is anything not recognised below
	Internal Kind = iota
	// NotFound means the row asked for does not exist
	NotFound
	// Conflict is a unique violation
	Conflict
	// Invalid covers foreign key, not-null, check and data exceptions
	Invalid
	// Unavailable means the store could not be reached
	Unavailable
	// Timeout means the deadline ran out or the statement was cancelled by the server
	Timeout
	// Canceled means the caller went away
	Canceled
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case Invalid:
		return "invalid"
	case Unavailable:
		return "unavailable"
	case Timeout:
		return "timeout"
	case Canceled:
		return "canceled"
	default:
		return "internal"
	}
}

// SQLSTATE codes and classes used for classification
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	codeCheckViolation      = "23514"
	codeQueryCanceled       = "57014"
	classDataException      = "22"
	classConnection         = "08"
	classOperatorIntervene  = "57"
)

// Error is a classified store failure
type Error struct {
	Kind       Kind
	Code       string
	Table      string
	Constraint string
	Message    string
	err        error
}

func (e *Error) Error() string {
	return e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

// Classify inspects err and returns its classification. A nil error yields nil.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}

	out := &Error{Kind: Internal, Message: err.Error(), err: err}

	var pgErr *pgconn.PgError
	var pqErr *pq.Error
	var netErr net.Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, sql.ErrNoRows):
		out.Kind = NotFound
	case errors.Is(err, context.DeadlineExceeded):
		out.Kind = Timeout
	case errors.Is(err, context.Canceled):
		out.Kind = Canceled
	case errors.Is(err, gorm.ErrDuplicatedKey):
		out.Kind = Conflict
	case errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated),
		errors.Is(err, gorm.ErrMissingWhereClause),
		errors.Is(err, gorm.ErrPrimaryKeyRequired):
		out.Kind = Invalid
	case errors.As(err, &pgErr):
		out.Code = pgErr.Code
		out.Table = pgErr.TableName
		out.Constraint = pgErr.ConstraintName
		out.Message = pgErr.Message
		out.Kind = kindForCode(pgErr.Code)
	case errors.As(err, &pqErr):
		out.Code = string(pqErr.Code)
		out.Table = pqErr.Table
		out.Constraint = pqErr.Constraint
		out.Message = pqErr.Message
		out.Kind = kindForCode(string(pqErr.Code))
	case errors.Is(err, driver.ErrBadConn), errors.Is(err, sql.ErrConnDone):
		out.Kind = Unavailable
	case errors.As(err, &netErr):
		out.Kind = Unavailable
		if netErr.Timeout() {
			out.Kind = Timeout
		}
	}

	return out
}

func kindForCode(code string) Kind {
	switch code {
	case codeUniqueViolation:
		return Conflict
	case codeForeignKeyViolation, codeNotNullViolation, codeCheckViolation:
		return Invalid
	case codeQueryCanceled:
		return Timeout
	}

	switch {
	case strings.HasPrefix(code, classDataException):
		return Invalid
	case strings.HasPrefix(code, classConnection), strings.HasPrefix(code, classOperatorIntervene):
		return Unavailable
	}
	return Internal
}

// KindOf is shorthand for Classify(err).Kind. It returns Internal for nil.
func KindOf(err error) Kind {
	if c := Classify(err); c != nil {
		return c.Kind
	}
	return Internal
}

// HTTPStatus maps a classified failure to the response status a transport should use
func HTTPStatus(kind Kind) int {
	switch kind {
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Invalid:
		return http.StatusBadRequest
	case Unavailable:
		return http.StatusServiceUnavailable
	case Timeout:
		return http.StatusGatewayTimeout
	case Canceled:
		// nginx convention for a client that closed the request
		return 499
	default:
		return http.StatusInternalServerError
	}
}
