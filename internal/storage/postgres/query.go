package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gravadigital/proagil-api/internal/domain"
)

type entityPtr[T any] interface {
	*T
	domain.Entity
}

type condition struct {
	query any
	args  []any
}

// Query composes a read over one entity table. Related collections, filters
// and ordering are collected by the chainable calls and sent to the store
// once, when ToSlice or FirstOrNil materializes the results.
//
// Results are detached copies unless Tracked was called.
type Query[T any, PT entityPtr[T]] struct {
	db       *gorm.DB
	preloads []string
	wheres   []condition
	orders   []clause.OrderByColumn
	uow      *UnitOfWork
}

// From starts a query over the table of T
func From[T any, PT entityPtr[T]](db *gorm.DB) *Query[T, PT] {
	return &Query[T, PT]{db: db}
}

// Include eager-loads the given association paths, e.g. "PalestrantesEventos.Palestrante"
func (q *Query[T, PT]) Include(paths ...string) *Query[T, PT] {
	q.preloads = append(q.preloads, paths...)
	return q
}

// IncludeIf eager-loads paths only when include is true
func (q *Query[T, PT]) IncludeIf(include bool, paths ...string) *Query[T, PT] {
	if !include {
		return q
	}
	return q.Include(paths...)
}

// Where adds a raw condition, ANDed with the others
func (q *Query[T, PT]) Where(query any, args ...any) *Query[T, PT] {
	q.wheres = append(q.wheres, condition{query: query, args: args})
	return q
}

// WhereEq matches column of the queried table against value
func (q *Query[T, PT]) WhereEq(column string, value any) *Query[T, PT] {
	return q.Where(clause.Eq{
		Column: clause.Column{Table: clause.CurrentTable, Name: column},
		Value:  value,
	})
}

// WhereContains keeps rows whose column contains term, ignoring case.
// Both sides are lower-cased; LIKE wildcards in term match literally.
func (q *Query[T, PT]) WhereContains(column, term string) *Query[T, PT] {
	expr := clause.Expr{
		SQL:  "LOWER(?) LIKE ?",
		Vars: []any{clause.Column{Table: clause.CurrentTable, Name: column}, ContainsPattern(term)},
	}
	return q.Where(expr)
}

// OrderBy appends a sort key
func (q *Query[T, PT]) OrderBy(column string, desc bool) *Query[T, PT] {
	q.orders = append(q.orders, clause.OrderByColumn{
		Column: clause.Column{Table: clause.CurrentTable, Name: column},
		Desc:   desc,
	})
	return q
}

// Tracked attaches the materialized results to u so that SaveChanges
// flushes changes made to them without an explicit Update.
func (q *Query[T, PT]) Tracked(u *UnitOfWork) *Query[T, PT] {
	q.uow = u
	return q
}

func (q *Query[T, PT]) build(ctx context.Context) *gorm.DB {
	db := q.db.WithContext(ctx)
	for _, path := range q.preloads {
		db = db.Preload(path)
	}
	for _, w := range q.wheres {
		db = db.Where(w.query, w.args...)
	}
	for _, o := range q.orders {
		db = db.Order(o)
	}
	return db
}

// ToSlice runs the query. No match is an empty, non-nil slice.
func (q *Query[T, PT]) ToSlice(ctx context.Context) ([]T, error) {
	results := make([]T, 0)
	if err := q.build(ctx).Find(&results).Error; err != nil {
		return nil, err
	}

	if q.uow != nil {
		for i := range results {
			Track[T, PT](q.uow, PT(&results[i]))
		}
	}
	return results, nil
}

// FirstOrNil runs the query and returns the first row, or nil when nothing matched
func (q *Query[T, PT]) FirstOrNil(ctx context.Context) (*T, error) {
	var result T
	if err := q.build(ctx).First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if q.uow != nil {
		Track[T, PT](q.uow, PT(&result))
	}
	return &result, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds the LIKE pattern for a case-insensitive substring match
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}
