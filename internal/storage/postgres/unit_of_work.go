package postgres

import (
	"context"
	"fmt"
	"reflect"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gravadigital/proagil-api/internal/domain"
	"github.com/gravadigital/proagil-api/internal/logger"
)

type opKind int

const (
	opInsert opKind = iota
	opUpdate
	opDelete
)

func (k opKind) String() string {
	switch k {
	case opInsert:
		return "insert"
	case opUpdate:
		return "update"
	default:
		return "delete"
	}
}

type operation struct {
	kind   opKind
	entity domain.Entity
}

func (op operation) apply(tx *gorm.DB) (int64, error) {
	var res *gorm.DB
	switch op.kind {
	case opInsert:
		res = tx.Create(op.entity)
	case opUpdate:
		// Full replacement of the row's own columns. Children are staged separately.
		res = tx.Model(op.entity).Select("*").Omit(clause.Associations).Updates(op.entity)
	case opDelete:
		res = tx.Delete(op.entity)
	}
	return res.RowsAffected, res.Error
}

type trackedEntry struct {
	entity   domain.Entity
	dirty    func() bool
	snapshot func()
}

// UnitOfWork stages inserts, updates and deletes in memory and applies them
// in a single transaction on SaveChanges. It belongs to one request and is
// not safe for concurrent use.
type UnitOfWork struct {
	db      *gorm.DB
	log     *log.Logger
	pending []operation
	tracked []trackedEntry
}

// NewUnitOfWork creates an empty unit of work over the shared connection pool
func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{
		db:  db,
		log: logger.Repository("unit_of_work"),
	}
}

// Add stages entity for insertion. Children set on the entity are inserted with it.
func (u *UnitOfWork) Add(entity domain.Entity) {
	u.stage(opInsert, entity)
}

// Update stages a full replacement of the stored row identified by entity's key
func (u *UnitOfWork) Update(entity domain.Entity) {
	u.stage(opUpdate, entity)
}

// Delete stages removal of entity. Owned rows go with it through ON DELETE CASCADE.
func (u *UnitOfWork) Delete(entity domain.Entity) {
	u.untrack(entity)
	u.stage(opDelete, entity)
}

func (u *UnitOfWork) stage(kind opKind, entity domain.Entity) {
	u.log.Debug("Staging operation", "operation", kind, "table", entity.TableName(), "key", entity.PrimaryKey())
	u.pending = append(u.pending, operation{kind: kind, entity: entity})
}

// Pending reports how many operations SaveChanges would flush right now,
// including tracked entities that changed since they were read.
func (u *UnitOfWork) Pending() int {
	return len(u.collect())
}

// SaveChanges applies every staged operation atomically and reports whether
// at least one row was affected. Nothing staged means false and no round trip.
// On failure the staged operations are kept and the unit of work should be
// discarded.
func (u *UnitOfWork) SaveChanges(ctx context.Context) (bool, error) {
	ops := u.collect()
	if len(ops) == 0 {
		u.log.Debug("No changes to save")
		return false, nil
	}

	var affected int64
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, op := range ops {
			n, err := op.apply(tx)
			if err != nil {
				return fmt.Errorf("%s %s: %w", op.kind, op.entity.TableName(), err)
			}
			affected += n
		}
		return nil
	})
	if err != nil {
		u.log.Error("Failed to save changes", "operations", len(ops), "error", err)
		return false, fmt.Errorf("failed to save changes: %w", err)
	}

	u.pending = nil
	for _, t := range u.tracked {
		t.snapshot()
	}

	u.log.Info("Changes saved", "operations", len(ops), "rows_affected", affected)
	return affected > 0, nil
}

// collect returns the staged operations followed by an update for every
// tracked entity that changed and was not staged explicitly.
func (u *UnitOfWork) collect() []operation {
	ops := make([]operation, 0, len(u.pending))
	ops = append(ops, u.pending...)

	staged := make(map[domain.Entity]bool, len(u.pending))
	for _, op := range u.pending {
		staged[op.entity] = true
	}

	for _, t := range u.tracked {
		if staged[t.entity] || !t.dirty() {
			continue
		}
		ops = append(ops, operation{kind: opUpdate, entity: t.entity})
	}
	return ops
}

func (u *UnitOfWork) attach(entity domain.Entity, dirty func() bool, snapshot func()) {
	u.tracked = append(u.tracked, trackedEntry{entity: entity, dirty: dirty, snapshot: snapshot})
}

func (u *UnitOfWork) untrack(entity domain.Entity) {
	kept := u.tracked[:0]
	for _, t := range u.tracked {
		if t.entity != entity {
			kept = append(kept, t)
		}
	}
	u.tracked = kept
}

// Tracked reports how many read results are attached to this unit of work
func (u *UnitOfWork) Tracked() int {
	return len(u.tracked)
}

// DB returns the connection pool the unit of work reads and writes through
func (u *UnitOfWork) DB() *gorm.DB {
	return u.db
}

// Track attaches entity to u so that changes to its own columns are flushed
// by the next SaveChanges without an explicit Update.
func Track[T any, PT entityPtr[T]](u *UnitOfWork, entity PT) {
	snapshot := *entity
	u.attach(entity,
		func() bool { return !reflect.DeepEqual(*entity, snapshot) },
		func() { snapshot = *entity },
	)
}
