package handlers

import (
	"fmt"

	"github.com/gravadigital/proagil-api/internal/domain"
	"github.com/gravadigital/proagil-api/internal/storage/postgres"
)

type childEntity[T any] interface {
	*T
	domain.Entity
}

type ownedChild interface {
	ValidateOwner() error
}

// stageChildren stages the difference between the stored children of a parent
// and the requested ones. Requested rows without an id are added, rows whose id
// is stored are updated, stored rows missing from the request are deleted.
// A requested id that the parent does not own, or a child whose owner keys
// are invalid, is an error and nothing is staged.
func stageChildren[T any, PT childEntity[T]](repo postgres.ProAgilRepository, stored, requested []T) error {
	owned := make(map[int]bool, len(stored))
	for i := range stored {
		owned[PT(&stored[i]).PrimaryKey()[0]] = true
	}

	kept := make(map[int]bool, len(requested))
	for i := range requested {
		child := PT(&requested[i])
		id := child.PrimaryKey()[0]
		if id != 0 && !owned[id] {
			return fmt.Errorf("%s %d does not belong to this record", child.TableName(), id)
		}
		if o, ok := any(child).(ownedChild); ok {
			if err := o.ValidateOwner(); err != nil {
				return err
			}
		}
		kept[id] = true
	}

	for i := range requested {
		child := PT(&requested[i])
		if domain.IsTransient(child) {
			repo.Add(child)
		} else {
			repo.Update(child)
		}
	}
	for i := range stored {
		child := PT(&stored[i])
		if !kept[child.PrimaryKey()[0]] {
			repo.Delete(child)
		}
	}
	return nil
}
