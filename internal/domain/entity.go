// Package domain holds the persisted records of the event catalogue: eventos,
// palestrantes, their ticket lots and social links, and the join between
// eventos and palestrantes.
package domain

// Entity is implemented by every persisted record. It is the capability the
// generic unit-of-work operations are bound to. PrimaryKey has a pointer
// receiver on every record, so only pointers satisfy it.
type Entity interface {
	TableName() string
	// PrimaryKey returns the identifier columns in declaration order.
	// All zeros means the store has not assigned an identity yet.
	PrimaryKey() []int
}

// IsTransient reports whether e has not been persisted yet
func IsTransient(e Entity) bool {
	for _, k := range e.PrimaryKey() {
		if k != 0 {
			return false
		}
	}
	return true
}
