package repositories

import "errors"

// ErrNotFound signals that no record matched an id or a unique filter.
var ErrNotFound = errors.New("record not found")

// Filter is a set of column-equality predicates. The same shape carries the
// partial field set of an update. Keys are validated against the entity's
// known column list before any query is built.
type Filter map[string]any

// Repository is the uniform data-access contract shared by every entity.
type Repository[T any] interface {
	Create(record *T) error
	GetOne(filter Filter) (*T, error)
	GetMany(filter Filter) ([]T, error)
	GetAll() ([]T, error)
	Update(id uint, fields Filter) (*T, error)
	Delete(id uint) error
}
