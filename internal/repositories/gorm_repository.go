package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// GORMRepository is a GORM implementation of Repository for a single entity.
// It is instantiated with the entity's allowed column set so that filters and
// partial updates referencing unknown columns fail before reaching the database.
type GORMRepository[T any] struct {
	db      *gorm.DB
	columns map[string]struct{}
}

// NewGORMRepository creates a repository for T restricted to the given columns.
func NewGORMRepository[T any](db *gorm.DB, columns []string) *GORMRepository[T] {
	set := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		set[c] = struct{}{}
	}
	return &GORMRepository[T]{
		db:      db,
		columns: set,
	}
}

func (r *GORMRepository[T]) checkColumns(f Filter) error {
	for column := range f {
		if _, ok := r.columns[column]; !ok {
			return fmt.Errorf("unknown column %q in filter", column)
		}
	}
	return nil
}

// Create inserts a new record. The unique-key backstop is left to the store:
// a constraint clash surfaces as gorm.ErrDuplicatedKey for the caller to map.
func (r *GORMRepository[T]) Create(record *T) error {
	if err := r.db.Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		return fmt.Errorf("failed to create record: %w", err)
	}
	return nil
}

// GetOne retrieves at most one record matching the filter.
// Returns ErrNotFound if nothing matched.
func (r *GORMRepository[T]) GetOne(filter Filter) (*T, error) {
	if err := r.checkColumns(filter); err != nil {
		return nil, err
	}
	var record T
	if err := r.db.Where(map[string]any(filter)).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return &record, nil
}

// GetMany retrieves all records matching the filter, ordered by id.
func (r *GORMRepository[T]) GetMany(filter Filter) ([]T, error) {
	if err := r.checkColumns(filter); err != nil {
		return nil, err
	}
	records := make([]T, 0)
	if err := r.db.Where(map[string]any(filter)).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get records: %w", err)
	}
	return records, nil
}

// GetAll retrieves every record of the entity, ordered by id.
func (r *GORMRepository[T]) GetAll() ([]T, error) {
	records := make([]T, 0)
	if err := r.db.Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get all records: %w", err)
	}
	return records, nil
}

// Update changes only the supplied fields of the record with the given id and
// returns the updated record. Omitted fields keep their prior values.
// Returns ErrNotFound if the id does not exist.
func (r *GORMRepository[T]) Update(id uint, fields Filter) (*T, error) {
	if err := r.checkColumns(fields); err != nil {
		return nil, err
	}
	var record T
	if err := r.db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get record for update: %w", err)
	}
	if err := r.db.Model(&record).Updates(map[string]any(fields)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update record: %w", err)
	}
	if err := r.db.First(&record, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload updated record: %w", err)
	}
	return &record, nil
}

// Delete removes the record with the given id.
// Returns ErrNotFound if the id does not exist.
func (r *GORMRepository[T]) Delete(id uint) error {
	var record T
	res := r.db.Delete(&record, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
