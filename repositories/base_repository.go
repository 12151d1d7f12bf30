package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned by every repository when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a conditional update matched no row, i.e.
// the guarded state changed underneath the caller.
var ErrConflict = errors.New("record state changed, update not applied")

// BaseRepository bundles the lookups shared by all aggregates.
type BaseRepository[T any] struct {
	db *gorm.DB
}

// NewBaseRepository binds a base repository to a connection or transaction.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{db: db}
}

// FindByID loads one row by primary key.
func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// Count returns the total number of live rows.
func (r *BaseRepository[T]) Count(ctx context.Context) (int64, error) {
	var model T
	var count int64
	err := r.db.WithContext(ctx).Model(&model).Count(&count).Error
	return count, err
}

// translateNotFound maps gorm's sentinel onto ours.
func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// checkAffected turns a zero-row conditional update into ErrConflict.
func checkAffected(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}
