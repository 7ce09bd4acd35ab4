package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository is a thin generic read/write store over gorm, used by
// read-side repositories for filter-by-example lookups.
type Repository[T any] interface {
	WithTrx(tx *gorm.DB) Repository[T]
	Find(ctx context.Context, query *T) ([]*T, error)
	FindOne(ctx context.Context, query *T) (*T, error)
	Create(ctx context.Context, resource *T) error
	Count(ctx context.Context, query *T) (int64, error)
}
