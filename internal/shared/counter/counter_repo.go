package counter

import (
	"context"

	"gorm.io/gorm"
)

// Repository hands out monotonically increasing sequence values per code
// prefix. Employee codes are built from these, so two concurrent creates in
// the same department must never observe the same value.
type Repository interface {
	GetNextValue(ctx context.Context, prefix string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetNextValue(ctx context.Context, prefix string) (int64, error) {
	var nextValue int64

	// Atomic UPSERT and increment so concurrent requests for the same prefix
	// serialize on the row instead of racing in application code
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO code_counters (prefix, last_value, updated_at)
		VALUES (?, 1, now())
		ON CONFLICT (prefix) DO UPDATE
		SET last_value = code_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, prefix).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
