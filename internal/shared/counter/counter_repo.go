package counter

import (
	"context"

	"go-cpq/internal/shared/database"

	"gorm.io/gorm"
)

//go:generate mockgen -source=counter_repo.go -destination=mock/counter_repo_mock.go -package=mock
type Repository interface {
	GetNextValue(ctx context.Context, scope string) (int64, error)
	RaiseValue(ctx context.Context, scope string, atLeast int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetNextValue increments the counter for scope and returns the new value.
// Called inside a unit of work, the row stays locked until the caller's
// transaction commits, so concurrent allocators for the same scope serialize.
func (r *repository) GetNextValue(ctx context.Context, scope string) (int64, error) {
	var nextValue int64

	err := database.Conn(ctx, r.db).Raw(`
		INSERT INTO document_counters (scope, last_value, updated_at)
		VALUES (?, 1, now())
		ON CONFLICT (scope) DO UPDATE
		SET last_value = document_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, scope).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}

// RaiseValue moves the counter for scope up to atLeast. A counter already
// past atLeast is left alone.
func (r *repository) RaiseValue(ctx context.Context, scope string, atLeast int64) error {
	return database.Conn(ctx, r.db).Exec(`
		INSERT INTO document_counters (scope, last_value, updated_at)
		VALUES (?, ?, now())
		ON CONFLICT (scope) DO UPDATE
		SET last_value = GREATEST(document_counters.last_value, EXCLUDED.last_value), updated_at = now()
	`, scope, atLeast).Error
}
