package repository

import (
	"context"
	"time"

	"healthinfo-simplifier/internal/domain/entity"
)

// HistoryRepository stores completed transformations, newest first.
// Get returns entity.ErrNotFound for unknown IDs.
type HistoryRepository interface {
	Add(ctx context.Context, t *entity.Transformation) error
	List(ctx context.Context, limit int) ([]*entity.Transformation, error)
	Get(ctx context.Context, id string) (*entity.Transformation, error)
	Clear(ctx context.Context) error
	Len(ctx context.Context) (int, error)
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
