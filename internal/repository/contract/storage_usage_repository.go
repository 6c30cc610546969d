package contract

import (
	"context"

	"syncpad-be/internal/entity"

	"github.com/google/uuid"
)

type StorageUsageRepository interface {
	// ComputeForUser aggregates note count and content bytes straight from
	// the notes table.
	ComputeForUser(ctx context.Context, userId uuid.UUID) (*entity.StorageUsage, error)
	Upsert(ctx context.Context, usage *entity.StorageUsage) error
	DeleteByUserId(ctx context.Context, userId uuid.UUID) error
	FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.StorageUsage, error)
	TopByBytes(ctx context.Context, limit int) ([]*entity.StorageUsage, error)
	TotalBytes(ctx context.Context) (int64, error)
}
