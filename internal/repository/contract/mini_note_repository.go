package contract

import (
	"context"

	"syncpad-be/internal/entity"
	"syncpad-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MiniNoteRepository interface {
	Create(ctx context.Context, note *entity.MiniNote) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MiniNote, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MiniNote, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}
