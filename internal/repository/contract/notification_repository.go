package contract

import (
	"context"

	"syncpad-be/internal/model"

	"github.com/google/uuid"
)

// NotificationRepository works on the gorm model directly: notifications are
// write-mostly rows the hub serializes as-is.
type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	FindAllByUser(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*model.Notification, error)
	CountUnread(ctx context.Context, userId uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id uuid.UUID, userId uuid.UUID) error
	MarkAllRead(ctx context.Context, userId uuid.UUID) error
}
