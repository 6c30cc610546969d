package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification is persisted for the inbox bell and pushed live over the
// WebSocket hub. Data carries the event-specific payload as JSON.
type Notification struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      string         `gorm:"type:varchar(64);not null" json:"type"`
	Message   string         `gorm:"type:varchar(500);not null" json:"message"`
	Data      datatypes.JSON `gorm:"type:jsonb" json:"data"`
	Read      bool           `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
