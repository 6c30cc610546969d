package model

import (
	"time"

	"github.com/google/uuid"
)

type StorageUsage struct {
	UserId     uuid.UUID `gorm:"type:uuid;primaryKey"`
	NoteCount  int64     `gorm:"not null;default:0"`
	TotalBytes int64     `gorm:"not null;default:0"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (StorageUsage) TableName() string {
	return "storage_usages"
}
