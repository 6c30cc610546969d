package model

import (
	"time"

	"github.com/google/uuid"
)

type MiniNote struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SenderId    uuid.UUID `gorm:"type:uuid;not null;index"`
	RecipientId uuid.UUID `gorm:"type:uuid;not null;index"`
	Content     string    `gorm:"type:varchar(500);not null"`
	Read        bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (MiniNote) TableName() string {
	return "mini_notes"
}
