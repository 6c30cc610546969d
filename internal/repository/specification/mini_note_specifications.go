package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByRecipient filters mini notes addressed to a user
type ByRecipient struct {
	UserID uuid.UUID
}

func (s ByRecipient) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("recipient_id = ?", s.UserID)
}

// BySender filters mini notes sent by a user
type BySender struct {
	UserID uuid.UUID
}

func (s BySender) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sender_id = ?", s.UserID)
}

// UnreadOnly restricts to unread mini notes
type UnreadOnly struct{}

func (s UnreadOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("read = ?", false)
}
