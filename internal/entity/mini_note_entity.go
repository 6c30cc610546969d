package entity

import (
	"time"

	"github.com/google/uuid"
)

// MiniNote is a short message exchanged between two users.
type MiniNote struct {
	Id          uuid.UUID
	SenderId    uuid.UUID
	RecipientId uuid.UUID
	Content     string
	Read        bool
	CreatedAt   time.Time
}
