package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMiniNoteRequest struct {
	RecipientEmail string `json:"recipient_email" validate:"required,email"`
	Content        string `json:"content" validate:"required,max=500"`
}

type SendMiniNoteResponse struct {
	Id uuid.UUID `json:"id"`
}

type MiniNoteResponse struct {
	Id         uuid.UUID `json:"id"`
	SenderId   uuid.UUID `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Content    string    `json:"content"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}
