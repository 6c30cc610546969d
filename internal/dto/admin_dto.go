package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserStorageStats struct {
	UserId     uuid.UUID `json:"user_id"`
	Email      string    `json:"email"`
	NoteCount  int64     `json:"note_count"`
	TotalBytes int64     `json:"total_bytes"`
}

type AdminDashboardStats struct {
	TotalUsers        int                `json:"total_users"`
	ActiveUsers       int                `json:"active_users"`
	BlockedUsers      int                `json:"blocked_users"`
	TotalNotes        int64              `json:"total_notes"`
	SharedNotes       int64              `json:"shared_notes"`
	EncryptedNotes    int64              `json:"encrypted_notes"`
	TotalStorageBytes int64              `json:"total_storage_bytes"`
	TopUsersByStorage []UserStorageStats `json:"top_users_by_storage"`
}

type AdminUserListItem struct {
	Id        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateUserStatusRequest struct {
	Id     uuid.UUID
	Status string `json:"status" validate:"required,oneof=active blocked"`
}

type LogListResponse struct {
	Id        string    `json:"id"`
	Level     string    `json:"level"`
	Module    string    `json:"module"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type LogDetailResponse struct {
	LogListResponse
	Details map[string]interface{} `json:"details"`
}
