package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Encrypted bool   `json:"encrypted"`
	// Min length enforced in the service only when Encrypted is set.
	Passcode string `json:"passcode"`
}

type CreateNoteResponse struct {
	Id uuid.UUID `json:"id"`
}

type NoteSummary struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Encrypted bool       `json:"encrypted"`
	IsPublic  bool       `json:"is_public"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// ShowNoteResponse is success-shaped even when the passcode is missing:
// PasscodeRequired is flagged and Content carries a placeholder so the real
// content never leaves the server.
type ShowNoteResponse struct {
	Id               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	Content          string     `json:"content"`
	Encrypted        bool       `json:"encrypted"`
	IsPublic         bool       `json:"is_public"`
	IsOwner          bool       `json:"is_owner"`
	CanEdit          bool       `json:"can_edit"`
	PasscodeRequired bool       `json:"passcode_required"`
	SharePath        string     `json:"share_path,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at"`
}

type UpdateNoteRequest struct {
	Id      uuid.UUID
	Title   string `json:"title"`
	Content string `json:"content"`
	// Supplied by non-owner editors of encrypted shared notes.
	Passcode string `json:"passcode"`
}

type UpdateNoteResponse struct {
	Id uuid.UUID `json:"id"`
}

// UpdateNoteSettingsRequest is owner-only. Pointer fields distinguish
// "leave unchanged" from an explicit false.
type UpdateNoteSettingsRequest struct {
	Id              uuid.UUID
	Title           *string `json:"title"`
	Encrypted       *bool   `json:"encrypted"`
	Passcode        *string `json:"passcode"`
	EditPermissions *bool   `json:"edit_permissions"`
	DisableEdit     *bool   `json:"disable_edit"`
}

type ShareNoteResponse struct {
	IsPublic  bool   `json:"is_public"`
	SharePath string `json:"share_path,omitempty"`
}

// SharedNoteResponse is the anonymous view served from /shared/<token>.
// Owner identity is never exposed here.
type SharedNoteResponse struct {
	Title            string     `json:"title"`
	Content          string     `json:"content"`
	Encrypted        bool       `json:"encrypted"`
	CanEdit          bool       `json:"can_edit"`
	PasscodeRequired bool       `json:"passcode_required"`
	UpdatedAt        *time.Time `json:"updated_at"`
}
