package entity

import (
	"time"

	"github.com/google/uuid"
)

// StorageUsage is the per-user aggregate the admin dashboard reads.
// It is recomputed by the usage consumer whenever a note changes.
type StorageUsage struct {
	UserId     uuid.UUID
	NoteCount  int64
	TotalBytes int64
	UpdatedAt  time.Time
}
