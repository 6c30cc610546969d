package dto

import "github.com/google/uuid"

// RecalcUsageMessage asks the usage consumer to recompute the storage
// aggregate for one user.
type RecalcUsageMessage struct {
	UserId uuid.UUID `json:"user_id"`
}
