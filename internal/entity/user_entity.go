package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string
type UserStatus string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

type User struct {
	Id           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	Role         UserRole
	Status       UserStatus

	// Security question flow for password recovery. The answer is stored
	// hashed, only the question text is ever sent back to the client.
	SecurityQuestion   string
	SecurityAnswerHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}
