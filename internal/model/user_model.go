package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email              string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	FullName           string    `gorm:"type:varchar(255);not null"`
	PasswordHash       string    `gorm:"type:varchar(255);not null"`
	Role               string    `gorm:"type:varchar(16);not null;default:'user'"`
	Status             string    `gorm:"type:varchar(16);not null;default:'active'"`
	SecurityQuestion   string    `gorm:"type:varchar(255);not null"`
	SecurityAnswerHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
