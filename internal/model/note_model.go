package model

import (
	"time"

	"github.com/google/uuid"
)

// Note rows are hard-deleted on owner request, so there is no DeletedAt
// column here.
type Note struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId            uuid.UUID `gorm:"type:uuid;not null;index"`
	Title             string    `gorm:"type:varchar(255);not null"`
	Content           string    `gorm:"type:text"`
	Encrypted         bool      `gorm:"not null;default:false"`
	Passcode          string    `gorm:"type:varchar(255)"`
	IsPublic          bool      `gorm:"not null;default:false"`
	PublicAccessToken *string   `gorm:"type:varchar(128);uniqueIndex"`
	EditPermissions   bool      `gorm:"not null;default:false"`
	DisableEdit       bool      `gorm:"not null;default:false"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (Note) TableName() string {
	return "notes"
}
