package specification

import "gorm.io/gorm"

// ByPublicToken resolves a note from its share link token.
type ByPublicToken struct {
	Token string
}

func (s ByPublicToken) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("public_access_token = ?", s.Token)
}

// PublicOnly restricts to currently shared notes.
type PublicOnly struct{}

func (s PublicOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_public = ?", true)
}

// EncryptedOnly restricts to passcode-protected notes.
type EncryptedOnly struct{}

func (s EncryptedOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("encrypted = ?", true)
}
