package specification

import "gorm.io/gorm"

// ByEmail filters users by exact email
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

// ByStatus filters users by account status
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ByRole filters users by role
type ByRole struct {
	Role string
}

func (s ByRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", s.Role)
}

// UserSearchQuery matches email or full name, case-insensitive.
type UserSearchQuery struct {
	Query string
}

func (s UserSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	like := "%" + s.Query + "%"
	return db.Where("email ILIKE ? OR full_name ILIKE ?", like, like)
}
