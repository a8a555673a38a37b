package models

import (
	"time"

	"gorm.io/gorm"
)

// Canonical roles returned to clients. Legacy rows may store other spellings;
// NormalizeRole maps them before they leave the API.
const (
	RoleStudent    = "student"
	RoleHealthcare = "healthcare"
	RoleAdmin      = "admin"
)

// User represents an account. Passwords are stored as bcrypt hashes only.
type User struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Username           string         `gorm:"size:64;uniqueIndex;not null" json:"username"`
	PasswordHash       string         `gorm:"size:255;not null" json:"-"`
	UserType           string         `gorm:"size:32;not null" json:"user_type"`
	RegistrationNumber string         `gorm:"size:32;uniqueIndex" json:"registration_number"`
	FullName           string         `gorm:"size:255" json:"full_name"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// NormalizeRole maps the role spellings found in legacy user rows to the
// canonical set {student, healthcare, admin}.
func NormalizeRole(userType string) string {
	switch userType {
	case "healthcare_professional", "Healthcare Professional":
		return RoleHealthcare
	case "Student":
		return RoleStudent
	default:
		return userType
	}
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
