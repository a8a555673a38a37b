package models

import "time"

// Student is a pre-seeded roster row. Signup is only accepted for
// registration numbers present here.
type Student struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	RegistrationNumber string    `gorm:"size:32;uniqueIndex;not null" json:"registration_number"`
	Name               string    `gorm:"size:255;not null" json:"name"`
	CreatedAt          time.Time `json:"created_at"`
}
