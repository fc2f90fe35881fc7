package entity

import (
	"time"
)

// User is a tailor/shop account. The id doubles as the auth subject and
// the owner reference (created_by) on every entity.
type User struct {
	ID           string     `json:"id" gorm:"primaryKey;size:36"`
	Email        string     `json:"email" gorm:"size:200;not null;uniqueIndex"`
	PasswordHash string     `json:"-" gorm:"size:100;not null"`
	FullName     string     `json:"full_name" gorm:"size:200"`
	PhoneNumber  string     `json:"phone_number" gorm:"size:20"`
	AvatarURL    string     `json:"avatar_url" gorm:"size:500"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
