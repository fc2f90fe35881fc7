package entity

import (
	"time"
)

// Customer is a first-class customer record with a stable id.
// Orders link to it via customer_id; the phone number is the natural
// dedup key at order intake.
type Customer struct {
	ID          string     `json:"id" gorm:"primaryKey;size:36"`
	Name        string     `json:"name" gorm:"size:200;not null;index"`
	PhoneNumber string     `json:"phone_number" gorm:"size:20;uniqueIndex"`
	Notes       string     `json:"notes" gorm:"type:text"`
	CreatedBy   string     `json:"created_by" gorm:"size:36;not null;index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	Orders []Order `json:"orders,omitempty" gorm:"foreignKey:CustomerID"`
}

func (Customer) TableName() string {
	return "customers"
}
