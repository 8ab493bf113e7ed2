package models

import "time"

// Clients have no login, they belong to one business.
type Client struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"index;not null" json:"business_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
