package models

import "time"

// BusinessID is a pointer because platform admins are not bound to a
// tenant; every other role must carry one.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BusinessID *uint     `gorm:"index" json:"business_id"`
	Business   *Business `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"business,omitempty"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'owner'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
