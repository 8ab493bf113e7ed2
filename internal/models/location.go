package models

import "time"

// Appointments are scoped to a tenant through their location, so every
// location row must resolve to exactly one business.
type Location struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	BusinessID uint     `gorm:"index;not null" json:"business_id"`
	Business   Business `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"business"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Address  string `gorm:"size:255" json:"address"`
	Phone    string `gorm:"size:20" json:"phone"`
	Timezone string `gorm:"size:50" json:"timezone"`
	Active   bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
