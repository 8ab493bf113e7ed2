package models

import "time"

// A booking request may bundle several services; the appointment keeps
// the first one as its primary service and the full set lives here.
type AppointmentService struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index;not null" json:"appointment_id"`
	ServiceID     uint `gorm:"not null" json:"service_id"`

	CreatedAt time.Time `json:"created_at"`
}
