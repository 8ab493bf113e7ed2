package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	LocationID uint     `gorm:"index;not null" json:"location_id"`
	Location   Location `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"location"`

	StaffID uint `json:"staff_id"`
	Staff   User `gorm:"foreignKey:StaffID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// Rows of a recurring series point back at the first occurrence.
	// The parent itself has a nil ParentAppointmentID and every row of
	// the series stores the serialized rule it was generated from.
	ParentAppointmentID *uint  `gorm:"index" json:"parent_appointment_id"`
	RecurrenceRule      string `gorm:"type:text" json:"recurrence_rule,omitempty"`

	BookingRef string `gorm:"size:36;uniqueIndex" json:"booking_ref"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'booked'" json:"status"`
	Source string `gorm:"size:20" json:"source"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
