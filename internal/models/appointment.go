package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	DoctorID uint   `json:"doctor_id"`
	Doctor   Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"doctor"`

	// SlotDate is "DD_MM_YYYY", SlotTime is 24-hour "HH:MM".
	SlotDate string `gorm:"size:10;not null;index:idx_appointments_slot" json:"slot_date"`
	SlotTime string `gorm:"size:5;not null;index:idx_appointments_slot" json:"slot_time"`

	Amount float64 `json:"amount"`

	Cancelled   bool `gorm:"default:false" json:"cancelled"`
	Payment     bool `gorm:"default:false" json:"payment"`
	IsCompleted bool `gorm:"default:false" json:"is_completed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
