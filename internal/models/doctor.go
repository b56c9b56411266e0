package models

import "time"

type Doctor struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	Image      string  `gorm:"size:500" json:"image"`
	Speciality string  `gorm:"size:100" json:"speciality"`
	Degree     string  `gorm:"size:100" json:"degree"`
	Experience string  `gorm:"size:50" json:"experience"`
	About      string  `gorm:"size:1000" json:"about"`
	Fees       float64 `json:"fees"`

	AddressLine1 string `gorm:"size:255" json:"address_line1"`
	AddressLine2 string `gorm:"size:255" json:"address_line2"`

	Available bool `gorm:"default:true" json:"available"`

	// SlotsBooked is the doctor's occupancy map: date key -> claimed times.
	SlotsBooked SlotMap `gorm:"type:jsonb;default:'{}'" json:"slots_booked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
