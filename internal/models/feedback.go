package models

import "time"

type Feedback struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:100" json:"name"`
	Email   string `gorm:"size:100" json:"email"`
	Message string `gorm:"size:1000;not null" json:"message"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
