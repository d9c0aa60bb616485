package entities

import (
	"github.com/google/uuid"
)

// Slider is one home-screen banner image.
type Slider struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name     string    `json:"name"`
	ImageURL string    `json:"image_url"`
	Position int       `json:"position"`
	Timestamp
}
