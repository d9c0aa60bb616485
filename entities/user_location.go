package entities

import (
	"github.com/google/uuid"
)

// UserLocation is a user's map pin. There is at most one per user.
type UserLocation struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_uid"`
	UserName  string    `json:"user_name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Address   *string   `json:"address"` // filled asynchronously by reverse geocoding

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
