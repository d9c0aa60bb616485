package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name     string    `json:"name"`
	Email    string    `gorm:"uniqueIndex" json:"email"`
	Password string    `json:"-"`
	ImageURL string    `json:"image_url,omitempty"`
	Role     string    `json:"role"`

	Posts    []*Post       `gorm:"foreignKey:UserID"`
	Location *UserLocation `gorm:"foreignKey:UserID"`
	Timestamp
}
