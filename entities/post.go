package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"github.com/google/uuid"
	"strconv"
)

type Post struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index" json:"user_uid"`
	UserEmail   string    `json:"user_email"`
	UserName    string    `json:"user_name"`
	UserImage   string    `json:"user_image,omitempty"`
	Title       string    `gorm:"index" json:"title"`
	Description string    `json:"description"`
	Category    string    `gorm:"index" json:"category"`
	Method      string    `json:"method,omitempty"`
	Price       string    `json:"price,omitempty"`
	Address     string    `json:"address,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Ingredients PostItems `gorm:"type:jsonb" json:"ingredients"`
	Materials   PostItems `gorm:"type:jsonb" json:"materials"`
	Equipments  PostItems `gorm:"type:jsonb" json:"equipments"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

// PostItem is one {name, quantity} row of an ingredient, material or equipment list.
type PostItem struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// UnmarshalJSON never fails: a missing or non-text name decodes as "" and
// a non-object entry decodes as the zero item.
func (i *PostItem) UnmarshalJSON(data []byte) error {
	*i = PostItem{}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	if name, ok := raw["name"].(string); ok {
		i.Name = name
	}

	switch q := raw["quantity"].(type) {
	case string:
		i.Quantity = q
	case float64:
		i.Quantity = strconv.FormatFloat(q, 'f', -1, 64)
	}
	return nil
}

type PostItems []PostItem

func (p *PostItems) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*p = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for post items: %T", value)
	}

	var items []PostItem
	if err := json.Unmarshal(data, &items); err != nil {
		// anything that is not a list is stored garbage, read it as empty
		*p = PostItems{}
		return nil
	}
	*p = items
	return nil
}

func (p PostItems) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
