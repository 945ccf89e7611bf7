package entities

import (
	"github.com/google/uuid"
)

type ShoppingListItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Name      string    `json:"name"`
	Quantity  float64   `json:"quantity"` // grams
	Completed bool      `gorm:"default:false" json:"completed"`

	Timestamp
}
