package entities

import (
	"github.com/google/uuid"
	"time"
)

type PantryItem struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Name           string    `json:"name"`
	Quantity       float64   `json:"quantity"` // grams
	ExpirationDate time.Time `gorm:"type:date" json:"expiration_date"`

	Timestamp
}
