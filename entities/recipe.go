package entities

import (
	"github.com/google/uuid"
	"time"
)

type Recipe struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      *uuid.UUID `gorm:"type:uuid" json:"user_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url,omitempty"`
	PrepTime    int        `json:"prep_time"` // minutes
	Servings    int        `json:"servings"`
	DietaryType string     `json:"dietary_type"` // carnivore, vegetarian, vegan, pescatarian

	Ingredients []*RecipeIngredient `gorm:"foreignKey:RecipeID"`
	Timestamp
}

type RecipeIngredient struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;index" json:"recipe_id"`
	Name      string    `json:"name"`
	Quantity  float64   `json:"quantity"` // grams
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
}

type RecipeNote struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;index" json:"recipe_id"`
	UserID   uuid.UUID `gorm:"type:uuid" json:"user_id"`
	Note     string    `gorm:"type:text" json:"note"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
	Timestamp
}

type FavoriteRecipe struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;index" json:"recipe_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
}

type CookedRecipe struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	RecipeID uuid.UUID `gorm:"type:uuid;index" json:"recipe_id"`
	CookedAt time.Time `gorm:"type:timestamp" json:"cooked_at"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
}
