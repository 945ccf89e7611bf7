package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

const (
	DietaryCarnivore   = "carnivore"
	DietaryVegetarian  = "vegetarian"
	DietaryVegan       = "vegan"
	DietaryPescatarian = "pescatarian"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe added successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessUploadImage     = "image uploaded successfully"
	MessageSuccessToggleFavorite  = "favorite status updated"
	MessageSuccessGetHistory      = "success get recipe history"
	MessageSuccessMarkAsCooked    = "recipe marked as cooked successfully"
	MessageSuccessGetNotes        = "success get recipe notes"
	MessageSuccessAddNote         = "note added successfully"
	MessageSuccessDeleteNote      = "note deleted successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to add recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedUploadImage     = "failed to upload image, please try again"
	MessageFailedToggleFavorite  = "failed to update favorite status"
	MessageFailedGetHistory      = "failed to get recipe history"
	MessageFailedMarkAsCooked    = "failed to mark recipe as cooked"
	MessageFailedGetNotes        = "failed to get recipe notes"
	MessageFailedAddNote         = "failed to add note"
	MessageFailedDeleteNote      = "failed to delete note"

	ErrRecipeNotFound           = errors.New("recipe not found")
	ErrNoteNotFound             = errors.New("note not found")
	ErrUnauthorizedRecipeAccess = errors.New("unauthorized access to recipe")
	ErrInvalidTitle             = errors.New("title is required")
	ErrNegativeServings         = errors.New("number of servings cannot be negative")
	ErrNegativePrepTime         = errors.New("prep time cannot be negative")
	ErrInvalidDietaryType       = errors.New("invalid dietary type")
	ErrEmptyNote                = errors.New("note cannot be empty")
	ErrInvalidImageFormat       = errors.New("invalid image format")
)

var DietaryTypes = []string{DietaryCarnivore, DietaryVegetarian, DietaryVegan, DietaryPescatarian}

func IsDietaryType(v string) bool {
	for _, t := range DietaryTypes {
		if t == v {
			return true
		}
	}
	return false
}

type (
	IngredientRequest struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity" validate:"min=0"`
	}

	CreateRecipeRequest struct {
		Title       string              `json:"title" validate:"required"`
		Description string              `json:"description"`
		PrepTime    int                 `json:"prep_time"`
		Servings    int                 `json:"servings"`
		DietaryType string              `json:"dietary_type" validate:"omitempty,oneof=carnivore vegetarian vegan pescatarian"`
		ImageURL    string              `json:"image_url" validate:"omitempty,url"`
		Ingredients []IngredientRequest `json:"ingredients" validate:"dive"`
	}

	UpdateRecipeRequest struct {
		Title       string               `json:"title" validate:"required"`
		Description string               `json:"description"`
		PrepTime    *int                 `json:"prep_time"`
		Servings    *int                 `json:"servings"`
		DietaryType string               `json:"dietary_type" validate:"omitempty,oneof=carnivore vegetarian vegan pescatarian"`
		ImageURL    *string              `json:"image_url"`
		Ingredients *[]IngredientRequest `json:"ingredients"`
	}

	RecipeFilter struct {
		Search        string
		DietaryTypes  []string
		FavoritesOnly bool
		Page          int
		Limit         int
	}

	UploadRecipeImageRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	UploadRecipeImageResponse struct {
		ImageURL string `json:"image_url"`
	}

	Recipe struct {
		ID          string     `json:"id"`
		Title       string     `json:"title"`
		Description string     `json:"description"`
		ImageURL    string     `json:"image_url,omitempty"`
		PrepTime    int        `json:"prep_time"`
		Servings    int        `json:"servings"`
		DietaryType string     `json:"dietary_type"`
		CreatedAt   time.Time  `json:"created_at"`
		IsFavorite  bool       `json:"is_favorite"`
		CookedAt    *time.Time `json:"cooked_at,omitempty"`
	}

	Ingredient struct {
		ID       string  `json:"id"`
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
	}

	RecipeDetail struct {
		Recipe
		Ingredients []Ingredient `json:"ingredients"`
	}

	RecipeListResponse struct {
		Recipes    []Recipe   `json:"recipes"`
		Pagination Pagination `json:"pagination"`
	}

	ToggleFavoriteResponse struct {
		RecipeID  string `json:"recipe_id"`
		Favorited bool   `json:"favorited"`
	}

	RecipeHistoryResponse struct {
		Recipes []Recipe `json:"recipes"`
		Total   int      `json:"total"`
	}

	AddNoteRequest struct {
		Note string `json:"note" validate:"required"`
	}

	Note struct {
		ID        string    `json:"id"`
		Note      string    `json:"note"`
		CreatedAt time.Time `json:"created_at"`
	}
)
