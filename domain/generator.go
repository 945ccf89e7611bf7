package domain

import "errors"

var (
	ErrInvalidPantryItems = errors.New("Invalid pantry items provided")
	ErrMissingOpenAIKey   = errors.New("no OpenAI API key configured")
	ErrEmptyCompletion    = errors.New("chat completion returned no choices")
)

type (
	GeneratePantryItem struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity,omitempty"`
	}

	GenerateRecipeRequest struct {
		PantryItems []GeneratePantryItem `json:"pantryItems"`
		OpenAIKey   string               `json:"openAIKey"`
	}

	GeneratedIngredient struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
	}

	GeneratedRecipe struct {
		Title        string                `json:"title"`
		Description  string                `json:"description"`
		Ingredients  []GeneratedIngredient `json:"ingredients"`
		Instructions string                `json:"instructions"`
		ImageURL     *string               `json:"image_url"`
	}

	// GenerateRecipeResponse carries the recipe as a JSON string, the shape
	// existing clients parse.
	GenerateRecipeResponse struct {
		Recipe string `json:"recipe"`
	}

	GenerateRecipeError struct {
		Error string `json:"error"`
	}
)
