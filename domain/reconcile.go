package domain

import "errors"

var (
	MessageSuccessCheckIngredients = "you have all ingredients"
	MessageMissingIngredients      = "missing ingredients found"
	MessageSuccessAddShortfalls    = "items added to shopping list"

	MessageFailedCheckIngredients = "failed to check ingredients"
	MessageFailedAddShortfalls    = "failed to add items to shopping list"

	ErrNoShortfall = errors.New("ingredient is not short")
)

type (
	// Quantity is a name/grams pair as read from any of the three sources.
	Quantity struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
	}

	MissingIngredient struct {
		Name                 string  `json:"name" validate:"required"`
		RequiredQuantity     float64 `json:"requiredQuantity" validate:"gt=0"`
		AvailableQuantity    float64 `json:"availableQuantity" validate:"min=0"`
		PantryQuantity       float64 `json:"pantryQuantity"`
		ShoppingListQuantity float64 `json:"shoppingListQuantity"`
	}

	CheckIngredientsResponse struct {
		Missing  []MissingIngredient `json:"missing"`
		CanCook  bool                `json:"can_cook"`
		RecipeID string              `json:"recipe_id"`
	}

	AddShortfallsRequest struct {
		Missing []MissingIngredient `json:"missing" validate:"required,min=1,dive"`
	}

	MergedEntry struct {
		Name     string  `json:"name"`
		ItemID   string  `json:"item_id"`
		Added    float64 `json:"added"`
		Quantity float64 `json:"quantity"`
		Created  bool    `json:"created"`
	}

	AddShortfallsResponse struct {
		Applied []MergedEntry `json:"applied"`
		Next    string        `json:"next"`
	}
)

// Shortfall is the quantity still needed for a missing ingredient.
func (m MissingIngredient) Shortfall() float64 {
	return m.RequiredQuantity - m.AvailableQuantity
}
