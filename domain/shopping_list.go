package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessAddShoppingItem    = "item added to shopping list"
	MessageSuccessMergeShoppingItem  = "item quantity updated in shopping list"
	MessageSuccessUpdateShoppingItem = "item updated successfully"
	MessageSuccessToggleShoppingItem = "item status updated"
	MessageSuccessDeleteShoppingItem = "item removed from shopping list"
	MessageSuccessGetShoppingItems   = "shopping list retrieved successfully"
	MessageSuccessShareShoppingList  = "shopping list sent"

	MessageFailedAddShoppingItem    = "failed to add item"
	MessageFailedUpdateShoppingItem = "failed to update item"
	MessageFailedToggleShoppingItem = "failed to update item status"
	MessageFailedDeleteShoppingItem = "failed to delete item"
	MessageFailedGetShoppingItems   = "failed to retrieve shopping list"
	MessageFailedShareShoppingList  = "failed to send shopping list"

	ErrShoppingItemNotFound = errors.New("shopping list item not found")
	ErrNonPositiveQuantity  = errors.New("quantity must be positive")
	ErrEmptyShoppingList    = errors.New("shopping list has no open items")
)

type (
	AddShoppingItemRequest struct {
		Name     string  `json:"name" validate:"required"`
		Quantity float64 `json:"quantity" validate:"required,gt=0"`
	}

	UpdateShoppingItemRequest struct {
		Name     string  `json:"name" validate:"required"`
		Quantity float64 `json:"quantity" validate:"required,gt=0"`
	}

	ShareShoppingListRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ShoppingItemResponse struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Quantity  float64   `json:"quantity"`
		Completed bool      `json:"completed"`
		CreatedAt time.Time `json:"created_at"`
	}

	AddShoppingItemResponse struct {
		Item   ShoppingItemResponse `json:"item"`
		Merged bool                 `json:"merged"`
	}
)
