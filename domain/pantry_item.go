package domain

import (
	"errors"
	"time"
)

const (
	ExpiryStatusExpired  = "expired"
	ExpiryStatusExpiring = "expiring"
	ExpiryStatusFresh    = "fresh"
)

var (
	MessageSuccessAddPantryItem    = "pantry item added successfully"
	MessageSuccessUpdatePantryItem = "pantry item updated successfully"
	MessageSuccessDeletePantryItem = "pantry item removed from pantry"
	MessageSuccessGetPantryItems   = "pantry items retrieved successfully"

	MessageFailedAddPantryItem    = "failed to add item"
	MessageFailedUpdatePantryItem = "failed to update item"
	MessageFailedDeletePantryItem = "failed to delete item"
	MessageFailedGetPantryItems   = "failed to retrieve pantry items"

	ErrPantryItemNotFound = errors.New("pantry item not found")
	ErrInvalidName        = errors.New("name is required")
	ErrInvalidQuantity    = errors.New("quantity cannot be negative")
	ErrInvalidExpiryDate  = errors.New("invalid expiration date")
	ErrUnauthorizedAccess = errors.New("unauthorized access to item")
)

type (
	AddPantryItemRequest struct {
		Name           string  `json:"name" validate:"required"`
		Quantity       float64 `json:"quantity" validate:"min=0"`
		ExpirationDate string  `json:"expiration_date" validate:"required"`
	}

	UpdatePantryItemRequest struct {
		Name           string   `json:"name" validate:"omitempty"`
		Quantity       *float64 `json:"quantity" validate:"omitempty,min=0"`
		ExpirationDate string   `json:"expiration_date" validate:"omitempty"`
	}

	PantryItemResponse struct {
		ID              string    `json:"id"`
		Name            string    `json:"name"`
		Quantity        float64   `json:"quantity"`
		ExpirationDate  time.Time `json:"expiration_date"`
		DaysUntilExpiry int       `json:"days_until_expiry"`
		ExpiryStatus    string    `json:"expiry_status"`
		CreatedAt       time.Time `json:"created_at"`
	}
)
