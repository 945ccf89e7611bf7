package presenters

import (
	"errors"
	"pantry-manager/domain"
	"pantry-manager/pkg/reconcile"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, status int, message string) error {
	return c.Status(status).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse hides the cause of 5xx errors behind a generic message.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
	}
	if status >= fiber.StatusInternalServerError {
		res.Error = domain.MessageInternalError
	}
	return c.Status(status).JSON(res)
}

// PartialErrorResponse reports a failed multi-step write together with the
// steps that were applied before it.
func PartialErrorResponse(c *fiber.Ctx, status int, message string, data any, err error) error {
	return c.Status(status).JSON(Response{
		Status:  false,
		Message: message,
		Data:    data,
		Error:   err.Error(),
	})
}

var statusByError = []struct {
	err    error
	status int
}{
	{domain.ErrPantryItemNotFound, fiber.StatusNotFound},
	{domain.ErrShoppingItemNotFound, fiber.StatusNotFound},
	{domain.ErrRecipeNotFound, fiber.StatusNotFound},
	{domain.ErrNoteNotFound, fiber.StatusNotFound},
	{domain.ErrUnauthorizedAccess, fiber.StatusForbidden},
	{domain.ErrUnauthorizedRecipeAccess, fiber.StatusForbidden},
	{domain.ErrUserNotAllowed, fiber.StatusForbidden},
	{domain.ErrSessionMissing, fiber.StatusUnauthorized},
	{domain.ErrTokenInvalid, fiber.StatusUnauthorized},
	{domain.ErrTokenExpired, fiber.StatusUnauthorized},
	{domain.ErrTokenNotFound, fiber.StatusUnauthorized},
	{domain.ErrInvalidName, fiber.StatusBadRequest},
	{domain.ErrInvalidQuantity, fiber.StatusBadRequest},
	{domain.ErrInvalidExpiryDate, fiber.StatusBadRequest},
	{domain.ErrNonPositiveQuantity, fiber.StatusBadRequest},
	{domain.ErrEmptyShoppingList, fiber.StatusBadRequest},
	{domain.ErrNoShortfall, fiber.StatusBadRequest},
	{domain.ErrInvalidTitle, fiber.StatusBadRequest},
	{domain.ErrNegativeServings, fiber.StatusBadRequest},
	{domain.ErrNegativePrepTime, fiber.StatusBadRequest},
	{domain.ErrInvalidDietaryType, fiber.StatusBadRequest},
	{domain.ErrEmptyNote, fiber.StatusBadRequest},
	{domain.ErrInvalidImageFormat, fiber.StatusBadRequest},
	{domain.ErrParseUUID, fiber.StatusBadRequest},
}

// StatusFromError maps domain errors to HTTP statuses; anything unknown is a
// store or upstream failure.
func StatusFromError(err error) int {
	var mergeErr *reconcile.MergeError
	if errors.As(err, &mergeErr) {
		err = mergeErr.Err
	}
	for _, m := range statusByError {
		if errors.Is(err, m.err) {
			return m.status
		}
	}
	return fiber.StatusInternalServerError
}
