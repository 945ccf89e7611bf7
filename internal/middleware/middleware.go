package middleware

import (
	"pantry-manager/domain"
	"pantry-manager/internal/api/presenters"
	"pantry-manager/pkg/jwt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	corsAllowOrigin  = "*"
	corsAllowHeaders = "authorization, x-client-info, apikey, content-type"
	corsAllowMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
)

type (
	Middleware interface {
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		CORSMiddleware() fiber.Handler
	}

	middleware struct {
		ownerMode          string
		placeholderOwnerID string
	}
)

func NewMiddleware(ownerMode string, placeholderOwnerID string) Middleware {
	if ownerMode != domain.OwnerModeSession {
		ownerMode = domain.OwnerModePlaceholder
	}
	if placeholderOwnerID == "" {
		placeholderOwnerID = domain.DefaultPlaceholderOwnerID
	}
	return &middleware{
		ownerMode:          ownerMode,
		placeholderOwnerID: placeholderOwnerID,
	}
}

// AuthMiddleware sets "user_id" to the session user and "owner_id" to the id
// stamped on owned rows, which is the placeholder unless OWNER_MODE=session.
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}
		if !strings.HasPrefix(header, "Bearer ") {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, domain.ErrTokenInvalid)
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		userID, err := jwtService.GetUserIDByToken(token)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}

		c.Locals("user_id", userID)
		c.Locals("owner_id", m.ownerID(userID))
		return c.Next()
	}
}

func (m *middleware) ownerID(userID string) string {
	if m.ownerMode == domain.OwnerModeSession {
		return userID
	}
	return m.placeholderOwnerID
}

// CORSMiddleware answers preflight requests with an empty 200.
func (m *middleware) CORSMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowOrigin, corsAllowOrigin)
		c.Set(fiber.HeaderAccessControlAllowHeaders, corsAllowHeaders)

		if c.Method() == fiber.MethodOptions {
			c.Set(fiber.HeaderAccessControlAllowMethods, corsAllowMethods)
			return c.Status(fiber.StatusOK).Send(nil)
		}
		return c.Next()
	}
}
