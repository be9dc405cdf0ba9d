package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/readgroup-backend/internal/httpx"
	"github.com/noteduco342/readgroup-backend/internal/models"
)

const (
	LocalUserID   = "userID"
	LocalUsername = "username"
)

// Authenticator verifies an access token and returns the identity it carries.
type Authenticator interface {
	Authenticate(token string) (*models.Identity, error)
}

// AuthRequired rejects requests without a bearer credential with 401 and
// requests whose credential fails verification with 403. Neither reaches the
// next handler.
func AuthRequired(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return httpx.Unauthorized(c, "Missing access token")
		}

		// Extract token from "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return httpx.Forbidden(c, "Invalid authorization format")
		}

		identity, err := auth.Authenticate(parts[1])
		if err != nil || identity == nil {
			return httpx.Forbidden(c, "Invalid or expired token")
		}

		// Store user info in context
		c.Locals(LocalUserID, identity.ID)
		c.Locals(LocalUsername, identity.Username)

		return c.Next()
	}
}

// AuthUnless runs AuthRequired only when skip reports false.
func AuthUnless(auth Authenticator, skip func(c *fiber.Ctx) bool) fiber.Handler {
	gate := AuthRequired(auth)
	return func(c *fiber.Ctx) error {
		if skip(c) {
			return c.Next()
		}
		return gate(c)
	}
}

// Identity returns the caller attached by AuthRequired, or nil.
func Identity(c *fiber.Ctx) *models.Identity {
	id, err := httpx.LocalString(c, LocalUserID)
	if err != nil {
		return nil
	}
	username, _ := c.Locals(LocalUsername).(string)
	return &models.Identity{ID: id, Username: username}
}
