package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/readgroup-backend/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenRequest struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input LoginRequest
	if err := parseBody(c, &input); err != nil {
		return fail(c, fiber.StatusInternalServerError, err, "")
	}

	pair, err := h.authService.Login(c.UserContext(), input.Username, input.Password)
	switch {
	case err == nil:
		return c.JSON(pair)
	case errors.Is(err, service.ErrInvalidCredentials):
		return fail(c, fiber.StatusBadRequest, err, "Incorrect password!")
	case errors.Is(err, service.ErrNotFound):
		return fail(c, fiber.StatusInternalServerError, err, "User does not exist!")
	default:
		return fail(c, fiber.StatusInternalServerError, err, "")
	}
}

// Token exchanges a refresh token for a new access token.
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var input TokenRequest
	if err := parseBody(c, &input); err != nil {
		return fail(c, fiber.StatusUnauthorized, service.ErrUnauthenticated, "Missing refresh token")
	}

	access, err := h.authService.Refresh(c.UserContext(), input.Token)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"accessToken": access})
	case errors.Is(err, service.ErrUnauthenticated):
		return fail(c, fiber.StatusUnauthorized, err, "Missing refresh token")
	case errors.Is(err, service.ErrForbidden):
		return fail(c, fiber.StatusForbidden, err, "Invalid refresh token")
	default:
		return fail(c, fiber.StatusInternalServerError, err, "Failed to refresh token")
	}
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var input TokenRequest
	_ = parseBody(c, &input)

	if err := h.authService.Logout(c.UserContext(), input.Token); err != nil {
		return fail(c, fiber.StatusInternalServerError, err, "Failed to log out")
	}
	return c.Status(fiber.StatusOK).SendString("Logout successful!")
}
