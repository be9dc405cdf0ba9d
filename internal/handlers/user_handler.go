package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/readgroup-backend/internal/models"
	"github.com/noteduco342/readgroup-backend/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.List(c.UserContext())
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err, "Failed to fetch users")
	}

	out := make([]models.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToResponse())
	}
	return c.JSON(out)
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.userService.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return fail(c, fiber.StatusInternalServerError, err, "User does not exist!")
		}
		return fail(c, fiber.StatusInternalServerError, err, "")
	}
	return c.JSON(user.ToResponse())
}

func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var input service.CreateUserInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, fiber.StatusInternalServerError, err, "")
	}

	user, err := h.userService.Create(c.UserContext(), input)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err, "")
	}
	return c.JSON(user.ToResponse())
}

func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	var input service.UpdateUserInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, fiber.StatusInternalServerError, err, "")
	}

	user, err := h.userService.Update(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err, "User does not exist and, therefore, cannot be updated.")
	}
	return c.JSON(user.ToResponse())
}

func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.userService.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, fiber.StatusInternalServerError, err, "")
	}
	return c.SendStatus(fiber.StatusOK)
}
