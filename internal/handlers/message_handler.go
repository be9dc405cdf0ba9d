package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/readgroup-backend/internal/middleware"
	"github.com/noteduco342/readgroup-backend/internal/service"
)

type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

func (h *MessageHandler) CreateMessage(c *fiber.Ctx) error {
	var input service.CreateMessageInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, fiber.StatusBadRequest, err, "")
	}

	message, err := h.messageService.Create(c.UserContext(), input, middleware.Identity(c))
	switch {
	case err == nil:
		return c.JSON(message)
	case errors.Is(err, service.ErrValidation):
		return fail(c, fiber.StatusBadRequest, err, "")
	default:
		return fail(c, fiber.StatusInternalServerError, err, "")
	}
}

// GetMessages lists the messages of the read in :id that the caller has
// progressed past.
func (h *MessageHandler) GetMessages(c *fiber.Ctx) error {
	messages, err := h.messageService.ListByReadUpToProgress(c.UserContext(), c.Params("id"), requesterID(c))
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err, "Failed to fetch messages")
	}
	return c.JSON(messages)
}

func (h *MessageHandler) DeleteMessage(c *fiber.Ctx) error {
	err := h.messageService.Delete(c.UserContext(), c.Params("id"), requesterID(c))
	switch {
	case err == nil:
		return c.SendStatus(fiber.StatusOK)
	case errors.Is(err, service.ErrForbidden):
		return fail(c, fiber.StatusBadRequest, err, "Only the author can delete a message.")
	case errors.Is(err, service.ErrNotFound):
		return fail(c, fiber.StatusInternalServerError, err, "Message does not exist!")
	default:
		return fail(c, fiber.StatusInternalServerError, err, "")
	}
}
