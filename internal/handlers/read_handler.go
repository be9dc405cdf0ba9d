package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/readgroup-backend/internal/middleware"
	"github.com/noteduco342/readgroup-backend/internal/service"
)

type ReadHandler struct {
	readService *service.ReadService
}

func NewReadHandler(readService *service.ReadService) *ReadHandler {
	return &ReadHandler{readService: readService}
}

func requesterID(c *fiber.Ctx) string {
	if id := middleware.Identity(c); id != nil {
		return id.ID
	}
	return ""
}

func (h *ReadHandler) CreateRead(c *fiber.Ctx) error {
	var input service.CreateReadInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, fiber.StatusInternalServerError, err, "")
	}

	read, err := h.readService.Create(c.UserContext(), input, requesterID(c))
	switch {
	case err == nil:
		return c.JSON(read)
	case errors.Is(err, service.ErrForbidden):
		return fail(c, fiber.StatusBadRequest, err, "Only the group owner can add reads.")
	case errors.Is(err, service.ErrNotFound):
		return fail(c, fiber.StatusInternalServerError, err, "Group does not exist!")
	default:
		return fail(c, fiber.StatusInternalServerError, err, "")
	}
}

func (h *ReadHandler) ListGroupReads(c *fiber.Ctx) error {
	reads, err := h.readService.ListByGroup(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err, "Failed to fetch reads")
	}
	return c.JSON(reads)
}

func (h *ReadHandler) GetRead(c *fiber.Ctx) error {
	read, err := h.readService.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return fail(c, fiber.StatusInternalServerError, err, "Read does not exist!")
		}
		return fail(c, fiber.StatusInternalServerError, err, "")
	}
	return c.JSON(read)
}

func (h *ReadHandler) DeleteRead(c *fiber.Ctx) error {
	err := h.readService.Delete(c.UserContext(), c.Params("id"), requesterID(c))
	switch {
	case err == nil:
		return c.SendStatus(fiber.StatusOK)
	case errors.Is(err, service.ErrForbidden):
		return fail(c, fiber.StatusBadRequest, err, "Only the group owner can delete reads.")
	case errors.Is(err, service.ErrNotFound):
		return fail(c, fiber.StatusInternalServerError, err, "Read does not exist!")
	default:
		return fail(c, fiber.StatusInternalServerError, err, "")
	}
}
