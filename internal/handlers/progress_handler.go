package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/readgroup-backend/internal/service"
)

type ProgressHandler struct {
	progressService *service.ProgressService
}

func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// GetProgress returns the caller's progress on the read in :id.
func (h *ProgressHandler) GetProgress(c *fiber.Ctx) error {
	progress, err := h.progressService.GetByUserAndRead(c.UserContext(), requesterID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return fail(c, fiber.StatusInternalServerError, err, "Progress does not exist!")
		}
		return fail(c, fiber.StatusInternalServerError, err, "")
	}
	return c.JSON(progress)
}

func (h *ProgressHandler) UpsertProgress(c *fiber.Ctx) error {
	var input service.UpsertProgressInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, fiber.StatusInternalServerError, err, "")
	}

	progress, err := h.progressService.Upsert(c.UserContext(), requesterID(c), input)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err, "Failed to update progress")
	}
	return c.JSON(progress)
}
