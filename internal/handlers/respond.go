package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/readgroup-backend/internal/httpx"
	"github.com/noteduco342/readgroup-backend/internal/logging"
	"github.com/noteduco342/readgroup-backend/internal/service"
)

var errInvalidBody = errors.New("Invalid request body")

// fail writes the error envelope. Validation errors always carry their own
// text; other errors use message when set and the error text otherwise.
func fail(c *fiber.Ctx, status int, err error, message string) error {
	if message == "" || errors.Is(err, service.ErrValidation) {
		message = err.Error()
	}
	if status >= fiber.StatusInternalServerError && !errors.Is(err, service.ErrValidation) && !errors.Is(err, service.ErrNotFound) {
		logging.FromContext(c.UserContext()).Error("request failed", "error", err)
	}
	return httpx.Error(c, status, message)
}

// parseBody decodes a JSON body into v. An empty body leaves v untouched so
// the service reports the missing fields.
func parseBody(c *fiber.Ctx, v interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(v); err != nil {
		return errInvalidBody
	}
	return nil
}
