package handlers

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/readgroup-backend/internal/logging"
	"github.com/noteduco342/readgroup-backend/internal/service"
)

func normalizeETag(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "W/")
	v = strings.Trim(v, "\"")
	return v
}

func contentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrStorageUnavailable):
		return fail(c, fiber.StatusServiceUnavailable, err, "Storage not configured")
	case errors.Is(err, service.ErrForbidden):
		return fail(c, fiber.StatusBadRequest, err, "Only the group owner can upload content.")
	case errors.Is(err, service.ErrNotFound):
		return fail(c, fiber.StatusInternalServerError, err, "Content does not exist!")
	default:
		return fail(c, fiber.StatusInternalServerError, err, "Failed to access content")
	}
}

// PutContent stores the raw request body as the document of a read.
func (h *ReadHandler) PutContent(c *fiber.Ctx) error {
	body := c.Body()
	read, err := h.readService.PutContent(
		c.UserContext(),
		c.Params("id"),
		requesterID(c),
		bytes.NewReader(body),
		int64(len(body)),
		c.Get(fiber.HeaderContentType),
	)
	if err != nil {
		return contentError(c, err)
	}
	return c.JSON(read)
}

// GetContent streams the document of a read.
func (h *ReadHandler) GetContent(c *fiber.Ctx) error {
	readID := strings.Clone(c.Params("id"))
	obj, st, err := h.readService.GetContent(c.UserContext(), readID)
	if err != nil {
		return contentError(c, err)
	}

	if st.ETag != "" {
		c.Set(fiber.HeaderETag, "\""+st.ETag+"\"")
		if inm := normalizeETag(c.Get(fiber.HeaderIfNoneMatch)); inm != "" && inm == normalizeETag(st.ETag) {
			_ = obj.Close()
			return c.SendStatus(fiber.StatusNotModified)
		}
	}
	if !st.LastModified.IsZero() {
		c.Set(fiber.HeaderLastModified, st.LastModified.UTC().Format(time.RFC1123))
	}
	if st.ContentType != "" {
		c.Set(fiber.HeaderContentType, st.ContentType)
	}
	if st.Size > 0 {
		c.Set(fiber.HeaderContentLength, strconv.FormatInt(st.Size, 10))
	}

	logger := logging.FromContext(c.UserContext())
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer func() {
			_ = obj.Close()
		}()

		n, copyErr := io.Copy(w, obj)
		if copyErr != nil {
			logger.Warn("content stream failed", "read", readID, "copied", n, "error", copyErr)
			return
		}
		if err := w.Flush(); err != nil {
			logger.Warn("content stream flush failed", "read", readID, "copied", n, "error", err)
		}
	})
	return nil
}
