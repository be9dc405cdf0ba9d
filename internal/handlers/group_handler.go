package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/readgroup-backend/internal/middleware"
	"github.com/noteduco342/readgroup-backend/internal/models"
	"github.com/noteduco342/readgroup-backend/internal/service"
)

type GroupHandler struct {
	groupService *service.GroupService
}

func NewGroupHandler(groupService *service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

type CreateGroupRequest struct {
	Name *string `json:"name"`
}

func (h *GroupHandler) GetGroup(c *fiber.Ctx) error {
	group, err := h.groupService.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return fail(c, fiber.StatusInternalServerError, err, "Group does not exist!")
		}
		return fail(c, fiber.StatusInternalServerError, err, "")
	}
	return c.JSON(group.ToResponse())
}

func (h *GroupHandler) GetMyGroups(c *fiber.Ctx) error {
	var userID string
	if id := middleware.Identity(c); id != nil {
		userID = id.ID
	}

	groups, err := h.groupService.ListForUser(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			return fail(c, fiber.StatusBadRequest, err, "No user present in request.")
		}
		return fail(c, fiber.StatusInternalServerError, err, "Failed to fetch groups")
	}

	out := make([]models.GroupResponse, 0, len(groups))
	for i := range groups {
		out = append(out, groups[i].ToResponse())
	}
	return c.JSON(out)
}

func (h *GroupHandler) CreateGroup(c *fiber.Ctx) error {
	var req CreateGroupRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, fiber.StatusInternalServerError, err, "")
	}

	group, err := h.groupService.Create(c.UserContext(), req.Name, middleware.Identity(c))
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			return fail(c, fiber.StatusInternalServerError, err, "No user present in request.")
		}
		return fail(c, fiber.StatusInternalServerError, err, "")
	}
	return c.JSON(group.ToResponse())
}

// HasGroupPatch reports whether a PUT /groups/:id body carries patchable
// fields. Such requests update the group; all others join it.
func HasGroupPatch(c *fiber.Ctx) bool {
	var input service.UpdateGroupInput
	if err := parseBody(c, &input); err != nil {
		return false
	}
	return !input.Empty()
}

// UpdateOrJoin serves PUT /groups/:id. A body with patch fields updates the
// group, anything else adds the authenticated caller to its members.
func (h *GroupHandler) UpdateOrJoin(c *fiber.Ctx) error {
	if HasGroupPatch(c) {
		return h.UpdateGroup(c)
	}
	return h.JoinGroup(c)
}

func (h *GroupHandler) UpdateGroup(c *fiber.Ctx) error {
	var input service.UpdateGroupInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, fiber.StatusInternalServerError, err, "")
	}

	group, err := h.groupService.Update(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err, "Group does not exist and, therefore, cannot be updated.")
	}
	return c.JSON(group.ToResponse())
}

func (h *GroupHandler) JoinGroup(c *fiber.Ctx) error {
	id := middleware.Identity(c)
	if id == nil {
		return fail(c, fiber.StatusInternalServerError, service.ErrUnauthenticated, "No user present in request, so user cannot be added to group.")
	}

	group, err := h.groupService.Join(c.UserContext(), c.Params("id"), id.ID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return fail(c, fiber.StatusInternalServerError, err, "Group does not exist!")
		}
		return fail(c, fiber.StatusInternalServerError, err, "")
	}
	return c.JSON(group.ToResponse())
}

func (h *GroupHandler) DeleteGroup(c *fiber.Ctx) error {
	if err := h.groupService.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, fiber.StatusInternalServerError, err, "")
	}
	return c.SendStatus(fiber.StatusOK)
}
