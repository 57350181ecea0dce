package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListGroups returns all groups ordered by title.
func (s *Server) ListGroups(c *fiber.Ctx) error {
	groups, err := s.groupService.List(c.Context(), 100, 0)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"groups": groups})
}

// CreateGroup creates a new group (admin only).
func (s *Server) CreateGroup(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	group, err := s.groupService.Create(c.Context(), currentUserID(c), req.Title, req.Slug, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

// DeleteGroup removes a group (admin only). Posts filed under it stay,
// detached from any group.
func (s *Server) DeleteGroup(c *fiber.Ctx) error {
	if err := s.groupService.Delete(c.Context(), currentUserID(c), c.Params("slug")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Group deleted"})
}
