package server

import (
	"fmt"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/notifications"

	"github.com/gofiber/fiber/v2"
)

// AddComment attaches a comment to a post and redirects back to the detail
// view where the comment now appears.
func (s *Server) AddComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		Text string `json:"text" form:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Add(c.Context(), postID, currentUserID(c), req.Text)
	if err != nil {
		return respondError(c, err)
	}

	s.publishFeedEvent(c.Context(), notifications.FeedEvent{
		Type:     notifications.EventCommentAdded,
		PostID:   postID,
		AuthorID: comment.AuthorID,
		At:       time.Now(),
	})

	return c.Redirect(fmt.Sprintf("/posts/%d", postID), fiber.StatusFound)
}

// DeleteComment removes a comment (author or admin only).
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := s.commentService.Delete(c.Context(), id, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted"})
}
