package server

import (
	"time"

	"inkwell/internal/notifications"

	"github.com/gofiber/fiber/v2"
)

// FollowAuthor creates a follow edge from the current user to the named
// author and redirects to their profile. Following someone twice, or
// yourself, lands on the same profile with nothing changed.
func (s *Server) FollowAuthor(c *fiber.Ctx) error {
	target, err := s.followService.Follow(c.Context(), currentUserID(c), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}

	s.publishFeedEvent(c.Context(), notifications.FeedEvent{
		Type:     notifications.EventFollowCreated,
		AuthorID: target.ID,
		At:       time.Now(),
	})

	return c.Redirect("/profile/"+target.Username, fiber.StatusFound)
}

// UnfollowAuthor removes the follow edge and redirects to the profile.
// Unfollowing someone never followed is a 404.
func (s *Server) UnfollowAuthor(c *fiber.Ctx) error {
	target, err := s.followService.Unfollow(c.Context(), currentUserID(c), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Redirect("/profile/"+target.Username, fiber.StatusFound)
}
