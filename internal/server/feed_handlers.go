package server

import (
	"github.com/gofiber/fiber/v2"
)

// GlobalFeed returns one page of all posts, newest first. Sits behind the
// page cache, so anonymous readers may see content up to the cache TTL stale.
func (s *Server) GlobalFeed(c *fiber.Ctx) error {
	page, err := s.feedService.GlobalFeed(c.Context(), parsePage(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pageResponse(page))
}

// GroupFeed returns one page of a group's posts plus the group itself.
func (s *Server) GroupFeed(c *fiber.Ctx) error {
	group, page, err := s.feedService.GroupFeed(c.Context(), c.Params("slug"), parsePage(c))
	if err != nil {
		return respondError(c, err)
	}

	resp := pageResponse(page)
	resp["group"] = group
	return c.JSON(resp)
}

// ProfileFeed returns one page of an author's posts, the author, and whether
// the requesting user already follows them.
func (s *Server) ProfileFeed(c *fiber.Ctx) error {
	author, page, following, err := s.feedService.ProfileFeed(
		c.Context(), c.Params("username"), parsePage(c), optionalUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	resp := pageResponse(page)
	resp["author"] = author
	resp["following"] = following
	return c.JSON(resp)
}

// FollowingFeed returns one page of posts from the authors the current user
// follows. Following nobody yields an empty page.
func (s *Server) FollowingFeed(c *fiber.Ctx) error {
	page, err := s.feedService.FollowingFeed(c.Context(), currentUserID(c), parsePage(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pageResponse(page))
}
