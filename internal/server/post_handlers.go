package server

import (
	"fmt"
	"io"
	"time"

	"inkwell/internal/media"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/notifications"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// postInputFromRequest accepts either a JSON body or a multipart form with an
// optional "image" file part.
func (s *Server) postInputFromRequest(c *fiber.Ctx) (service.PostInput, error) {
	var in service.PostInput

	if form, err := c.MultipartForm(); err == nil && form != nil {
		if v := form.Value["text"]; len(v) > 0 {
			in.Text = v[0]
		}
		if v := form.Value["group"]; len(v) > 0 {
			in.GroupSlug = v[0]
		}
		if files := form.File["image"]; len(files) > 0 {
			fh := files[0]
			if fh.Size > media.MaxUploadBytes {
				return in, models.NewValidationError("Image exceeds the 5MB limit")
			}
			f, err := fh.Open()
			if err != nil {
				return in, models.NewInternalError(err)
			}
			defer f.Close()
			data, err := io.ReadAll(io.LimitReader(f, media.MaxUploadBytes+1))
			if err != nil {
				return in, models.NewInternalError(err)
			}
			path, err := s.mediaStore.SaveImage(data)
			if err != nil {
				return in, err
			}
			in.Image = path
		}
		return in, nil
	}

	var req struct {
		Text  string `json:"text"`
		Group string `json:"group"`
	}
	if err := c.BodyParser(&req); err != nil {
		return in, models.NewValidationError("Invalid request body")
	}
	in.Text = req.Text
	in.GroupSlug = req.Group
	return in, nil
}

// CreatePost stores a new post for the current user and redirects to their
// profile, the page where the new post appears first.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := currentUserID(c)

	in, err := s.postInputFromRequest(c)
	if err != nil {
		return respondError(c, err)
	}

	post, err := s.postService.Create(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}

	s.publishFeedEvent(c.Context(), notifications.FeedEvent{
		Type:     notifications.EventPostCreated,
		PostID:   post.ID,
		AuthorID: post.AuthorID,
		At:       time.Now(),
	})

	return c.Redirect("/profile/"+post.Author.Username, fiber.StatusFound)
}

// PostDetail returns one post with its comments.
func (s *Server) PostDetail(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	post, err := s.postService.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	comments, err := s.commentService.ListByPost(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"post":     post,
		"comments": comments,
	})
}

// EditPost updates a post's text, group and image. Non-authors are redirected
// to the post's detail view instead of seeing an error; a successful edit
// redirects there too.
func (s *Server) EditPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	detailPath := fmt.Sprintf("/posts/%d", id)

	post, err := s.postService.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	if done, err := middleware.AuthorDecision(currentUserID(c), post.AuthorID, detailPath).Apply(c); done {
		return err
	}

	in, err := s.postInputFromRequest(c)
	if err != nil {
		return respondError(c, err)
	}

	if _, err := s.postService.Update(c.Context(), id, currentUserID(c), in); err != nil {
		return respondError(c, err)
	}

	return c.Redirect(detailPath, fiber.StatusFound)
}

// DeletePost removes a post (author or admin only).
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	userID := currentUserID(c)
	if err := s.postService.Delete(c.Context(), id, userID); err != nil {
		return respondError(c, err)
	}

	s.publishFeedEvent(c.Context(), notifications.FeedEvent{
		Type:   notifications.EventPostDeleted,
		PostID: id,
		At:     time.Now(),
	})

	return c.JSON(fiber.Map{"message": "Post deleted"})
}
