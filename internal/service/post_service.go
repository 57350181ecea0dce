package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// AdminChecker reports whether the given user has admin privileges.
type AdminChecker func(ctx context.Context, userID uint) (bool, error)

// PostService provides post create/read/update/delete business logic.
type PostService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
	isAdmin   AdminChecker
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, groupRepo repository.GroupRepository, isAdmin AdminChecker) *PostService {
	return &PostService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
		isAdmin:   isAdmin,
	}
}

// PostInput carries the author-mutable post fields. GroupSlug and Image are
// optional; empty values clear nothing on create and everything explicitly
// set on update.
type PostInput struct {
	Text      string
	GroupSlug string
	Image     string
}

// resolveGroup maps an optional slug to a group ID, validating existence.
func (s *PostService) resolveGroup(ctx context.Context, slug string) (*uint, error) {
	if slug == "" {
		return nil, nil
	}
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return nil, models.NewValidationError("Unknown group: " + slug)
		}
		return nil, err
	}
	return &group.ID, nil
}

// Create validates and stores a new post for the author.
func (s *PostService) Create(ctx context.Context, authorID uint, in PostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError("Text is required")
	}

	groupID, err := s.resolveGroup(ctx, in.GroupSlug)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     in.Text,
		AuthorID: authorID,
		GroupID:  groupID,
		Image:    in.Image,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// Get returns the post with the given ID.
func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// Update edits a post's text, group and image. Only the author may edit;
// anyone else gets an unauthorized error that the handler turns into a
// redirect to the post's detail view. Author and publication date never
// change.
func (s *PostService) Update(ctx context.Context, postID, editorID uint, in PostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != editorID {
		return nil, models.NewUnauthorizedError("Only the author can edit this post")
	}

	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError("Text is required")
	}

	groupID, err := s.resolveGroup(ctx, in.GroupSlug)
	if err != nil {
		return nil, err
	}

	post.Text = in.Text
	post.GroupID = groupID
	if in.Image != "" {
		post.Image = in.Image
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID)
}

// Delete removes a post. Allowed for the author or an admin; comments
// cascade with the post.
func (s *PostService) Delete(ctx context.Context, postID, requesterID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != requesterID {
		admin, err := s.isAdmin(ctx, requesterID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewUnauthorizedError("Only the author can delete this post")
		}
	}

	return s.postRepo.Delete(ctx, postID)
}
