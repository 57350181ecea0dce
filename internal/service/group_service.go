package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// GroupService provides group management. Creating and deleting groups is an
// admin-only surface; everyone can read them.
type GroupService struct {
	groupRepo repository.GroupRepository
	isAdmin   AdminChecker
}

// NewGroupService returns a new GroupService.
func NewGroupService(groupRepo repository.GroupRepository, isAdmin AdminChecker) *GroupService {
	return &GroupService{
		groupRepo: groupRepo,
		isAdmin:   isAdmin,
	}
}

// Create validates and stores a new group.
func (s *GroupService) Create(ctx context.Context, requesterID uint, title, slug, description string) (*models.Group, error) {
	admin, err := s.isAdmin(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, models.NewUnauthorizedError("Only admins can create groups")
	}

	title = strings.TrimSpace(title)
	slug = strings.TrimSpace(slug)
	if title == "" || slug == "" {
		return nil, models.NewValidationError("Title and slug are required")
	}
	if len(title) > 200 {
		return nil, models.NewValidationError("Title must be at most 200 characters")
	}

	group := &models.Group{
		Title:       title,
		Slug:        slug,
		Description: description,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// GetBySlug returns the group with the given slug.
func (s *GroupService) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	return s.groupRepo.GetBySlug(ctx, slug)
}

// List returns groups ordered by title.
func (s *GroupService) List(ctx context.Context, limit, offset int) ([]models.Group, error) {
	return s.groupRepo.List(ctx, limit, offset)
}

// Delete removes a group. Its posts survive with a cleared group reference.
func (s *GroupService) Delete(ctx context.Context, requesterID uint, slug string) error {
	admin, err := s.isAdmin(ctx, requesterID)
	if err != nil {
		return err
	}
	if !admin {
		return models.NewUnauthorizedError("Only admins can delete groups")
	}
	return s.groupRepo.DeleteBySlug(ctx, slug)
}
