package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// Hand-rolled stubs with function fields so each test wires exactly the
// behavior it needs.

type stubUserRepo struct {
	getByUsernameFunc func(ctx context.Context, username string) (*models.User, error)
	getByIDFunc       func(ctx context.Context, id uint) (*models.User, error)
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error { return nil }
func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByIDFunc != nil {
		return s.getByIDFunc(ctx, id)
	}
	return nil, models.NewNotFoundError("User", id)
}
func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFunc(ctx, username)
}
func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, models.NewNotFoundError("User", email)
}
func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error { return nil }
func (s *stubUserRepo) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return nil, nil
}

type stubFollowRepo struct {
	createFunc func(ctx context.Context, follow *models.Follow) (bool, error)
	deleteFunc func(ctx context.Context, userID, authorID uint) (bool, error)
	existsFunc func(ctx context.Context, userID, authorID uint) (bool, error)
}

func (s *stubFollowRepo) Create(ctx context.Context, follow *models.Follow) (bool, error) {
	return s.createFunc(ctx, follow)
}
func (s *stubFollowRepo) Delete(ctx context.Context, userID, authorID uint) (bool, error) {
	return s.deleteFunc(ctx, userID, authorID)
}
func (s *stubFollowRepo) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	if s.existsFunc != nil {
		return s.existsFunc(ctx, userID, authorID)
	}
	return false, nil
}
func (s *stubFollowRepo) ListAuthorIDs(ctx context.Context, userID uint) ([]uint, error) {
	return nil, nil
}

type stubPostRepo struct {
	createFunc    func(ctx context.Context, post *models.Post) error
	getByIDFunc   func(ctx context.Context, id uint) (*models.Post, error)
	updateFunc    func(ctx context.Context, post *models.Post) error
	deleteFunc    func(ctx context.Context, id uint) error
	listFeedFunc  func(ctx context.Context, filter repository.PostFilter, limit, offset int) ([]models.Post, error)
	countFeedFunc func(ctx context.Context, filter repository.PostFilter) (int64, error)
}

func (s *stubPostRepo) Create(ctx context.Context, post *models.Post) error {
	if s.createFunc != nil {
		return s.createFunc(ctx, post)
	}
	return nil
}
func (s *stubPostRepo) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFunc(ctx, id)
}
func (s *stubPostRepo) Update(ctx context.Context, post *models.Post) error {
	if s.updateFunc != nil {
		return s.updateFunc(ctx, post)
	}
	return nil
}
func (s *stubPostRepo) Delete(ctx context.Context, id uint) error {
	if s.deleteFunc != nil {
		return s.deleteFunc(ctx, id)
	}
	return nil
}
func (s *stubPostRepo) ListFeed(ctx context.Context, filter repository.PostFilter, limit, offset int) ([]models.Post, error) {
	return s.listFeedFunc(ctx, filter, limit, offset)
}
func (s *stubPostRepo) CountFeed(ctx context.Context, filter repository.PostFilter) (int64, error) {
	return s.countFeedFunc(ctx, filter)
}

type stubGroupRepo struct {
	getBySlugFunc func(ctx context.Context, slug string) (*models.Group, error)
}

func (s *stubGroupRepo) Create(ctx context.Context, group *models.Group) error { return nil }
func (s *stubGroupRepo) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	return s.getBySlugFunc(ctx, slug)
}
func (s *stubGroupRepo) List(ctx context.Context, limit, offset int) ([]models.Group, error) {
	return nil, nil
}
func (s *stubGroupRepo) DeleteBySlug(ctx context.Context, slug string) error { return nil }

func allowAllAdmins(ctx context.Context, userID uint) (bool, error) { return true, nil }

func denyAllAdmins(ctx context.Context, userID uint) (bool, error) { return false, nil }
