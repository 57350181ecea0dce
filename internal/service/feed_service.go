// Package service contains the business logic composed from repositories.
package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// FeedService composes the ordered, paginated post feeds: global, per group,
// per author profile, and the aggregated following feed. All four share one
// page size and one ordering (pub_date descending, ID descending on ties) so
// pagination is deterministic even when timestamps collide.
type FeedService struct {
	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// NewFeedService returns a new FeedService.
func NewFeedService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// page runs the shared count-clamp-fetch sequence for one filter.
func (s *FeedService) page(ctx context.Context, filter repository.PostFilter, pageNumber int) (*models.Page, error) {
	total, err := s.postRepo.CountFeed(ctx, filter)
	if err != nil {
		return nil, err
	}

	number, offset, totalPages := models.Paginate(total, pageNumber, models.FeedPageSize)

	items, err := s.postRepo.ListFeed(ctx, filter, models.FeedPageSize, offset)
	if err != nil {
		return nil, err
	}

	return models.NewPage(items, number, models.FeedPageSize, total, totalPages), nil
}

// GlobalFeed returns one page of all posts, newest first.
func (s *FeedService) GlobalFeed(ctx context.Context, pageNumber int) (*models.Page, error) {
	return s.page(ctx, repository.PostFilter{}, pageNumber)
}

// GroupFeed returns one page of the posts filed under the group with the
// given slug. Unknown slugs are a not-found error.
func (s *FeedService) GroupFeed(ctx context.Context, slug string, pageNumber int) (*models.Group, *models.Page, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	page, err := s.page(ctx, repository.PostFilter{GroupID: &group.ID}, pageNumber)
	if err != nil {
		return nil, nil, err
	}
	return group, page, nil
}

// ProfileFeed returns one page of the named author's posts along with
// whether the requesting user already follows them. Following is always
// false for anonymous requesters (requesterID 0) and for the author viewing
// their own profile.
func (s *FeedService) ProfileFeed(ctx context.Context, username string, pageNumber int, requesterID uint) (*models.User, *models.Page, bool, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, false, err
	}

	page, err := s.page(ctx, repository.PostFilter{AuthorID: &author.ID}, pageNumber)
	if err != nil {
		return nil, nil, false, err
	}

	following := false
	if requesterID != 0 && requesterID != author.ID {
		following, err = s.followRepo.Exists(ctx, requesterID, author.ID)
		if err != nil {
			return nil, nil, false, err
		}
	}

	return author, page, following, nil
}

// FollowingFeed returns one page of posts from the authors the user follows.
// A user who follows nobody gets an empty page, not an error.
func (s *FeedService) FollowingFeed(ctx context.Context, userID uint, pageNumber int) (*models.Page, error) {
	return s.page(ctx, repository.PostFilter{FollowerID: &userID}, pageNumber)
}
