package service

import (
	"context"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// FollowService maintains follow edges. Per (follower, target) pair the edge
// is a two-state machine: Follow moves it to FOLLOWING and is idempotent;
// Unfollow moves it back and fails with not-found when there is nothing to
// remove. Self-pairs never leave NOT_FOLLOWING.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates the edge follower -> targetUsername. Unknown targets are a
// not-found error. A self-follow is rejected silently: no edge, no error, the
// caller still redirects to the profile. An existing edge makes the call a
// no-op, including the case where a concurrent insert won the race and the
// store absorbed ours via its unique constraint.
func (s *FollowService) Follow(ctx context.Context, followerID uint, targetUsername string) (*models.User, error) {
	target, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}

	if target.ID == followerID {
		middleware.FollowOperations.WithLabelValues("follow", "self_noop").Inc()
		return target, nil
	}

	created, err := s.followRepo.Create(ctx, &models.Follow{
		UserID:   followerID,
		AuthorID: target.ID,
	})
	if err != nil {
		return nil, err
	}

	if created {
		middleware.FollowOperations.WithLabelValues("follow", "created").Inc()
	} else {
		middleware.FollowOperations.WithLabelValues("follow", "already_following").Inc()
	}
	return target, nil
}

// Unfollow removes the edge follower -> targetUsername. Both an unknown
// target and a missing edge are not-found errors, so callers can tell
// "nothing to do" apart from "succeeded".
func (s *FollowService) Unfollow(ctx context.Context, followerID uint, targetUsername string) (*models.User, error) {
	target, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}

	deleted, err := s.followRepo.Delete(ctx, followerID, target.ID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		middleware.FollowOperations.WithLabelValues("unfollow", "missing_edge").Inc()
		return nil, models.NewNotFoundError("Follow", targetUsername)
	}

	middleware.FollowOperations.WithLabelValues("unfollow", "deleted").Inc()
	return target, nil
}

// IsFollowing reports whether follower has an edge to the given author.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, authorID uint) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, authorID)
}
