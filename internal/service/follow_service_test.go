package service

import (
	"context"
	"testing"

	"inkwell/internal/models"
)

func TestFollowCreatesEdge(t *testing.T) {
	target := &models.User{ID: 2, Username: "author"}
	users := &stubUserRepo{
		getByUsernameFunc: func(_ context.Context, username string) (*models.User, error) {
			if username != "author" {
				t.Fatalf("unexpected username lookup: %s", username)
			}
			return target, nil
		},
	}

	var gotFollow *models.Follow
	follows := &stubFollowRepo{
		createFunc: func(_ context.Context, follow *models.Follow) (bool, error) {
			gotFollow = follow
			return true, nil
		},
	}

	svc := NewFollowService(follows, users)
	got, err := svc.Follow(context.Background(), 1, "author")
	if err != nil {
		t.Fatalf("follow failed: %v", err)
	}
	if got.ID != target.ID {
		t.Fatalf("expected the target back, got %+v", got)
	}
	if gotFollow == nil || gotFollow.UserID != 1 || gotFollow.AuthorID != 2 {
		t.Fatalf("wrong edge created: %+v", gotFollow)
	}
}

func TestFollowSelfIsSilentNoop(t *testing.T) {
	me := &models.User{ID: 1, Username: "me"}
	users := &stubUserRepo{
		getByUsernameFunc: func(_ context.Context, _ string) (*models.User, error) {
			return me, nil
		},
	}
	follows := &stubFollowRepo{
		createFunc: func(_ context.Context, _ *models.Follow) (bool, error) {
			t.Fatal("a self-follow must never reach the store")
			return false, nil
		},
	}

	svc := NewFollowService(follows, users)
	got, err := svc.Follow(context.Background(), 1, "me")
	if err != nil {
		t.Fatalf("self-follow must not error: %v", err)
	}
	if got.ID != me.ID {
		t.Fatalf("self-follow should still return the profile target, got %+v", got)
	}
}

func TestFollowTwiceIsIdempotent(t *testing.T) {
	target := &models.User{ID: 2, Username: "author"}
	users := &stubUserRepo{
		getByUsernameFunc: func(_ context.Context, _ string) (*models.User, error) {
			return target, nil
		},
	}
	follows := &stubFollowRepo{
		createFunc: func(_ context.Context, _ *models.Follow) (bool, error) {
			// the store absorbed the duplicate
			return false, nil
		},
	}

	svc := NewFollowService(follows, users)
	if _, err := svc.Follow(context.Background(), 1, "author"); err != nil {
		t.Fatalf("repeated follow must not error: %v", err)
	}
}

func TestFollowUnknownTarget(t *testing.T) {
	users := &stubUserRepo{
		getByUsernameFunc: func(_ context.Context, username string) (*models.User, error) {
			return nil, models.NewNotFoundError("User", username)
		},
	}
	svc := NewFollowService(&stubFollowRepo{}, users)

	_, err := svc.Follow(context.Background(), 1, "ghost")
	if !models.IsCode(err, models.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestUnfollowRemovesEdge(t *testing.T) {
	target := &models.User{ID: 2, Username: "author"}
	users := &stubUserRepo{
		getByUsernameFunc: func(_ context.Context, _ string) (*models.User, error) {
			return target, nil
		},
	}
	follows := &stubFollowRepo{
		deleteFunc: func(_ context.Context, userID, authorID uint) (bool, error) {
			if userID != 1 || authorID != 2 {
				t.Fatalf("wrong edge deleted: %d -> %d", userID, authorID)
			}
			return true, nil
		},
	}

	svc := NewFollowService(follows, users)
	got, err := svc.Unfollow(context.Background(), 1, "author")
	if err != nil {
		t.Fatalf("unfollow failed: %v", err)
	}
	if got.ID != target.ID {
		t.Fatalf("expected the target back, got %+v", got)
	}
}

func TestUnfollowMissingEdgeIsNotFound(t *testing.T) {
	target := &models.User{ID: 2, Username: "author"}
	users := &stubUserRepo{
		getByUsernameFunc: func(_ context.Context, _ string) (*models.User, error) {
			return target, nil
		},
	}
	follows := &stubFollowRepo{
		deleteFunc: func(_ context.Context, _, _ uint) (bool, error) {
			return false, nil
		},
	}

	svc := NewFollowService(follows, users)
	_, err := svc.Unfollow(context.Background(), 1, "author")
	if !models.IsCode(err, models.CodeNotFound) {
		t.Fatalf("unfollowing a missing edge should be NOT_FOUND, got %v", err)
	}
}
