package repository

import (
	"testing"
	"time"

	"inkwell/internal/models"
)

func TestGroupDeleteDetachesPosts(t *testing.T) {
	db := newTestDB(t)
	groups := NewGroupRepository(db)
	posts := NewPostRepository(db)

	author := createTestUser(t, db, "author")
	group := createTestGroup(t, db, "travel")
	post := createTestPost(t, db, author.ID, time.Now(), &group.ID)

	if err := groups.DeleteBySlug(ctx(), "travel"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	got, err := posts.GetByID(ctx(), post.ID)
	if err != nil {
		t.Fatalf("the post should survive its group: %v", err)
	}
	if got.GroupID != nil {
		t.Fatalf("expected group reference cleared, got %v", *got.GroupID)
	}

	if _, err := groups.GetBySlug(ctx(), "travel"); !models.IsCode(err, models.CodeNotFound) {
		t.Fatalf("expected the group gone, got %v", err)
	}
}

func TestGroupSlugUnique(t *testing.T) {
	db := newTestDB(t)
	repo := NewGroupRepository(db)

	if err := repo.Create(ctx(), &models.Group{Title: "One", Slug: "dup"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	err := repo.Create(ctx(), &models.Group{Title: "Two", Slug: "dup"})
	if !models.IsCode(err, models.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR on duplicate slug, got %v", err)
	}
}

func TestGroupGetBySlugNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewGroupRepository(db)

	_, err := repo.GetBySlug(ctx(), "missing")
	if !models.IsCode(err, models.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
