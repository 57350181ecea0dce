package repository

import (
	"testing"
	"time"

	"inkwell/internal/models"
)

func TestListFeedOrdersNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	author := createTestUser(t, db, "author")
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	old := createTestPost(t, db, author.ID, base.Add(-time.Hour), nil)
	mid := createTestPost(t, db, author.ID, base, nil)
	newest := createTestPost(t, db, author.ID, base.Add(time.Hour), nil)

	posts, err := repo.ListFeed(ctx(), PostFilter{}, 10, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}
	for i, want := range []uint{newest.ID, mid.ID, old.ID} {
		if posts[i].ID != want {
			t.Fatalf("position %d: got post %d, want %d", i, posts[i].ID, want)
		}
	}
}

func TestListFeedBreaksTimestampTiesByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	author := createTestUser(t, db, "author")
	when := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first := createTestPost(t, db, author.ID, when, nil)
	second := createTestPost(t, db, author.ID, when, nil)
	third := createTestPost(t, db, author.ID, when, nil)

	posts, err := repo.ListFeed(ctx(), PostFilter{}, 10, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for i, want := range []uint{third.ID, second.ID, first.ID} {
		if posts[i].ID != want {
			t.Fatalf("tie-break position %d: got post %d, want %d", i, posts[i].ID, want)
		}
	}
}

func TestFeedPaginationWindow(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	author := createTestUser(t, db, "author")
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 11; i++ {
		createTestPost(t, db, author.ID, base.Add(time.Duration(i)*time.Minute), nil)
	}

	total, err := repo.CountFeed(ctx(), PostFilter{})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if total != 11 {
		t.Fatalf("expected 11 posts, got %d", total)
	}

	page1, err := repo.ListFeed(ctx(), PostFilter{}, models.FeedPageSize, 0)
	if err != nil {
		t.Fatalf("page 1 failed: %v", err)
	}
	page2, err := repo.ListFeed(ctx(), PostFilter{}, models.FeedPageSize, models.FeedPageSize)
	if err != nil {
		t.Fatalf("page 2 failed: %v", err)
	}

	if len(page1) != 10 || len(page2) != 1 {
		t.Fatalf("expected pages of 10 and 1, got %d and %d", len(page1), len(page2))
	}
	// The single post on page 2 is the oldest one.
	if !page2[0].PubDate.Equal(base) {
		t.Fatalf("page 2 should hold the oldest post, got pub_date %v", page2[0].PubDate)
	}
}

func TestListFeedGroupFilter(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	author := createTestUser(t, db, "author")
	group := createTestGroup(t, db, "travel")
	when := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	inGroup := createTestPost(t, db, author.ID, when, &group.ID)
	createTestPost(t, db, author.ID, when.Add(time.Minute), nil)

	posts, err := repo.ListFeed(ctx(), PostFilter{GroupID: &group.ID}, 10, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != inGroup.ID {
		t.Fatalf("group filter returned wrong posts: %+v", posts)
	}
}

func TestListFeedFollowerFilter(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	follows := NewFollowRepository(db)

	reader := createTestUser(t, db, "reader")
	followed := createTestUser(t, db, "followed")
	stranger := createTestUser(t, db, "stranger")

	when := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	wanted := createTestPost(t, db, followed.ID, when, nil)
	createTestPost(t, db, stranger.ID, when.Add(time.Minute), nil)

	if _, err := follows.Create(ctx(), &models.Follow{UserID: reader.ID, AuthorID: followed.ID}); err != nil {
		t.Fatalf("follow failed: %v", err)
	}

	posts, err := repo.ListFeed(ctx(), PostFilter{FollowerID: &reader.ID}, 10, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != wanted.ID {
		t.Fatalf("following feed should only hold followed authors' posts: %+v", posts)
	}

	// A reader who follows nobody sees an empty following feed.
	posts, err = repo.ListFeed(ctx(), PostFilter{FollowerID: &stranger.ID}, 10, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("expected empty feed, got %d posts", len(posts))
	}
}

func TestDeletePostRemovesComments(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)

	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author.ID, time.Now(), nil)

	for i := 0; i < 3; i++ {
		err := comments.Create(ctx(), &models.Comment{
			PostID:   post.ID,
			AuthorID: author.ID,
			Text:     "a comment",
		})
		if err != nil {
			t.Fatalf("comment create failed: %v", err)
		}
	}

	if err := posts.Delete(ctx(), post.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	count, err := comments.CountByPost(ctx(), post.ID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected comments to go with the post, %d left", count)
	}
}

func TestGetByIDIncludesCommentsCount(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)

	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author.ID, time.Now(), nil)

	for i := 0; i < 2; i++ {
		err := comments.Create(ctx(), &models.Comment{
			PostID:   post.ID,
			AuthorID: author.ID,
			Text:     "a comment",
		})
		if err != nil {
			t.Fatalf("comment create failed: %v", err)
		}
	}

	got, err := posts.GetByID(ctx(), post.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.CommentsCount != 2 {
		t.Fatalf("expected comments_count 2, got %d", got.CommentsCount)
	}
	if got.Author.Username != "author" {
		t.Fatalf("expected author preloaded, got %+v", got.Author)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(ctx(), 9999)
	if !models.IsCode(err, models.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
