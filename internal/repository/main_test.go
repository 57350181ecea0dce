package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory SQLite database per test. The shared
// cache keeps GORM's pooled connections pointed at the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func createTestGroup(t *testing.T, db *gorm.DB, slug string) *models.Group {
	t.Helper()
	group := &models.Group{
		Title: "Group " + slug,
		Slug:  slug,
	}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("failed to create group %s: %v", slug, err)
	}
	return group
}

func createTestPost(t *testing.T, db *gorm.DB, authorID uint, pubDate time.Time, groupID *uint) *models.Post {
	t.Helper()
	post := &models.Post{
		Text:     "post text",
		AuthorID: authorID,
		GroupID:  groupID,
		PubDate:  pubDate,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed to create post: %v", err)
	}
	return post
}

func ctx() context.Context {
	return context.Background()
}
