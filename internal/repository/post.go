package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostFilter narrows a feed query to one view. At most one field is set:
// none for the global feed, GroupID for a group page, AuthorID for a
// profile, FollowerID for the aggregated following feed.
type PostFilter struct {
	GroupID    *uint
	AuthorID   *uint
	FollowerID *uint
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	ListFeed(ctx context.Context, filter PostFilter, limit, offset int) ([]models.Post, error)
	CountFeed(ctx context.Context, filter PostFilter) (int64, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.applyCommentsCount(r.db.WithContext(ctx)).
		Preload("Author").
		Preload("Group").
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	// Comments cascade at the store level; delete them explicitly too so
	// stores without enforced foreign keys leave no orphans behind.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ListFeed returns one window of a feed, newest first. Equal publication
// timestamps are broken by descending ID so pagination stays deterministic.
func (r *postRepository) ListFeed(ctx context.Context, filter PostFilter, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := r.applyFilter(r.applyCommentsCount(r.db.WithContext(ctx)), filter).
		Preload("Author").
		Preload("Group").
		Order("pub_date DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) CountFeed(ctx context.Context, filter PostFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.Post{}), filter).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *postRepository) applyFilter(db *gorm.DB, filter PostFilter) *gorm.DB {
	switch {
	case filter.GroupID != nil:
		return db.Where("posts.group_id = ?", *filter.GroupID)
	case filter.AuthorID != nil:
		return db.Where("posts.author_id = ?", *filter.AuthorID)
	case filter.FollowerID != nil:
		return db.Where(
			"posts.author_id IN (SELECT author_id FROM follows WHERE user_id = ?)",
			*filter.FollowerID,
		)
	default:
		return db
	}
}

// applyCommentsCount adds a subquery fetching the comment count in the same query.
func (r *postRepository) applyCommentsCount(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count")
}
