package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// GroupRepository defines the interface for group data operations
type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
	List(ctx context.Context, limit, offset int) ([]models.Group, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

// groupRepository implements GroupRepository
type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return models.NewValidationError("A group with this slug already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *groupRepository) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Group", slug)
		}
		return nil, models.NewInternalError(err)
	}
	return &group, nil
}

func (r *groupRepository) List(ctx context.Context, limit, offset int) ([]models.Group, error) {
	var groups []models.Group
	if err := r.db.WithContext(ctx).
		Order("title ASC").
		Limit(limit).
		Offset(offset).
		Find(&groups).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return groups, nil
}

// DeleteBySlug removes the group. Posts referencing it keep existing with a
// NULL group reference (ON DELETE SET NULL); the clearing is done explicitly
// here as well so stores without enforced foreign keys behave identically.
func (r *groupRepository) DeleteBySlug(ctx context.Context, slug string) error {
	group, err := r.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).
			Where("group_id = ?", group.ID).
			Update("group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, group.ID).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
