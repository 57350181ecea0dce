package seed

import (
	_ "embed"
	"fmt"

	"inkwell/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed groups.yml
var groupFixtures []byte

type groupFixture struct {
	Title       string `yaml:"title"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
}

type groupFixtureFile struct {
	Groups []groupFixture `yaml:"groups"`
}

// Groups upserts the built-in group fixtures. Safe to run repeatedly: slugs
// are unique and existing rows are left untouched.
func Groups(db *gorm.DB) ([]models.Group, error) {
	var file groupFixtureFile
	if err := yaml.Unmarshal(groupFixtures, &file); err != nil {
		return nil, fmt.Errorf("failed to parse group fixtures: %w", err)
	}

	groups := make([]models.Group, 0, len(file.Groups))
	for _, fx := range file.Groups {
		group := models.Group{
			Title:       fx.Title,
			Slug:        fx.Slug,
			Description: fx.Description,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).Create(&group).Error
		if err != nil {
			return nil, fmt.Errorf("failed to seed group %q: %w", fx.Slug, err)
		}
		if group.ID == 0 {
			if err := db.Where("slug = ?", fx.Slug).First(&group).Error; err != nil {
				return nil, err
			}
		}
		groups = append(groups, group)
	}
	return groups, nil
}
