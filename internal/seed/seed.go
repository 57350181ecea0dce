// Package seed populates the database with demo data for development and
// testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// DemoPassword is the password every seeded user gets.
const DemoPassword = "password123"

// Seed populates the database with demo users, groups, posts, comments and
// follow edges.
func Seed(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	groups, err := Groups(db)
	if err != nil {
		return err
	}
	log.Printf("%d groups available", len(groups))

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d users created", len(users))

	posts, err := createPosts(db, r, users, groups, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	numComments, err := createComments(db, r, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("%d comments created", numComments)

	numFollows, err := createFollows(db, r, users)
	if err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}
	log.Printf("%d follow edges created", numFollows)

	return nil
}

// clearData truncates all seedable tables, children first.
func clearData(db *gorm.DB) error {
	tables := []string{"follows", "comments", "posts", "groups", "users"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, n int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, models.User{
			Username:     fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Email:        gofakeit.Email(),
			PasswordHash: string(hash),
			IsAdmin:      i == 0,
		})
	}
	if err := db.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func createPosts(db *gorm.DB, r *rand.Rand, users []models.User, groups []models.Group, n int) ([]models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		post := models.Post{
			Text:     gofakeit.Paragraph(1, 3, 8, "\n"),
			AuthorID: users[r.Intn(len(users))].ID,
		}
		// roughly two thirds of posts land in a group
		if len(groups) > 0 && r.Intn(3) != 0 {
			id := groups[r.Intn(len(groups))].ID
			post.GroupID = &id
		}
		// spread publication dates over the last 90 days
		post.PubDate = time.Now().
			Add(-time.Duration(r.Intn(90*24)) * time.Hour).
			Add(-time.Duration(r.Intn(60)) * time.Minute)
		posts = append(posts, post)
	}
	if err := db.Create(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func createComments(db *gorm.DB, r *rand.Rand, users []models.User, posts []models.Post) (int, error) {
	if len(users) == 0 || len(posts) == 0 {
		return 0, nil
	}

	var comments []models.Comment
	for _, post := range posts {
		for i := 0; i < r.Intn(4); i++ {
			comments = append(comments, models.Comment{
				PostID:   post.ID,
				AuthorID: users[r.Intn(len(users))].ID,
				Text:     gofakeit.Sentence(r.Intn(12) + 3),
			})
		}
	}
	if len(comments) == 0 {
		return 0, nil
	}
	if err := db.Create(&comments).Error; err != nil {
		return 0, err
	}
	return len(comments), nil
}

func createFollows(db *gorm.DB, r *rand.Rand, users []models.User) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}

	count := 0
	for _, user := range users {
		for i := 0; i < r.Intn(5); i++ {
			author := users[r.Intn(len(users))]
			if author.ID == user.ID {
				continue
			}
			follow := models.Follow{UserID: user.ID, AuthorID: author.ID}
			err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error
			if err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}
