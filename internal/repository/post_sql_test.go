package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

// The feed query must always carry the deterministic two-level ordering and
// the comment count subquery. Checked against the Postgres dialect, which the
// SQLite-backed tests cannot do.
func TestListFeedSQLShape(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`SELECT posts\.\*, \(SELECT COUNT\(\*\) FROM comments WHERE comments\.post_id = posts\.id\) as comments_count FROM "posts".*ORDER BY pub_date DESC, id DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "text", "author_id"}))

	_, err := repo.ListFeed(context.Background(), PostFilter{}, 10, 0)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListFeedFollowerSubquerySQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	followerID := uint(3)

	mock.ExpectQuery(`posts\.author_id IN \(SELECT author_id FROM follows WHERE user_id = \$1\)`).
		WithArgs(followerID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "text", "author_id"}))

	_, err := repo.ListFeed(context.Background(), PostFilter{FollowerID: &followerID}, 10, 0)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
