package karma

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/emilythestrangee/community-feed/backend/internal/models"
)

// newTestDB opens an isolated in-memory database with the full schema. The
// composite unique index on likes comes along via AutoMigrate, so the durable
// constraint is live in tests too.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.KarmaTransaction{},
	))

	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, Password: "hashed"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createPost(t *testing.T, db *gorm.DB, authorID int) models.Post {
	t.Helper()
	post := models.Post{AuthorID: authorID, Content: "a post"}
	require.NoError(t, db.Create(&post).Error)
	return post
}

func createComment(t *testing.T, db *gorm.DB, postID, authorID int, parentID *int) models.Comment {
	t.Helper()
	comment := models.Comment{PostID: postID, AuthorID: authorID, ParentID: parentID, Content: "a comment"}
	require.NoError(t, db.Create(&comment).Error)
	return comment
}
