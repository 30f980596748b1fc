package seed

import (
	"testing"

	"lifelog/internal/database"
	"lifelog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func seedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:seedtest?mode=memory&cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestRunPopulatesAllTables(t *testing.T) {
	db := seedDB(t)
	s := NewSeeder(db)

	require.NoError(t, s.Run(Options{NumUsers: 8, NumPosts: 20, ShouldClean: true}))

	var users, posts, friendships, moods int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Post{}).Count(&posts)
	db.Model(&models.Friendship{}).Count(&friendships)
	db.Model(&models.Mood{}).Count(&moods)

	assert.EqualValues(t, 8, users)
	assert.EqualValues(t, 20, posts)
	assert.Positive(t, friendships)
	assert.Positive(t, moods)

	// No post exceeds the image cap.
	var all []models.Post
	require.NoError(t, db.Find(&all).Error)
	for _, p := range all {
		assert.LessOrEqual(t, len(p.ImageURLs), models.MaxImagesPerPost)
	}
}

func TestClearAllRemovesEverything(t *testing.T) {
	db := seedDB(t)
	s := NewSeeder(db)

	require.NoError(t, s.Run(Options{NumUsers: 4, NumPosts: 6, ShouldClean: true}))
	require.NoError(t, s.ClearAll())

	var users, posts int64
	db.Model(&models.User{}).Count(&users)
	db.Unscoped().Model(&models.Post{}).Count(&posts)
	assert.Zero(t, users)
	assert.Zero(t, posts)
}
