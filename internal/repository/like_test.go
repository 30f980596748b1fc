package repository

import (
	"context"
	"testing"

	"lifelog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeRepositoryToggleIsIdempotent(t *testing.T) {
	repo := NewLikeRepository(testDB)
	ctx := context.Background()

	u := makeUser(t, "like_u")
	author := makeUser(t, "like_a")
	post := &models.Post{UserID: author.ID, Content: "a quiet day"}
	require.NoError(t, testDB.Create(post).Error)

	require.NoError(t, repo.Like(ctx, u.ID, post.ID))
	// Liking an already-liked post must not create a duplicate row.
	require.NoError(t, repo.Like(ctx, u.ID, post.ID))

	counts, err := repo.CountByPostIDs(ctx, []uint{post.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, counts[post.ID])

	liked, err := repo.IsLiked(ctx, u.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	require.NoError(t, repo.Unlike(ctx, u.ID, post.ID))
	liked, err = repo.IsLiked(ctx, u.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	counts, err = repo.CountByPostIDs(ctx, []uint{post.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, counts[post.ID])
}

func TestLikeRepositoryLikedPostIDs(t *testing.T) {
	repo := NewLikeRepository(testDB)
	ctx := context.Background()

	u := makeUser(t, "lp_u")
	author := makeUser(t, "lp_a")

	p1 := &models.Post{UserID: author.ID, Content: "one"}
	p2 := &models.Post{UserID: author.ID, Content: "two"}
	require.NoError(t, testDB.Create(p1).Error)
	require.NoError(t, testDB.Create(p2).Error)

	require.NoError(t, repo.Like(ctx, u.ID, p2.ID))

	ids, err := repo.LikedPostIDs(ctx, u.ID, []uint{p1.ID, p2.ID})
	require.NoError(t, err)
	assert.Equal(t, []uint{p2.ID}, ids)
}
