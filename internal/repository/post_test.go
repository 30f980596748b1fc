package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"lifelog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepositoryImageURLsRoundTrip(t *testing.T) {
	repo := NewPostRepository(testDB)
	ctx := context.Background()

	u := makeUser(t, "img_u")
	post := &models.Post{
		UserID:    u.ID,
		Content:   "beach day",
		ImageURLs: []string{"/media/images/a.jpg", "/media/images/b.jpg"},
	}
	require.NoError(t, repo.Create(ctx, post))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"/media/images/a.jpg", "/media/images/b.jpg"}, got.ImageURLs)

	// Zero-image posts round-trip as empty.
	bare := &models.Post{UserID: u.ID, Content: "no photos today"}
	require.NoError(t, repo.Create(ctx, bare))
	got, err = repo.GetByID(ctx, bare.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ImageURLs)
}

func TestPostRepositoryGetByAuthorIDsNewestFirst(t *testing.T) {
	repo := NewPostRepository(testDB)
	ctx := context.Background()

	u1 := makeUser(t, "feed_a")
	u2 := makeUser(t, "feed_b")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		p := &models.Post{
			UserID:    u1.ID,
			Content:   fmt.Sprintf("a%d", i),
			CreatedAt: base.Add(time.Duration(2*i) * time.Minute),
		}
		require.NoError(t, testDB.Create(p).Error)
	}
	for i := 0; i < 2; i++ {
		p := &models.Post{
			UserID:    u2.ID,
			Content:   fmt.Sprintf("b%d", i),
			CreatedAt: base.Add(time.Duration(2*i+1) * time.Minute),
		}
		require.NoError(t, testDB.Create(p).Error)
	}

	posts, err := repo.GetByAuthorIDs(ctx, u1.ID, []uint{u1.ID, u2.ID}, 4)
	require.NoError(t, err)
	require.Len(t, posts, 4)
	for i := 1; i < len(posts); i++ {
		assert.False(t, posts[i].CreatedAt.After(posts[i-1].CreatedAt),
			"posts must be ordered newest first")
	}

	none, err := repo.GetByAuthorIDs(ctx, u1.ID, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPostRepositoryGetByAuthorIDsHidesOthersPrivatePosts(t *testing.T) {
	repo := NewPostRepository(testDB)
	ctx := context.Background()

	viewer := makeUser(t, "vis_viewer")
	friend := makeUser(t, "vis_friend")

	own := &models.Post{UserID: viewer.ID, Content: "my private diary entry", Visibility: models.VisibilityPrivate}
	require.NoError(t, repo.Create(ctx, own))
	shared := &models.Post{UserID: friend.ID, Content: "shared hike", Visibility: models.VisibilityFriends}
	require.NoError(t, repo.Create(ctx, shared))
	hidden := &models.Post{UserID: friend.ID, Content: "friend's private diary entry", Visibility: models.VisibilityPrivate}
	require.NoError(t, repo.Create(ctx, hidden))

	posts, err := repo.GetByAuthorIDs(ctx, viewer.ID, []uint{viewer.ID, friend.ID}, 10)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	for _, p := range posts {
		assert.NotEqual(t, hidden.ID, p.ID, "a friend's private post must never surface")
	}

	// The author still sees their own private post.
	posts, err = repo.GetByAuthorIDs(ctx, friend.ID, []uint{viewer.ID, friend.ID}, 10)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	ids := []uint{posts[0].ID, posts[1].ID}
	assert.Contains(t, ids, hidden.ID)
	assert.NotContains(t, ids, own.ID)
}

func TestPostRepositoryDeleteIsSoft(t *testing.T) {
	repo := NewPostRepository(testDB)
	ctx := context.Background()

	u := makeUser(t, "del_u")
	post := &models.Post{UserID: u.ID, Content: "soon gone"}
	require.NoError(t, repo.Create(ctx, post))
	require.NoError(t, repo.Delete(ctx, post.ID))

	_, err := repo.GetByID(ctx, post.ID)
	require.Error(t, err)

	posts, err := repo.GetByUserID(ctx, u.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, posts)
}
