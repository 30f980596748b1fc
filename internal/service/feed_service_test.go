package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"lifelog/internal/cache"
	"lifelog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFeedService(friends *stubFriendRepo, posts *stubPostRepo, users *stubUserRepo, comments *stubCommentRepo, likes *stubLikeRepo) *FeedService {
	return NewFeedService(friends, posts, users, comments, likes, cache.NewMemorySnapshotStore())
}

func TestFeedLoadAggregatesFriendsAndSelf(t *testing.T) {
	const viewer = uint(1)
	base := time.Now().Add(-time.Hour)

	// Two friends with 3 and 5 posts, two posts of the viewer's own.
	var all []models.Post
	addPosts := func(author uint, n int) {
		for i := 0; i < n; i++ {
			all = append(all, models.Post{
				ID:        uint(len(all) + 1),
				UserID:    author,
				Content:   fmt.Sprintf("post %d by %d", i, author),
				CreatedAt: base.Add(time.Duration(len(all)) * time.Minute),
			})
		}
	}
	addPosts(2, 3)
	addPosts(3, 5)
	addPosts(viewer, 2)

	var gotAuthorIDs []uint
	var gotLimit int
	friends := &stubFriendRepo{
		getFriendIDs: func(_ context.Context, userID uint) ([]uint, error) {
			require.Equal(t, viewer, userID)
			return []uint{2, 3}, nil
		},
	}
	posts := &stubPostRepo{
		getByAuthorIDs: func(_ context.Context, viewerID uint, authorIDs []uint, limit int) ([]models.Post, error) {
			require.Equal(t, viewer, viewerID)
			gotAuthorIDs = authorIDs
			gotLimit = limit
			out := make([]models.Post, len(all))
			copy(out, all)
			sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
			return out, nil
		},
	}
	users := &stubUserRepo{
		getByIDs: func(_ context.Context, ids []uint) ([]models.User, error) {
			out := make([]models.User, 0, len(ids))
			for _, id := range ids {
				out = append(out, models.User{ID: id, Username: fmt.Sprintf("user%d", id)})
			}
			return out, nil
		},
	}
	comments := &stubCommentRepo{
		getByPostIDs: func(_ context.Context, postIDs []uint) ([]models.Comment, error) {
			return []models.Comment{
				{ID: 1, PostID: 1, UserID: 3, Content: "nice"},
				{ID: 2, PostID: 1, UserID: 7, Content: "from a stranger"},
			}, nil
		},
	}
	likes := &stubLikeRepo{
		countByPostIDs: func(_ context.Context, postIDs []uint) (map[uint]int, error) {
			return map[uint]int{1: 2, 4: 1}, nil
		},
		likedPostIDs: func(_ context.Context, userID uint, postIDs []uint) ([]uint, error) {
			return []uint{4}, nil
		},
	}

	svc := newFeedService(friends, posts, users, comments, likes)
	items, err := svc.Load(context.Background(), viewer)
	require.NoError(t, err)

	assert.ElementsMatch(t, []uint{2, 3, viewer}, gotAuthorIDs)
	assert.Equal(t, DefaultFeedPageSize, gotLimit)
	require.Len(t, items, 10)

	// Newest first across all authors.
	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].Post.CreatedAt.After(items[i-1].Post.CreatedAt))
	}

	// Every item carries its author's profile.
	byPostID := make(map[uint]models.FeedItem, len(items))
	for _, it := range items {
		assert.Equal(t, it.Post.UserID, it.Author.ID)
		byPostID[it.Post.ID] = it
	}

	first := byPostID[1]
	require.Len(t, first.Comments, 2)
	assert.Equal(t, "user3", first.Comments[0].Author.Username)
	assert.Equal(t, "user7", first.Comments[1].Author.Username)
	assert.Equal(t, 2, first.LikeCount)
	assert.False(t, first.Liked)

	liked := byPostID[4]
	assert.Equal(t, 1, liked.LikeCount)
	assert.True(t, liked.Liked)
}

func TestFeedLoadPageCap(t *testing.T) {
	posts := &stubPostRepo{
		getByAuthorIDs: func(_ context.Context, _ uint, _ []uint, limit int) ([]models.Post, error) {
			out := make([]models.Post, limit)
			for i := range out {
				out[i] = models.Post{ID: uint(i + 1), UserID: 1}
			}
			return out, nil
		},
	}
	svc := newFeedService(&stubFriendRepo{}, posts, &stubUserRepo{}, &stubCommentRepo{}, &stubLikeRepo{})
	svc.pageSize = 4

	items, err := svc.Load(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, items, 4)
}

func TestFeedLoadMissingAuthorYieldsBlankProfile(t *testing.T) {
	posts := &stubPostRepo{
		getByAuthorIDs: func(_ context.Context, _ uint, _ []uint, _ int) ([]models.Post, error) {
			return []models.Post{{ID: 1, UserID: 42, Content: "orphaned"}}, nil
		},
	}
	users := &stubUserRepo{
		getByIDs: func(_ context.Context, _ []uint) ([]models.User, error) {
			return nil, nil // author profile gone
		},
	}
	svc := newFeedService(&stubFriendRepo{}, posts, users, &stubCommentRepo{}, &stubLikeRepo{})

	items, err := svc.Load(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Zero(t, items[0].Author.ID)
	assert.Empty(t, items[0].Author.Username)
}

func TestFeedLoadHydrationErrorAborts(t *testing.T) {
	posts := &stubPostRepo{
		getByAuthorIDs: func(_ context.Context, _ uint, _ []uint, _ int) ([]models.Post, error) {
			return []models.Post{{ID: 1, UserID: 1}}, nil
		},
	}
	likes := &stubLikeRepo{
		countByPostIDs: func(_ context.Context, _ []uint) (map[uint]int, error) {
			return nil, errors.New("db down")
		},
	}
	svc := newFeedService(&stubFriendRepo{}, posts, &stubUserRepo{}, &stubCommentRepo{}, likes)

	items, err := svc.Load(context.Background(), 1)
	require.Error(t, err)
	assert.Nil(t, items)
}

func TestFeedLoadEmpty(t *testing.T) {
	svc := newFeedService(&stubFriendRepo{}, &stubPostRepo{}, &stubUserRepo{}, &stubCommentRepo{}, &stubLikeRepo{})
	items, err := svc.Load(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestHomeFeedMissLoadsAndCaches(t *testing.T) {
	store := cache.NewMemorySnapshotStore()
	posts := &stubPostRepo{
		getByAuthorIDs: func(_ context.Context, _ uint, _ []uint, _ int) ([]models.Post, error) {
			return []models.Post{{ID: 1, UserID: 1}}, nil
		},
	}
	svc := NewFeedService(&stubFriendRepo{}, posts, &stubUserRepo{}, &stubCommentRepo{}, &stubLikeRepo{}, store)

	snap, cached, err := svc.HomeFeed(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, cached)
	require.NotNil(t, snap)
	assert.Len(t, snap.Items, 1)

	written, ok := store.Read(context.Background(), 1)
	require.True(t, ok)
	assert.Equal(t, uint(1), written.UserID)
}

func TestHomeFeedFreshHitServesSnapshotAndRefreshes(t *testing.T) {
	store := cache.NewMemorySnapshotStore()
	require.NoError(t, store.Write(context.Background(), 1, &models.FeedSnapshot{
		UserID:   1,
		Items:    []models.FeedItem{{Post: models.Post{ID: 99, Content: "cached"}}},
		LoadedAt: time.Now(),
	}))

	refreshed := make(chan struct{}, 1)
	posts := &stubPostRepo{
		getByAuthorIDs: func(_ context.Context, _ uint, _ []uint, _ int) ([]models.Post, error) {
			select {
			case refreshed <- struct{}{}:
			default:
			}
			return []models.Post{{ID: 100, UserID: 1}}, nil
		},
	}
	svc := NewFeedService(&stubFriendRepo{}, posts, &stubUserRepo{}, &stubCommentRepo{}, &stubLikeRepo{}, store)

	snap, cached, err := svc.HomeFeed(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, cached)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, uint(99), snap.Items[0].Post.ID)

	// The silent refresh runs behind the response.
	select {
	case <-refreshed:
	case <-time.After(2 * time.Second):
		t.Fatal("background refresh never ran")
	}
}

func TestHomeFeedStaleSnapshotReloadsSynchronously(t *testing.T) {
	store := cache.NewMemorySnapshotStore()
	require.NoError(t, store.Write(context.Background(), 1, &models.FeedSnapshot{
		UserID:   1,
		Items:    []models.FeedItem{{Post: models.Post{ID: 99}}},
		LoadedAt: time.Now().Add(-cache.SnapshotTTL - time.Minute),
	}))

	posts := &stubPostRepo{
		getByAuthorIDs: func(_ context.Context, _ uint, _ []uint, _ int) ([]models.Post, error) {
			return []models.Post{{ID: 100, UserID: 1}}, nil
		},
	}
	svc := NewFeedService(&stubFriendRepo{}, posts, &stubUserRepo{}, &stubCommentRepo{}, &stubLikeRepo{}, store)

	snap, cached, err := svc.HomeFeed(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, cached)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, uint(100), snap.Items[0].Post.ID)
}
