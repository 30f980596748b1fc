package service

import (
	"context"
	"time"

	"lifelog/internal/cache"
	"lifelog/internal/middleware"
	"lifelog/internal/models"
	"lifelog/internal/repository"

	"golang.org/x/sync/errgroup"
)

// DefaultFeedPageSize caps how many feed items a single load returns.
const DefaultFeedPageSize = 20

// backgroundRefreshTimeout bounds the silent reload that follows a cache hit.
const backgroundRefreshTimeout = 30 * time.Second

// FeedService builds the home feed: posts authored by the user or any
// accepted friend, hydrated with author profiles, comments and likes, newest
// first. The last successful load per user is kept in a snapshot store so a
// revisit paints instantly while a silent refresh runs behind it.
type FeedService struct {
	friendRepo  repository.FriendRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	snapshots   cache.SnapshotStore
	pageSize    int
	now         func() time.Time
}

// NewFeedService returns a new FeedService.
func NewFeedService(
	friendRepo repository.FriendRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	snapshots cache.SnapshotStore,
) *FeedService {
	return &FeedService{
		friendRepo:  friendRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		snapshots:   snapshots,
		pageSize:    DefaultFeedPageSize,
		now:         time.Now,
	}
}

// HomeFeed returns the feed snapshot for userID. On a fresh cache hit the
// cached snapshot is returned immediately and a silent refresh is kicked off
// in the background; the caller never waits for it. On a miss or a stale
// snapshot the load is synchronous. The bool reports whether the result came
// from the cache.
func (s *FeedService) HomeFeed(ctx context.Context, userID uint) (*models.FeedSnapshot, bool, error) {
	if snap, ok := s.snapshots.Read(ctx, userID); ok && cache.IsFresh(snap, s.now()) {
		middleware.FeedLoads.WithLabelValues("cache_hit").Inc()
		go s.refreshSilently(userID)
		return snap, true, nil
	}

	snap, err := s.Refresh(ctx, userID)
	if err != nil {
		middleware.FeedLoads.WithLabelValues("error").Inc()
		return nil, false, err
	}
	middleware.FeedLoads.WithLabelValues("loaded").Inc()
	return snap, false, nil
}

// Refresh performs a full load and overwrites the cached snapshot on success.
func (s *FeedService) Refresh(ctx context.Context, userID uint) (*models.FeedSnapshot, error) {
	items, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	snap := &models.FeedSnapshot{
		UserID:   userID,
		Items:    items,
		LoadedAt: s.now(),
	}
	// Best-effort write; a broken cache must not fail the load.
	_ = s.snapshots.Write(ctx, userID, snap)
	return snap, nil
}

// refreshSilently reloads the feed after a cache hit. Errors leave the stale
// snapshot in place and are not surfaced; the refresh is a non-critical
// enhancement.
func (s *FeedService) refreshSilently(userID uint) {
	ctx, cancel := context.WithTimeout(context.Background(), backgroundRefreshTimeout)
	defer cancel()
	if _, err := s.Refresh(ctx, userID); err != nil {
		middleware.Logger.DebugContext(ctx, "background feed refresh failed",
			"user_id", userID, "error", err.Error())
	}
}

// Load builds the feed items for userID without touching the snapshot cache:
// resolve the accepted-friendship closure, fetch the newest posts by that
// author set, hydrate, and join in memory. Any query failure aborts the whole
// load; no partial feed is returned.
func (s *FeedService) Load(ctx context.Context, userID uint) ([]models.FeedItem, error) {
	friendIDs, err := s.friendRepo.GetFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	authorIDs := append(friendIDs, userID)

	posts, err := s.postRepo.GetByAuthorIDs(ctx, userID, authorIDs, s.pageSize)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return []models.FeedItem{}, nil
	}

	postIDs := make([]uint, len(posts))
	postAuthorIDs := make([]uint, 0, len(posts))
	seenAuthors := make(map[uint]struct{}, len(posts))
	for i := range posts {
		postIDs[i] = posts[i].ID
		if _, ok := seenAuthors[posts[i].UserID]; !ok {
			seenAuthors[posts[i].UserID] = struct{}{}
			postAuthorIDs = append(postAuthorIDs, posts[i].UserID)
		}
	}

	// The three hydration fetches are independent; run them concurrently and
	// join once all resolve.
	var (
		authors    []models.User
		comments   []models.Comment
		likeCounts map[uint]int
		likedIDs   []uint
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		authors, err = s.userRepo.GetByIDs(gctx, postAuthorIDs)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = s.commentRepo.GetByPostIDs(gctx, postIDs)
		return err
	})
	g.Go(func() error {
		var err error
		likeCounts, err = s.likeRepo.CountByPostIDs(gctx, postIDs)
		if err != nil {
			return err
		}
		likedIDs, err = s.likeRepo.LikedPostIDs(gctx, userID, postIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Commenter profiles may reach beyond the post-author set.
	commenterProfiles, err := s.commenterProfiles(ctx, comments, authors)
	if err != nil {
		return nil, err
	}

	authorByID := make(map[uint]models.User, len(authors))
	for _, u := range authors {
		authorByID[u.ID] = u
	}
	commentsByPost := make(map[uint][]models.FeedComment)
	for _, c := range comments {
		fc := models.FeedComment{Comment: c, Author: commenterProfiles[c.UserID]}
		commentsByPost[c.PostID] = append(commentsByPost[c.PostID], fc)
	}
	likedByViewer := make(map[uint]bool, len(likedIDs))
	for _, id := range likedIDs {
		likedByViewer[id] = true
	}

	items := make([]models.FeedItem, 0, len(posts))
	for _, post := range posts {
		// A missing author profile renders as a blank identity rather than
		// failing the whole load.
		items = append(items, models.FeedItem{
			Post:      post,
			Author:    authorByID[post.UserID],
			Comments:  commentsByPost[post.ID],
			LikeCount: likeCounts[post.ID],
			Liked:     likedByViewer[post.ID],
		})
	}
	return items, nil
}

// commenterProfiles resolves profiles for comment authors that are not
// already in the post-author set.
func (s *FeedService) commenterProfiles(ctx context.Context, comments []models.Comment, known []models.User) (map[uint]models.User, error) {
	profiles := make(map[uint]models.User, len(known))
	for _, u := range known {
		profiles[u.ID] = u
	}

	var missing []uint
	seen := make(map[uint]struct{})
	for _, c := range comments {
		if _, ok := profiles[c.UserID]; ok {
			continue
		}
		if _, ok := seen[c.UserID]; ok {
			continue
		}
		seen[c.UserID] = struct{}{}
		missing = append(missing, c.UserID)
	}
	if len(missing) == 0 {
		return profiles, nil
	}

	extra, err := s.userRepo.GetByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	for _, u := range extra {
		profiles[u.ID] = u
	}
	return profiles, nil
}

// InvalidateSnapshot drops the cached feed for userID. Called after mutations
// that change what the user's feed would contain.
func (s *FeedService) InvalidateSnapshot(ctx context.Context, userID uint) {
	s.snapshots.Invalidate(ctx, userID)
}
