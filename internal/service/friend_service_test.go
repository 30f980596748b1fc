package service

import (
	"context"
	"testing"

	"lifelog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendFriendRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects self", func(t *testing.T) {
		svc := NewFriendService(&stubFriendRepo{}, &stubUserRepo{})
		_, err := svc.SendFriendRequest(ctx, 1, 1)
		requireAppErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("rejects duplicate pending and accepted edges", func(t *testing.T) {
		for _, status := range []models.FriendshipStatus{
			models.FriendshipStatusPending,
			models.FriendshipStatusAccepted,
		} {
			friends := &stubFriendRepo{
				getBetween: func(_ context.Context, _, _ uint) (*models.Friendship, error) {
					return &models.Friendship{ID: 9, Status: status}, nil
				},
			}
			svc := NewFriendService(friends, &stubUserRepo{})
			_, err := svc.SendFriendRequest(ctx, 1, 2)
			requireAppErrorCode(t, err, "VALIDATION_ERROR")
		}
	})

	t.Run("rejected edge can be retried", func(t *testing.T) {
		var deletedID uint
		var created *models.Friendship
		friends := &stubFriendRepo{
			getBetween: func(_ context.Context, _, _ uint) (*models.Friendship, error) {
				return &models.Friendship{ID: 9, RequesterID: 2, AddresseeID: 1, Status: models.FriendshipStatusRejected}, nil
			},
			delete: func(_ context.Context, id uint) error {
				deletedID = id
				return nil
			},
			create: func(_ context.Context, f *models.Friendship) error {
				f.ID = 10
				created = f
				return nil
			},
		}
		svc := NewFriendService(friends, &stubUserRepo{})
		f, err := svc.SendFriendRequest(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, uint(9), deletedID)
		require.NotNil(t, created)
		assert.Equal(t, uint(1), f.RequesterID)
		assert.Equal(t, models.FriendshipStatusPending, f.Status)
	})

	t.Run("fails when addressee does not exist", func(t *testing.T) {
		users := &stubUserRepo{
			getByID: func(_ context.Context, id uint) (*models.User, error) {
				return nil, models.NewNotFoundError("User", id)
			},
		}
		svc := NewFriendService(&stubFriendRepo{}, users)
		_, err := svc.SendFriendRequest(ctx, 1, 2)
		requireAppErrorCode(t, err, "NOT_FOUND")
	})
}

func TestRespondToFriendRequest(t *testing.T) {
	ctx := context.Background()
	pending := func() *stubFriendRepo {
		return &stubFriendRepo{
			getByID: func(_ context.Context, id uint) (*models.Friendship, error) {
				return &models.Friendship{ID: id, RequesterID: 1, AddresseeID: 2, Status: models.FriendshipStatusPending}, nil
			},
		}
	}

	t.Run("only addressee may accept", func(t *testing.T) {
		svc := NewFriendService(pending(), &stubUserRepo{})
		err := svc.AcceptFriendRequest(ctx, 9, 1)
		requireAppErrorCode(t, err, "FORBIDDEN")
	})

	t.Run("accept updates status", func(t *testing.T) {
		friends := pending()
		var gotStatus models.FriendshipStatus
		friends.updateStatus = func(_ context.Context, _ uint, status models.FriendshipStatus) error {
			gotStatus = status
			return nil
		}
		svc := NewFriendService(friends, &stubUserRepo{})
		require.NoError(t, svc.AcceptFriendRequest(ctx, 9, 2))
		assert.Equal(t, models.FriendshipStatusAccepted, gotStatus)
	})

	t.Run("reject keeps the edge", func(t *testing.T) {
		friends := pending()
		var gotStatus models.FriendshipStatus
		deleted := false
		friends.updateStatus = func(_ context.Context, _ uint, status models.FriendshipStatus) error {
			gotStatus = status
			return nil
		}
		friends.delete = func(_ context.Context, _ uint) error {
			deleted = true
			return nil
		}
		svc := NewFriendService(friends, &stubUserRepo{})
		require.NoError(t, svc.RejectFriendRequest(ctx, 9, 2))
		assert.Equal(t, models.FriendshipStatusRejected, gotStatus)
		assert.False(t, deleted)
	})

	t.Run("responding to a settled request fails", func(t *testing.T) {
		friends := &stubFriendRepo{
			getByID: func(_ context.Context, id uint) (*models.Friendship, error) {
				return &models.Friendship{ID: id, RequesterID: 1, AddresseeID: 2, Status: models.FriendshipStatusAccepted}, nil
			},
		}
		svc := NewFriendService(friends, &stubUserRepo{})
		err := svc.AcceptFriendRequest(ctx, 9, 2)
		requireAppErrorCode(t, err, "VALIDATION_ERROR")
	})
}

func TestCancelFriendRequest(t *testing.T) {
	ctx := context.Background()
	friends := &stubFriendRepo{
		getByID: func(_ context.Context, id uint) (*models.Friendship, error) {
			return &models.Friendship{ID: id, RequesterID: 1, AddresseeID: 2, Status: models.FriendshipStatusPending}, nil
		},
	}
	deleted := false
	friends.delete = func(_ context.Context, _ uint) error {
		deleted = true
		return nil
	}
	svc := NewFriendService(friends, &stubUserRepo{})

	err := svc.CancelFriendRequest(ctx, 9, 2)
	requireAppErrorCode(t, err, "FORBIDDEN")
	assert.False(t, deleted)

	require.NoError(t, svc.CancelFriendRequest(ctx, 9, 1))
	assert.True(t, deleted)
}

func TestRemoveFriend(t *testing.T) {
	ctx := context.Background()

	t.Run("removes accepted edges", func(t *testing.T) {
		removed := false
		friends := &stubFriendRepo{
			getBetween: func(_ context.Context, _, _ uint) (*models.Friendship, error) {
				return &models.Friendship{ID: 9, Status: models.FriendshipStatusAccepted}, nil
			},
			removeFriendship: func(_ context.Context, _, _ uint) error {
				removed = true
				return nil
			},
		}
		svc := NewFriendService(friends, &stubUserRepo{})
		require.NoError(t, svc.RemoveFriend(ctx, 1, 2))
		assert.True(t, removed)
	})

	t.Run("nothing to remove", func(t *testing.T) {
		svc := NewFriendService(&stubFriendRepo{}, &stubUserRepo{})
		err := svc.RemoveFriend(ctx, 1, 2)
		requireAppErrorCode(t, err, "NOT_FOUND")
	})
}

func TestFriendshipStatus(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name string
		edge *models.Friendship
		want string
	}{
		{"none", nil, "none"},
		{"friends", &models.Friendship{Status: models.FriendshipStatusAccepted}, "friends"},
		{"pending sent", &models.Friendship{RequesterID: 1, AddresseeID: 2, Status: models.FriendshipStatusPending}, "pending_sent"},
		{"pending received", &models.Friendship{RequesterID: 2, AddresseeID: 1, Status: models.FriendshipStatusPending}, "pending_received"},
		{"rejected", &models.Friendship{Status: models.FriendshipStatusRejected}, "rejected"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			friends := &stubFriendRepo{
				getBetween: func(_ context.Context, _, _ uint) (*models.Friendship, error) {
					return tc.edge, nil
				},
			}
			svc := NewFriendService(friends, &stubUserRepo{})
			got, err := svc.FriendshipStatus(ctx, 1, 2)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	svc := NewFriendService(&stubFriendRepo{}, &stubUserRepo{})
	got, err := svc.FriendshipStatus(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "self", got)
}
