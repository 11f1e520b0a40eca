package service_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"feedsng/internal/model"
	"feedsng/internal/repository"
	"feedsng/internal/repository/mock"
	"feedsng/internal/repository/testutil"
	"feedsng/internal/service"
)

func TestUpdateFeed_SaveThenUnsaveOne(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	feed, a, _ := seedAB(t, h, 1)

	require.NoError(t, h.update.UpdateFeed(ctx, 1, feed.ID, model.ActionSave))
	count, err := h.query.CountFeedItems(ctx, 1, feed.ID, model.FilterSaved)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	require.NoError(t, h.update.UpdateFeedItem(ctx, 1, a, model.ActionUnsave))
	count, err = h.query.CountFeedItems(ctx, 1, feed.ID, model.FilterSaved)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestUpdateFeedItem_ReadAndSaveAreIndependent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	feed, a, _ := seedAB(t, h, 1)

	require.NoError(t, h.update.UpdateFeedItem(ctx, 1, a, model.ActionRead))
	require.NoError(t, h.update.UpdateFeedItem(ctx, 1, a, model.ActionSave))
	item, err := h.query.GetFeedItem(ctx, 1, feed.ID, a)
	require.NoError(t, err)
	require.True(t, item.IsRead)
	require.True(t, item.IsSaved)

	require.NoError(t, h.update.UpdateFeedItem(ctx, 1, a, model.ActionUnsave))
	item, err = h.query.GetFeedItem(ctx, 1, feed.ID, a)
	require.NoError(t, err)
	require.True(t, item.IsRead)
	require.False(t, item.IsSaved)

	require.NoError(t, h.update.UpdateFeedItem(ctx, 1, a, model.ActionSave))
	require.NoError(t, h.update.UpdateFeedItem(ctx, 1, a, model.ActionUnread))
	item, err = h.query.GetFeedItem(ctx, 1, feed.ID, a)
	require.NoError(t, err)
	require.False(t, item.IsRead)
	require.True(t, item.IsSaved)

	// Another user's overlay is untouched.
	testutil.Subscribe(t, h.db, 2, feed.ID)
	other, err := h.query.GetFeedItem(ctx, 2, feed.ID, a)
	require.NoError(t, err)
	require.False(t, other.IsRead)
	require.False(t, other.IsSaved)
}

func TestUpdateGroup(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	first := testutil.SeedFeed(t, h.db, "One", "https://one.example/feed")
	second := testutil.SeedFeed(t, h.db, "Two", "https://two.example/feed")
	testutil.SeedItem(t, h.db, first.ID, "1a", "https://one.example/a")
	testutil.SeedItem(t, h.db, second.ID, "2a", "https://two.example/a")
	testutil.SeedItem(t, h.db, second.ID, "2b", "https://two.example/b")
	group := testutil.SeedGroup(t, h.db, 1, "All", first.ID, second.ID)

	require.NoError(t, h.update.UpdateGroup(ctx, 1, group.ID, model.ActionRead))
	unread, err := h.query.GetFeedItemIDs(ctx, 1, nil, model.FilterUnread)
	require.NoError(t, err)
	require.Empty(t, unread)
	read, err := h.query.GetFeedItemIDs(ctx, 1, nil, model.FilterRead)
	require.NoError(t, err)
	require.Len(t, read, 3)

	err = h.update.UpdateGroup(ctx, 2, group.ID, model.ActionRead)
	require.ErrorIs(t, err, service.ErrNotFound)

	empty := testutil.SeedGroup(t, h.db, 1, "Empty")
	require.NoError(t, h.update.UpdateGroup(ctx, 1, empty.ID, model.ActionSave))
}

func TestUpdateService_Validation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	feed, a, _ := seedAB(t, h, 1)

	require.ErrorIs(t, h.update.UpdateFeedItem(ctx, 1, a, "star"), service.ErrInvalid)
	require.ErrorIs(t, h.update.UpdateFeedItem(ctx, 0, a, model.ActionRead), service.ErrInvalid)
	require.ErrorIs(t, h.update.UpdateFeedItem(ctx, 1, 0, model.ActionRead), service.ErrInvalid)
	require.ErrorIs(t, h.update.UpdateFeed(ctx, 1, -1, model.ActionRead), service.ErrInvalid)
	require.ErrorIs(t, h.update.UpdateGroup(ctx, 1, 0, model.ActionRead), service.ErrInvalid)
	require.ErrorIs(t, h.update.UpdateFeedItem(ctx, 1, a+1000, model.ActionRead), service.ErrNotFound)
	require.ErrorIs(t, h.update.UpdateFeed(ctx, 1, feed.ID+1000, model.ActionRead), service.ErrNotFound)
	require.ErrorIs(t, h.update.UpdateGroup(ctx, 1, 4242, model.ActionRead), service.ErrNotFound)
}

func TestUpdateFeed_AggregatesUpsertFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	feeds := mock.NewMockFeedRepository(ctrl)
	items := mock.NewMockFeedItemRepository(ctrl)
	groups := mock.NewMockGroupRepository(ctrl)
	svc := service.NewUpdateService(feeds, items, groups)

	feeds.EXPECT().GetByID(gomock.Any(), model.FeedID(10)).Return(model.Feed{ID: 10}, nil)
	items.EXPECT().QueryIDs(gomock.Any(), repository.FeedItemQuery{
		UserID:  1,
		FeedIDs: []model.FeedID{10},
		Filter:  model.FilterUnread,
	}).Return([]model.FeedItemID{1, 2, 3}, nil)

	var (
		mu      sync.Mutex
		written []model.FeedItemID
	)
	boom := errors.New("disk full")
	items.EXPECT().UpsertOverlay(gomock.Any(), model.UserID(1), gomock.Any(), model.ColumnRead, true).
		DoAndReturn(func(_ context.Context, _ model.UserID, id model.FeedItemID, _ model.OverlayColumn, _ bool) error {
			mu.Lock()
			written = append(written, id)
			mu.Unlock()
			if id == 1 {
				return nil
			}
			return boom
		}).Times(3)

	err := svc.UpdateFeed(context.Background(), 1, 10, model.ActionRead)
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "feed item 2")
	require.Contains(t, err.Error(), "feed item 3")
	require.ElementsMatch(t, []model.FeedItemID{1, 2, 3}, written)
}

func TestUpdateFeedItem_MissingItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	items := mock.NewMockFeedItemRepository(ctrl)
	svc := service.NewUpdateService(mock.NewMockFeedRepository(ctrl), items, mock.NewMockGroupRepository(ctrl))

	items.EXPECT().GetByID(gomock.Any(), model.FeedItemID(5)).Return(model.FeedItem{}, sql.ErrNoRows)
	require.ErrorIs(t, svc.UpdateFeedItem(context.Background(), 1, 5, model.ActionSave), service.ErrNotFound)
}
