package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"feedsng/internal/model"
	"feedsng/internal/repository/testutil"
	"feedsng/internal/service"
)

// seedAB stores items A then B in a feed the user subscribes to.
func seedAB(t *testing.T, h *harness, userID model.UserID) (model.Feed, model.FeedItemID, model.FeedItemID) {
	t.Helper()
	feed := testutil.SeedFeed(t, h.db, "Blog", "https://blog.example/feed")
	testutil.Subscribe(t, h.db, userID, feed.ID)
	a := testutil.SeedItem(t, h.db, feed.ID, "A", "https://blog.example/a")
	b := testutil.SeedItem(t, h.db, feed.ID, "B", "https://blog.example/b")
	return feed, a, b
}

func itemIDs(items []model.UserFeedItem) []model.FeedItemID {
	ids := make([]model.FeedItemID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestGetFeedItems_IDFilters(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, a, b := seedAB(t, h, 1)

	items, err := h.query.GetFeedItems(ctx, 1, service.FeedItemsQuery{IDFilter: model.MaxIDFilter{ID: b}})
	require.NoError(t, err)
	require.Equal(t, []model.FeedItemID{b, a}, itemIDs(items))

	items, err = h.query.GetFeedItems(ctx, 1, service.FeedItemsQuery{IDFilter: model.SinceIDFilter{ID: a}})
	require.NoError(t, err)
	require.Equal(t, []model.FeedItemID{b}, itemIDs(items))

	items, err = h.query.GetFeedItems(ctx, 1, service.FeedItemsQuery{IDFilter: model.WithIDsFilter{IDs: []model.FeedItemID{a}}})
	require.NoError(t, err)
	require.Equal(t, []model.FeedItemID{a}, itemIDs(items))

	items, err = h.query.GetFeedItems(ctx, 1, service.FeedItemsQuery{Limit: 1})
	require.NoError(t, err)
	require.Equal(t, []model.FeedItemID{b}, itemIDs(items))
}

func TestGetFeedItems_OverlayDefaultsToUnreadUnsaved(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	seedAB(t, h, 1)

	items, err := h.query.GetFeedItems(ctx, 1, service.FeedItemsQuery{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		require.False(t, item.IsRead)
		require.False(t, item.IsSaved)
	}

	unread, err := h.query.GetFeedItemIDs(ctx, 1, nil, model.FilterUnread)
	require.NoError(t, err)
	require.Len(t, unread, 2)
}

func TestGetFeedItems_OnlyUserFeeds(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	seedAB(t, h, 1)

	items, err := h.query.GetFeedItems(ctx, 2, service.FeedItemsQuery{})
	require.NoError(t, err)
	require.Empty(t, items)

	items, err = h.query.GetFeedItems(ctx, 1, service.FeedItemsQuery{FeedIDs: []model.FeedID{}})
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestGetFeedItems_IncludesGroupFeeds(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	feed := testutil.SeedFeed(t, h.db, "Grouped", "https://grouped.example/feed")
	testutil.SeedGroup(t, h.db, 3, "News", feed.ID)
	id := testutil.SeedItem(t, h.db, feed.ID, "G", "https://grouped.example/g")

	items, err := h.query.GetFeedItems(ctx, 3, service.FeedItemsQuery{})
	require.NoError(t, err)
	require.Equal(t, []model.FeedItemID{id}, itemIDs(items))

	feeds, err := h.query.GetFeeds(ctx, 3)
	require.NoError(t, err)
	require.Len(t, feeds, 1)

	groups, err := h.query.GetGroups(ctx, 3)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Equal(t, []model.FeedID{feed.ID}, groups[0].FeedIDs)
}

func TestGetFeedItem(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	feed, a, _ := seedAB(t, h, 1)

	item, err := h.query.GetFeedItem(ctx, 1, feed.ID, a)
	require.NoError(t, err)
	require.Equal(t, "A", item.Title)

	_, err = h.query.GetFeedItem(ctx, 1, feed.ID+1, a)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestQueryService_Validation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.query.GetFeed(ctx, 0)
	require.ErrorIs(t, err, service.ErrInvalid)
	_, err = h.query.GetFeed(ctx, 99)
	require.ErrorIs(t, err, service.ErrNotFound)
	_, err = h.query.GetFeedItems(ctx, 0, service.FeedItemsQuery{})
	require.ErrorIs(t, err, service.ErrInvalid)
	_, err = h.query.GetFeedItems(ctx, 1, service.FeedItemsQuery{Limit: -1})
	require.ErrorIs(t, err, service.ErrInvalid)
	_, err = h.query.CountFeedItems(ctx, 1, 0, model.FilterAll)
	require.ErrorIs(t, err, service.ErrInvalid)
	_, err = h.query.GetFeedItem(ctx, 1, 1, -5)
	require.ErrorIs(t, err, service.ErrInvalid)
}
