package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"feedsng/internal/cache"
	"feedsng/internal/fetcher"
	"feedsng/internal/model"
	"feedsng/internal/repository/testutil"
	"feedsng/internal/service"
)

func TestRefreshFeed_IsIdempotent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	feed := testutil.SeedFeed(t, h.db, "Blog", "https://blog.example/feed")
	testutil.Subscribe(t, h.db, 1, feed.ID)

	h.fetcher.EXPECT().Fetch(gomock.Any(), feed.URL).Return(twoEntryFeed(feed.URL), nil).Times(2)

	first, err := h.refresh.RefreshFeed(ctx, feed)
	require.NoError(t, err)
	require.Len(t, first.ItemIDs, 2)
	require.Empty(t, first.EntryErrors)

	second, err := h.refresh.RefreshFeed(ctx, feed)
	require.NoError(t, err)
	require.Equal(t, first.ItemIDs, second.ItemIDs)

	items, err := h.query.GetFeedItems(ctx, 1, service.FeedItemsQuery{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "B", items[0].Title)
	require.Equal(t, "A", items[1].Title)
	require.Greater(t, items[0].ID, items[1].ID)
	require.Equal(t, t2, items[0].CreatedAt.UTC())

	stored, err := h.feeds.GetByID(ctx, feed.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastRefreshedAt)
	require.Nil(t, stored.ErrorMessage)
}

func TestRefreshFeed_OverlappingRefreshesShareItems(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	feed := testutil.SeedFeed(t, h.db, "Blog", "https://blog.example/feed")
	h.fetcher.EXPECT().Fetch(gomock.Any(), feed.URL).Return(twoEntryFeed(feed.URL), nil).Times(2)

	var wg sync.WaitGroup
	results := make([]service.RefreshResult, 2)
	errs := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = h.refresh.RefreshFeed(ctx, feed)
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	require.ElementsMatch(t, results[0].ItemIDs, results[1].ItemIDs)

	testutil.Subscribe(t, h.db, 1, feed.ID)
	count, err := h.query.CountFeedItems(ctx, 1, feed.ID, model.FilterAll)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestRefreshFeed_FetchFailureRecordsReason(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	feed := testutil.SeedFeed(t, h.db, "Blog", "https://blog.example/feed")

	h.fetcher.EXPECT().Fetch(gomock.Any(), feed.URL).Return(fetcher.Result{}, &fetcher.FetchError{
		URL:        feed.URL,
		StatusCode: 500,
		Reason:     "HTTP 500 Internal Server Error",
	})

	_, err := h.refresh.RefreshFeed(ctx, feed)
	require.ErrorIs(t, err, service.ErrFeedFetch)
	require.ErrorIs(t, err, fetcher.ErrFetch)
	var failed *service.FetchFailedError
	require.True(t, errors.As(err, &failed))
	require.Equal(t, "HTTP 500 Internal Server Error", failed.Reason)

	stored, err := h.feeds.GetByID(ctx, feed.ID)
	require.NoError(t, err)
	require.Nil(t, stored.LastRefreshedAt)
	require.NotNil(t, stored.ErrorMessage)
	require.Equal(t, "HTTP 500 Internal Server Error", *stored.ErrorMessage)

	// A later successful cycle clears the recorded failure.
	h.fetcher.EXPECT().Fetch(gomock.Any(), feed.URL).Return(twoEntryFeed(feed.URL), nil)
	_, err = h.refresh.RefreshFeed(ctx, feed)
	require.NoError(t, err)
	stored, err = h.feeds.GetByID(ctx, feed.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastRefreshedAt)
	require.Nil(t, stored.ErrorMessage)
}

func TestRefreshFeed_SkipsEntriesWithoutURL(t *testing.T) {
	h := newHarness(t)
	feed := testutil.SeedFeed(t, h.db, "Blog", "https://blog.example/feed")

	result := twoEntryFeed(feed.URL)
	result.Entries = append([]fetcher.Entry{{Title: "no link"}}, result.Entries...)
	h.fetcher.EXPECT().Fetch(gomock.Any(), feed.URL).Return(result, nil)

	out, err := h.refresh.RefreshFeed(context.Background(), feed)
	require.NoError(t, err)
	require.Len(t, out.ItemIDs, 2)
	require.Len(t, out.EntryErrors, 1)
	require.Equal(t, 0, out.EntryErrors[0].Index)
}

func TestRefreshFeedByID_NotFound(t *testing.T) {
	h := newHarness(t)
	_, err := h.refresh.RefreshFeedByID(context.Background(), 12345)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestFetchFeed_AddsFeedOnce(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	url := "https://new.example/rss"
	h.fetcher.EXPECT().Fetch(gomock.Any(), url).Return(twoEntryFeed(url), nil).Times(2)

	feed, created, err := h.refresh.FetchFeed(ctx, url)
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, "Feed "+url, feed.Name)
	require.Equal(t, url, feed.URL)
	require.NotNil(t, feed.SiteURL)
	require.NotNil(t, feed.LastRefreshedAt)

	again, created, err := h.refresh.FetchFeed(ctx, url)
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, feed.ID, again.ID)

	all, err := h.feeds.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestFetchFeed_Failure(t *testing.T) {
	h := newHarness(t)
	url := "https://down.example/rss"
	h.fetcher.EXPECT().Fetch(gomock.Any(), url).Return(fetcher.Result{}, &fetcher.FetchError{URL: url, Reason: "timeout after 30s"})

	_, _, err := h.refresh.FetchFeed(context.Background(), url)
	require.ErrorIs(t, err, service.ErrFeedFetch)

	all, err := h.feeds.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestRefreshAll_CountsOutcomes(t *testing.T) {
	h := newHarness(t)
	ok := testutil.SeedFeed(t, h.db, "OK", "https://ok.example/feed")
	bad := testutil.SeedFeed(t, h.db, "Bad", "https://bad.example/feed")

	h.fetcher.EXPECT().Fetch(gomock.Any(), ok.URL).Return(twoEntryFeed(ok.URL), nil)
	h.fetcher.EXPECT().Fetch(gomock.Any(), bad.URL).Return(fetcher.Result{}, &fetcher.FetchError{URL: bad.URL, Reason: "HTTP 404 Not Found"})

	result, err := h.refresh.RefreshAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, service.SweepResult{Feeds: 2, Refreshed: 1, Failed: 1, Items: 2}, result)
	require.False(t, h.refresh.IsRefreshing())
}

func TestRefreshAll_RejectsOverlappingSweep(t *testing.T) {
	h := newHarness(t)
	feed := testutil.SeedFeed(t, h.db, "Slow", "https://slow.example/feed")

	release := make(chan struct{})
	h.fetcher.EXPECT().Fetch(gomock.Any(), feed.URL).DoAndReturn(func(ctx context.Context, url string) (fetcher.Result, error) {
		<-release
		return twoEntryFeed(url), nil
	})

	done := make(chan error, 1)
	go func() {
		_, err := h.refresh.RefreshAll(context.Background())
		done <- err
	}()
	require.Eventually(t, h.refresh.IsRefreshing, time.Second, 5*time.Millisecond)

	_, err := h.refresh.RefreshAll(context.Background())
	require.ErrorIs(t, err, service.ErrAlreadyRefreshing)

	close(release)
	require.NoError(t, <-done)
	require.False(t, h.refresh.IsRefreshing())
}

func TestRefreshFeed_InvalidatesCachedFeed(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	feedCache := cache.NewMemory(time.Minute)
	defer feedCache.Close()
	refresh := service.NewRefreshService(h.feeds, h.items, h.fetcher, feedCache, 1)
	query := service.NewQueryService(h.feeds, h.items, h.groups, feedCache)

	feed := testutil.SeedFeed(t, h.db, "Blog", "https://blog.example/feed")
	cached, err := query.GetFeed(ctx, feed.ID)
	require.NoError(t, err)
	require.Nil(t, cached.LastRefreshedAt)

	h.fetcher.EXPECT().Fetch(gomock.Any(), feed.URL).Return(twoEntryFeed(feed.URL), nil)
	_, err = refresh.RefreshFeed(ctx, feed)
	require.NoError(t, err)

	fresh, err := query.GetFeed(ctx, feed.ID)
	require.NoError(t, err)
	require.NotNil(t, fresh.LastRefreshedAt)
}

func TestFetchFeed_InvalidatesCachedExistingFeed(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	feedCache := cache.NewMemory(time.Minute)
	defer feedCache.Close()
	refresh := service.NewRefreshService(h.feeds, h.items, h.fetcher, feedCache, 1)
	query := service.NewQueryService(h.feeds, h.items, h.groups, feedCache)

	feed := testutil.SeedFeed(t, h.db, "Blog", "https://blog.example/feed")
	cached, err := query.GetFeed(ctx, feed.ID)
	require.NoError(t, err)
	require.Nil(t, cached.LastRefreshedAt)

	h.fetcher.EXPECT().Fetch(gomock.Any(), feed.URL).Return(twoEntryFeed(feed.URL), nil)
	got, created, err := refresh.FetchFeed(ctx, feed.URL)
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, feed.ID, got.ID)

	fresh, err := query.GetFeed(ctx, feed.ID)
	require.NoError(t, err)
	require.NotNil(t, fresh.LastRefreshedAt)
}
