package service_test

import (
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"feedsng/internal/db"
	"feedsng/internal/fetcher"
	"feedsng/internal/repository"
	"feedsng/internal/repository/testutil"
	"feedsng/internal/service"
	servicemock "feedsng/internal/service/mock"
)

type harness struct {
	db      *db.DB
	feeds   repository.FeedRepository
	items   repository.FeedItemRepository
	groups  repository.GroupRepository
	fetcher *servicemock.MockFeedFetcher
	refresh service.RefreshService
	query   service.QueryService
	update  service.UpdateService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	database := testutil.NewTestDB(t)
	h := &harness{
		db:      database,
		feeds:   repository.NewFeedRepository(database),
		items:   repository.NewFeedItemRepository(database),
		groups:  repository.NewGroupRepository(database),
		fetcher: servicemock.NewMockFeedFetcher(ctrl),
	}
	h.refresh = service.NewRefreshService(h.feeds, h.items, h.fetcher, nil, 1)
	h.query = service.NewQueryService(h.feeds, h.items, h.groups, nil)
	h.update = service.NewUpdateService(h.feeds, h.items, h.groups)
	return h
}

var (
	t1 = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	t2 = time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
)

func entry(title, url string, published time.Time) fetcher.Entry {
	return fetcher.Entry{
		Title:     title,
		URL:       url,
		HTMLBody:  "<p>" + title + "</p>",
		Published: &published,
	}
}

// twoEntryFeed is a feed at url publishing A at t1 and B at t2.
func twoEntryFeed(url string) fetcher.Result {
	return fetcher.Result{
		Feed: fetcher.Metadata{Title: "Feed " + url, URL: url, SiteURL: "https://site.example/"},
		Entries: []fetcher.Entry{
			entry("A", url+"/a", t1),
			entry("B", url+"/b", t2),
		},
	}
}
