package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"feedsng/internal/cache"
	"feedsng/internal/fetcher"
	"feedsng/internal/logger"
	"feedsng/internal/model"
	"feedsng/internal/repository"
)

// RefreshResult lists the id of every stored entry, new or pre-existing, in
// entry order. EntryErrors holds entries that could not be stored.
type RefreshResult struct {
	FeedID      model.FeedID
	ItemIDs     []model.FeedItemID
	EntryErrors []EntryError
}

type EntryError struct {
	Index int
	URL   string
	Err   error
}

func (e EntryError) Error() string {
	return fmt.Sprintf("entry %d (%s): %v", e.Index, e.URL, e.Err)
}

// SweepResult summarises one pass over the catalog.
type SweepResult struct {
	Feeds     int `json:"feeds"`
	Refreshed int `json:"refreshed"`
	Failed    int `json:"failed"`
	Items     int `json:"items"`
}

type RefreshService interface {
	// RefreshFeed runs one fetch-then-store cycle. A failed fetch returns a
	// *FetchFailedError and leaves the refresh timestamp untouched.
	RefreshFeed(ctx context.Context, feed model.Feed) (RefreshResult, error)
	RefreshFeedByID(ctx context.Context, id model.FeedID) (RefreshResult, error)
	// FetchFeed fetches url and adds it to the catalog together with its
	// entries. created reports whether this call inserted the feed.
	FetchFeed(ctx context.Context, url string) (feed model.Feed, created bool, err error)
	// RefreshAll refreshes every catalogued feed. Per-feed failures are logged
	// and counted, never returned.
	RefreshAll(ctx context.Context) (SweepResult, error)
	IsRefreshing() bool
}

type refreshService struct {
	feeds       repository.FeedRepository
	items       repository.FeedItemRepository
	fetcher     FeedFetcher
	feedCache   cache.FeedCache
	concurrency int
	now         func() time.Time

	mu           sync.Mutex
	isRefreshing bool
}

// NewRefreshService builds the ingestion engine. feedCache may be nil;
// concurrency bounds how many feeds a sweep refreshes at once.
func NewRefreshService(feeds repository.FeedRepository, items repository.FeedItemRepository, feedFetcher FeedFetcher, feedCache cache.FeedCache, concurrency int) RefreshService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &refreshService{
		feeds:       feeds,
		items:       items,
		fetcher:     feedFetcher,
		feedCache:   feedCache,
		concurrency: concurrency,
		now:         time.Now,
	}
}

func (s *refreshService) RefreshAll(ctx context.Context) (SweepResult, error) {
	s.mu.Lock()
	if s.isRefreshing {
		s.mu.Unlock()
		return SweepResult{}, ErrAlreadyRefreshing
	}
	s.isRefreshing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isRefreshing = false
		s.mu.Unlock()
	}()

	feeds, err := s.feeds.List(ctx)
	if err != nil {
		logger.Error("sweep list feeds failed", "module", "service", "action", "sweep", "resource", "feed", "result", "failed", "error", err)
		return SweepResult{}, fmt.Errorf("list feeds: %w", err)
	}

	start := s.now()
	var (
		resMu  sync.Mutex
		result = SweepResult{Feeds: len(feeds)}
	)
	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)
	for _, feed := range feeds {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			out, err := s.RefreshFeed(ctx, feed)
			resMu.Lock()
			defer resMu.Unlock()
			if err != nil {
				result.Failed++
				return nil
			}
			result.Refreshed++
			result.Items += len(out.ItemIDs)
			return nil
		})
	}
	_ = g.Wait()

	logger.Info("sweep completed", "module", "service", "action", "sweep", "resource", "feed", "result", "ok",
		"feeds", result.Feeds, "refreshed", result.Refreshed, "failed", result.Failed, "items", result.Items,
		"duration", s.now().Sub(start).String())
	return result, ctx.Err()
}

func (s *refreshService) IsRefreshing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRefreshing
}

func (s *refreshService) RefreshFeedByID(ctx context.Context, id model.FeedID) (RefreshResult, error) {
	feed, err := s.feeds.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RefreshResult{}, ErrNotFound
		}
		return RefreshResult{}, err
	}
	return s.RefreshFeed(ctx, feed)
}

func (s *refreshService) RefreshFeed(ctx context.Context, feed model.Feed) (RefreshResult, error) {
	fetched, err := s.fetcher.Fetch(ctx, feed.URL)
	if err != nil {
		failure := fetchFailure(feed.URL, err)
		if updateErr := s.feeds.UpdateErrorMessage(ctx, feed.ID, &failure.Reason); updateErr != nil {
			logger.Warn("record feed error failed", "module", "service", "action", "refresh", "resource", "feed", "result", "failed", "feed_id", feed.ID, "error", updateErr)
		}
		s.invalidate(ctx, feed.ID)
		logger.Warn("feed refresh failed", "module", "service", "action", "refresh", "resource", "feed", "result", "failed", "feed_id", feed.ID, "url", feed.URL, "reason", failure.Reason)
		return RefreshResult{FeedID: feed.ID}, failure
	}

	result := s.storeEntries(ctx, feed.ID, fetched.Entries)
	if err := s.feeds.MarkRefreshed(ctx, feed.ID, s.now()); err != nil {
		return result, err
	}
	s.invalidate(ctx, feed.ID)

	logger.Debug("feed refreshed", "module", "service", "action", "refresh", "resource", "feed", "result", "ok",
		"feed_id", feed.ID, "entries", len(fetched.Entries), "stored", len(result.ItemIDs), "entry_errors", len(result.EntryErrors))
	return result, nil
}

func (s *refreshService) FetchFeed(ctx context.Context, url string) (model.Feed, bool, error) {
	fetched, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		failure := fetchFailure(url, err)
		logger.Warn("feed fetch failed", "module", "service", "action", "fetch", "resource", "feed", "result", "failed", "url", url, "reason", failure.Reason)
		return model.Feed{}, false, failure
	}

	feedURL := fetched.Feed.URL
	if feedURL == "" {
		feedURL = url
	}
	name := fetched.Feed.Title
	if name == "" {
		name = feedURL
	}
	feed, created, err := s.feeds.InsertIfAbsent(ctx, model.Feed{
		Name:        name,
		Description: optionalString(fetched.Feed.Description),
		URL:         feedURL,
		SiteURL:     optionalString(fetched.Feed.SiteURL),
	})
	if err != nil {
		return model.Feed{}, false, err
	}

	result := s.storeEntries(ctx, feed.ID, fetched.Entries)
	refreshedAt := s.now()
	if err := s.feeds.MarkRefreshed(ctx, feed.ID, refreshedAt); err != nil {
		return model.Feed{}, false, err
	}
	s.invalidate(ctx, feed.ID)
	feed.LastRefreshedAt = &refreshedAt
	feed.ErrorMessage = nil

	logger.Info("feed added", "module", "service", "action", "create", "resource", "feed", "result", "ok",
		"feed_id", feed.ID, "url", feed.URL, "created", created, "stored", len(result.ItemIDs))
	return feed, created, nil
}

// storeEntries dedup-inserts every entry. One entry failing never stops the rest.
func (s *refreshService) storeEntries(ctx context.Context, feedID model.FeedID, entries []fetcher.Entry) RefreshResult {
	result := RefreshResult{FeedID: feedID, ItemIDs: make([]model.FeedItemID, 0, len(entries))}
	fetchedAt := s.now()
	for i, entry := range entries {
		item, err := normalizeEntry(feedID, entry, fetchedAt)
		if err != nil {
			result.EntryErrors = append(result.EntryErrors, EntryError{Index: i, URL: entry.URL, Err: err})
			continue
		}
		id, err := s.items.InsertIfAbsent(ctx, item)
		if err != nil {
			logger.Warn("store entry failed", "module", "service", "action", "refresh", "resource", "entry", "result", "failed", "feed_id", feedID, "url", item.URL, "error", err)
			result.EntryErrors = append(result.EntryErrors, EntryError{Index: i, URL: item.URL, Err: err})
			continue
		}
		result.ItemIDs = append(result.ItemIDs, id)
	}
	return result
}

func (s *refreshService) invalidate(ctx context.Context, id model.FeedID) {
	if s.feedCache != nil {
		s.feedCache.Delete(ctx, id)
	}
}

func fetchFailure(url string, err error) *FetchFailedError {
	reason := err.Error()
	var fetchErr *fetcher.FetchError
	if errors.As(err, &fetchErr) {
		reason = fetchErr.Reason
	}
	return &FetchFailedError{URL: url, Reason: reason, Err: err}
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
