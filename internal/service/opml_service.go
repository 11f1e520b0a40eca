package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"feedsng/internal/logger"
	"feedsng/internal/model"
	"feedsng/internal/opml"
	"feedsng/internal/repository"
)

const (
	importConcurrency = 4
	exportTitle       = "FeedsNG Subscriptions"
)

type OPMLService interface {
	// ImportFromOPML subscribes userID to every feed in the document. URLs
	// that cannot be fetched are reported in FailedURLs and do not fail the
	// import; only an unreadable document does.
	ImportFromOPML(ctx context.Context, userID model.UserID, reader io.Reader, onProgress func(ImportProgress)) (ImportResult, error)
	ExportOPML(ctx context.Context, userID model.UserID) ([]byte, error)
}

type ImportResult struct {
	FailedURLs    []string `json:"failedUrls"`
	FeedsCreated  int      `json:"feedsCreated"`
	FeedsLinked   int      `json:"feedsLinked"`
	GroupsCreated int      `json:"groupsCreated"`
}

type ImportProgress struct {
	Total   int    `json:"total"`
	Current int    `json:"current"`
	Feed    string `json:"feed,omitempty"`
	Status  string `json:"status"` // "started", "importing", "done"
}

type opmlService struct {
	parser  OPMLParser
	refresh RefreshService
	feeds   repository.FeedRepository
	groups  repository.GroupRepository
}

func NewOPMLService(parser OPMLParser, refresh RefreshService, feeds repository.FeedRepository, groups repository.GroupRepository) OPMLService {
	return &opmlService{
		parser:  parser,
		refresh: refresh,
		feeds:   feeds,
		groups:  groups,
	}
}

func (s *opmlService) ImportFromOPML(ctx context.Context, userID model.UserID, reader io.Reader, onProgress func(ImportProgress)) (ImportResult, error) {
	if userID <= 0 {
		return ImportResult{}, ErrInvalid
	}
	subs, err := s.parser.Parse(reader)
	if err != nil {
		logger.Warn("opml import parse failed", "module", "service", "action", "import", "resource", "opml", "result", "failed", "error", err)
		return ImportResult{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	urls := distinctURLs(subs)
	logger.Info("opml import parsed", "module", "service", "action", "import", "resource", "opml", "result", "ok",
		"user_id", userID, "count", len(urls), "groups", len(subs.Groups))
	if onProgress != nil {
		onProgress(ImportProgress{Total: len(urls), Status: "started"})
	}

	result := ImportResult{FailedURLs: []string{}}
	resolved, err := s.resolveFeeds(ctx, urls, &result, onProgress)
	if err != nil {
		return result, err
	}

	linked := make(map[model.FeedID]bool)
	for _, u := range subs.URLs {
		feedID, ok := resolved[u]
		if !ok {
			continue
		}
		if err := s.feeds.Subscribe(ctx, userID, feedID); err != nil {
			return result, fmt.Errorf("subscribe feed %d: %w", feedID, err)
		}
		linked[feedID] = true
	}

	for _, g := range subs.Groups {
		group, created, err := s.findOrCreateGroup(ctx, userID, g.Name)
		if err != nil {
			return result, err
		}
		if created {
			result.GroupsCreated++
		}
		for _, u := range g.URLs {
			feedID, ok := resolved[u]
			if !ok {
				continue
			}
			if err := s.groups.AddFeed(ctx, group.ID, feedID); err != nil {
				return result, fmt.Errorf("add feed %d to group %d: %w", feedID, group.ID, err)
			}
			linked[feedID] = true
		}
	}
	result.FeedsLinked = len(linked)
	sort.Strings(result.FailedURLs)

	if onProgress != nil {
		onProgress(ImportProgress{Total: len(urls), Current: len(urls), Status: "done"})
	}
	logger.Info("opml import completed", "module", "service", "action", "import", "resource", "opml", "result", "ok",
		"user_id", userID, "feeds_created", result.FeedsCreated, "feeds_linked", result.FeedsLinked,
		"groups_created", result.GroupsCreated, "failed", len(result.FailedURLs))
	return result, nil
}

// resolveFeeds maps every URL to a catalogued feed, fetching the ones the
// catalog does not know yet. Unresolvable URLs land in result.FailedURLs.
func (s *opmlService) resolveFeeds(ctx context.Context, urls []string, result *ImportResult, onProgress func(ImportProgress)) (map[string]model.FeedID, error) {
	var (
		mu       sync.Mutex
		current  int
		resolved = make(map[string]model.FeedID, len(urls))
	)
	g := new(errgroup.Group)
	g.SetLimit(importConcurrency)
	for _, u := range urls {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			feedID, created, err := s.resolveFeed(ctx, u)

			mu.Lock()
			defer mu.Unlock()
			current++
			if err != nil {
				logger.Warn("opml import feed failed", "module", "service", "action", "import", "resource", "feed", "result", "failed", "url", u, "error", err)
				result.FailedURLs = append(result.FailedURLs, u)
			} else {
				resolved[u] = feedID
				if created {
					result.FeedsCreated++
				}
			}
			if onProgress != nil {
				onProgress(ImportProgress{Total: len(urls), Current: current, Feed: u, Status: "importing"})
			}
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return resolved, nil
}

func (s *opmlService) resolveFeed(ctx context.Context, url string) (model.FeedID, bool, error) {
	existing, err := s.feeds.FindByURL(ctx, url)
	if err != nil {
		return 0, false, err
	}
	if existing != nil {
		return existing.ID, false, nil
	}
	feed, created, err := s.refresh.FetchFeed(ctx, url)
	if err != nil {
		return 0, false, err
	}
	return feed.ID, created, nil
}

func (s *opmlService) findOrCreateGroup(ctx context.Context, userID model.UserID, name string) (model.Group, bool, error) {
	existing, err := s.groups.FindByName(ctx, userID, name)
	if err != nil {
		return model.Group{}, false, fmt.Errorf("find group %q: %w", name, err)
	}
	if existing != nil {
		return *existing, false, nil
	}
	group, err := s.groups.Create(ctx, userID, name)
	if err != nil {
		return model.Group{}, false, fmt.Errorf("create group %q: %w", name, err)
	}
	return group, true, nil
}

func (s *opmlService) ExportOPML(ctx context.Context, userID model.UserID) ([]byte, error) {
	if userID <= 0 {
		return nil, ErrInvalid
	}
	direct, err := s.feeds.ListSubscribed(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list subscribed feeds: %w", err)
	}
	all, err := s.feeds.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list feeds: %w", err)
	}
	groups, err := s.groups.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	byID := make(map[model.FeedID]model.Feed, len(all))
	for _, f := range all {
		byID[f.ID] = f
	}
	feeds := make([]opml.Feed, 0, len(direct))
	for _, f := range direct {
		feeds = append(feeds, exportFeed(f))
	}
	folders := make([]opml.Folder, 0, len(groups))
	for _, g := range groups {
		folder := opml.Folder{Name: g.Name}
		for _, id := range g.FeedIDs {
			if f, ok := byID[id]; ok {
				folder.Feeds = append(folder.Feeds, exportFeed(f))
			}
		}
		folders = append(folders, folder)
	}

	payload, err := opml.Export(exportTitle, feeds, folders)
	if err != nil {
		logger.Error("opml export encode failed", "module", "service", "action", "export", "resource", "opml", "result", "failed", "error", err)
		return nil, err
	}
	logger.Info("opml export completed", "module", "service", "action", "export", "resource", "opml", "result", "ok",
		"user_id", userID, "groups", len(groups), "feeds", len(all))
	return payload, nil
}

func exportFeed(f model.Feed) opml.Feed {
	out := opml.Feed{Title: f.Name, XMLURL: f.URL}
	if f.SiteURL != nil {
		out.HTMLURL = *f.SiteURL
	}
	return out
}

// distinctURLs lists every URL of subs once, top-level feeds first.
func distinctURLs(subs opml.Subscriptions) []string {
	seen := make(map[string]bool)
	var urls []string
	add := func(u string) {
		if !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}
	for _, u := range subs.URLs {
		add(u)
	}
	for _, g := range subs.Groups {
		for _, u := range g.URLs {
			add(u)
		}
	}
	return urls
}
