package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"feedsng/internal/cache"
	"feedsng/internal/model"
	"feedsng/internal/repository"
)

// FeedItemsQuery narrows GetFeedItems. A nil FeedIDs means every feed of the
// user; IDFilter and Filter are ANDed; Limit <= 0 returns all matches.
type FeedItemsQuery struct {
	FeedIDs  []model.FeedID
	IDFilter model.FeedItemIDFilter
	Filter   model.FeedItemFilter
	Limit    int
}

type QueryService interface {
	GetFeed(ctx context.Context, id model.FeedID) (model.Feed, error)
	GetGroups(ctx context.Context, userID model.UserID) ([]model.Group, error)
	GetFeeds(ctx context.Context, userID model.UserID) ([]model.Feed, error)
	GetFeedItems(ctx context.Context, userID model.UserID, q FeedItemsQuery) ([]model.UserFeedItem, error)
	GetFeedItemIDs(ctx context.Context, userID model.UserID, feedIDs []model.FeedID, filter model.FeedItemFilter) ([]model.FeedItemID, error)
	CountFeedItems(ctx context.Context, userID model.UserID, feedID model.FeedID, filter model.FeedItemFilter) (int, error)
	GetFeedItem(ctx context.Context, userID model.UserID, feedID model.FeedID, id model.FeedItemID) (model.UserFeedItem, error)
}

type queryService struct {
	feeds     repository.FeedRepository
	items     repository.FeedItemRepository
	groups    repository.GroupRepository
	feedCache cache.FeedCache
}

func NewQueryService(feeds repository.FeedRepository, items repository.FeedItemRepository, groups repository.GroupRepository, feedCache cache.FeedCache) QueryService {
	return &queryService{
		feeds:     feeds,
		items:     items,
		groups:    groups,
		feedCache: feedCache,
	}
}

func (s *queryService) GetFeed(ctx context.Context, id model.FeedID) (model.Feed, error) {
	if id <= 0 {
		return model.Feed{}, ErrInvalid
	}
	if s.feedCache != nil {
		if feed, ok := s.feedCache.Get(ctx, id); ok {
			return feed, nil
		}
	}
	feed, err := s.feeds.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Feed{}, ErrNotFound
		}
		return model.Feed{}, err
	}
	if s.feedCache != nil {
		s.feedCache.Set(ctx, feed)
	}
	return feed, nil
}

func (s *queryService) GetGroups(ctx context.Context, userID model.UserID) ([]model.Group, error) {
	if userID <= 0 {
		return nil, ErrInvalid
	}
	return s.groups.ListByUser(ctx, userID)
}

func (s *queryService) GetFeeds(ctx context.Context, userID model.UserID) ([]model.Feed, error) {
	if userID <= 0 {
		return nil, ErrInvalid
	}
	return s.feeds.ListByUser(ctx, userID)
}

func (s *queryService) GetFeedItems(ctx context.Context, userID model.UserID, q FeedItemsQuery) ([]model.UserFeedItem, error) {
	if userID <= 0 || q.Limit < 0 {
		return nil, ErrInvalid
	}
	items, err := s.items.Query(ctx, repository.FeedItemQuery{
		UserID:   userID,
		FeedIDs:  q.FeedIDs,
		IDFilter: q.IDFilter,
		Filter:   q.Filter,
		Limit:    q.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("query feed items: %w", err)
	}
	return items, nil
}

func (s *queryService) GetFeedItemIDs(ctx context.Context, userID model.UserID, feedIDs []model.FeedID, filter model.FeedItemFilter) ([]model.FeedItemID, error) {
	if userID <= 0 {
		return nil, ErrInvalid
	}
	ids, err := s.items.QueryIDs(ctx, repository.FeedItemQuery{
		UserID:  userID,
		FeedIDs: feedIDs,
		Filter:  filter,
	})
	if err != nil {
		return nil, fmt.Errorf("query feed item ids: %w", err)
	}
	return ids, nil
}

func (s *queryService) CountFeedItems(ctx context.Context, userID model.UserID, feedID model.FeedID, filter model.FeedItemFilter) (int, error) {
	if userID <= 0 || feedID <= 0 {
		return 0, ErrInvalid
	}
	return s.items.Count(ctx, repository.FeedItemQuery{
		UserID:  userID,
		FeedIDs: []model.FeedID{feedID},
		Filter:  filter,
	})
}

func (s *queryService) GetFeedItem(ctx context.Context, userID model.UserID, feedID model.FeedID, id model.FeedItemID) (model.UserFeedItem, error) {
	if userID <= 0 || feedID <= 0 || id <= 0 {
		return model.UserFeedItem{}, ErrInvalid
	}
	item, err := s.items.Get(ctx, userID, feedID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.UserFeedItem{}, ErrNotFound
		}
		return model.UserFeedItem{}, err
	}
	return item, nil
}
