package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"feedsng/internal/logger"
	"feedsng/internal/model"
	"feedsng/internal/repository"
)

const overlayWriteConcurrency = 8

// UpdateService applies read/saved actions to a user's overlay.
type UpdateService interface {
	UpdateFeedItem(ctx context.Context, userID model.UserID, id model.FeedItemID, action model.FeedUpdateAction) error
	UpdateFeed(ctx context.Context, userID model.UserID, feedID model.FeedID, action model.FeedUpdateAction) error
	UpdateGroup(ctx context.Context, userID model.UserID, groupID model.GroupID, action model.FeedUpdateAction) error
}

type updateService struct {
	feeds  repository.FeedRepository
	items  repository.FeedItemRepository
	groups repository.GroupRepository
}

func NewUpdateService(feeds repository.FeedRepository, items repository.FeedItemRepository, groups repository.GroupRepository) UpdateService {
	return &updateService{feeds: feeds, items: items, groups: groups}
}

func (s *updateService) UpdateFeedItem(ctx context.Context, userID model.UserID, id model.FeedItemID, action model.FeedUpdateAction) error {
	column, value, err := validateUpdate(userID, int64(id), action)
	if err != nil {
		return err
	}
	if _, err := s.items.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.items.UpsertOverlay(ctx, userID, id, column, value)
}

func (s *updateService) UpdateFeed(ctx context.Context, userID model.UserID, feedID model.FeedID, action model.FeedUpdateAction) error {
	if _, _, err := validateUpdate(userID, int64(feedID), action); err != nil {
		return err
	}
	if _, err := s.feeds.GetByID(ctx, feedID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.updateFeeds(ctx, userID, []model.FeedID{feedID}, action)
}

func (s *updateService) UpdateGroup(ctx context.Context, userID model.UserID, groupID model.GroupID, action model.FeedUpdateAction) error {
	if _, _, err := validateUpdate(userID, int64(groupID), action); err != nil {
		return err
	}
	group, err := s.groups.GetByID(ctx, userID, groupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if len(group.FeedIDs) == 0 {
		return nil
	}
	return s.updateFeeds(ctx, userID, group.FeedIDs, action)
}

// updateFeeds resolves the items of feedIDs the action would change and
// upserts their overlay concurrently. Every upsert runs; failures are joined.
func (s *updateService) updateFeeds(ctx context.Context, userID model.UserID, feedIDs []model.FeedID, action model.FeedUpdateAction) error {
	column, value, _ := action.Target()
	ids, err := s.items.QueryIDs(ctx, repository.FeedItemQuery{
		UserID:  userID,
		FeedIDs: feedIDs,
		Filter:  pendingFilter(action),
	})
	if err != nil {
		return fmt.Errorf("resolve feed items: %w", err)
	}

	var (
		mu   sync.Mutex
		errs []error
	)
	g := new(errgroup.Group)
	g.SetLimit(overlayWriteConcurrency)
	for _, id := range ids {
		g.Go(func() error {
			if err := s.items.UpsertOverlay(ctx, userID, id, column, value); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("feed item %d: %w", id, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	result := "ok"
	if len(errs) > 0 {
		result = "partial"
	}
	logger.Info("overlay updated", "module", "service", "action", string(action), "resource", "feed_item", "result", result,
		"user_id", userID, "feeds", len(feedIDs), "items", len(ids), "failed", len(errs))
	return errors.Join(errs...)
}

// pendingFilter selects only the items whose overlay the action would change.
func pendingFilter(action model.FeedUpdateAction) model.FeedItemFilter {
	switch action {
	case model.ActionRead:
		return model.FilterUnread
	case model.ActionUnread:
		return model.FilterRead
	case model.ActionUnsave:
		return model.FilterSaved
	default:
		return model.FilterAll
	}
}

func validateUpdate(userID model.UserID, targetID int64, action model.FeedUpdateAction) (model.OverlayColumn, bool, error) {
	if userID <= 0 || targetID <= 0 {
		return "", false, ErrInvalid
	}
	column, value, err := action.Target()
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return column, value, nil
}
