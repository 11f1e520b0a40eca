// Package cache keeps recently read catalog feeds close to the query path.
package cache

import (
	"context"
	"strconv"

	"feedsng/internal/model"
)

// FeedCache is a read-through cache of catalog feeds keyed by id.
type FeedCache interface {
	Get(ctx context.Context, id model.FeedID) (model.Feed, bool)
	Set(ctx context.Context, feed model.Feed)
	Delete(ctx context.Context, id model.FeedID)
	Close() error
}

func feedKey(id model.FeedID) string {
	return "feed:" + strconv.FormatInt(int64(id), 10)
}
