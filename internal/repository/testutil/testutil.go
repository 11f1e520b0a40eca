// Package testutil provides a throwaway SQLite database and seed helpers for
// tests that exercise the real storage layer.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"feedsng/internal/db"
	"feedsng/internal/model"
	"feedsng/internal/repository"
)

// NewTestDB opens a migrated SQLite database in a per-test temp dir.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.Open(string(db.SQLite), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// SeedFeed inserts a feed for url and returns it.
func SeedFeed(t *testing.T, d *db.DB, name, url string) model.Feed {
	t.Helper()
	feed, _, err := repository.NewFeedRepository(d).InsertIfAbsent(context.Background(), model.Feed{Name: name, URL: url})
	require.NoError(t, err)
	return feed
}

// SeedItem inserts an item into feedID and returns its id.
func SeedItem(t *testing.T, d *db.DB, feedID model.FeedID, title, url string) model.FeedItemID {
	t.Helper()
	id, err := repository.NewFeedItemRepository(d).InsertIfAbsent(context.Background(), model.FeedItem{
		FeedID:    feedID,
		Title:     title,
		URL:       url,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return id
}

// Subscribe links feedID directly to userID.
func Subscribe(t *testing.T, d *db.DB, userID model.UserID, feedID model.FeedID) {
	t.Helper()
	require.NoError(t, repository.NewFeedRepository(d).Subscribe(context.Background(), userID, feedID))
}

// SeedGroup creates a group owned by userID containing feedIDs.
func SeedGroup(t *testing.T, d *db.DB, userID model.UserID, name string, feedIDs ...model.FeedID) model.Group {
	t.Helper()
	groups := repository.NewGroupRepository(d)
	group, err := groups.Create(context.Background(), userID, name)
	require.NoError(t, err)
	for _, feedID := range feedIDs {
		require.NoError(t, groups.AddFeed(context.Background(), group.ID, feedID))
	}
	group.FeedIDs = feedIDs
	return group
}
