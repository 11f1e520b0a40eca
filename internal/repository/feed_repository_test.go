package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"feedsng/internal/model"
	"feedsng/internal/repository"
	"feedsng/internal/repository/testutil"
)

func TestFeedRepository_InsertIfAbsent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewFeedRepository(db)
	ctx := context.Background()

	desc := "about"
	created, isNew, err := repo.InsertIfAbsent(ctx, model.Feed{Name: "Blog", URL: "http://x/feed", Description: &desc})
	require.NoError(t, err)
	require.True(t, isNew)
	require.Positive(t, int64(created.ID))
	require.Equal(t, "about", *created.Description)
	require.Nil(t, created.LastRefreshedAt)

	again, isNew, err := repo.InsertIfAbsent(ctx, model.Feed{Name: "Other name", URL: "http://x/feed"})
	require.NoError(t, err)
	require.False(t, isNew)
	require.Equal(t, created.ID, again.ID)
	require.Equal(t, "Blog", again.Name)

	feeds, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, feeds, 1)
}

func TestFeedRepository_FindAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewFeedRepository(db)
	ctx := context.Background()

	missing, err := repo.FindByURL(ctx, "http://nowhere")
	require.NoError(t, err)
	require.Nil(t, missing)

	feed := testutil.SeedFeed(t, db, "Blog", "http://x/feed")
	found, err := repo.FindByURL(ctx, "http://x/feed")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, feed.ID, found.ID)

	_, err = repo.GetByID(ctx, feed.ID+1)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestFeedRepository_ListByUserDeduplicates(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewFeedRepository(db)
	ctx := context.Background()
	user := model.UserID(1)

	direct := testutil.SeedFeed(t, db, "A direct", "http://a")
	both := testutil.SeedFeed(t, db, "B both", "http://b")
	grouped := testutil.SeedFeed(t, db, "C grouped", "http://c")
	testutil.SeedFeed(t, db, "D unrelated", "http://d")

	testutil.Subscribe(t, db, user, direct.ID)
	testutil.Subscribe(t, db, user, both.ID)
	testutil.Subscribe(t, db, user, both.ID)
	testutil.SeedGroup(t, db, user, "news", both.ID, grouped.ID)
	testutil.SeedGroup(t, db, user, "more", both.ID)
	testutil.SeedGroup(t, db, model.UserID(2), "someone else", direct.ID)

	feeds, err := repo.ListByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, feeds, 3)
	require.Equal(t, []model.FeedID{direct.ID, both.ID, grouped.ID}, []model.FeedID{feeds[0].ID, feeds[1].ID, feeds[2].ID})

	subscribed, err := repo.ListSubscribed(ctx, user)
	require.NoError(t, err)
	require.Len(t, subscribed, 2)

	none, err := repo.ListByUser(ctx, model.UserID(3))
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestFeedRepository_RefreshBookkeeping(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewFeedRepository(db)
	ctx := context.Background()
	feed := testutil.SeedFeed(t, db, "Blog", "http://x/feed")

	msg := "HTTP 500"
	require.NoError(t, repo.UpdateErrorMessage(ctx, feed.ID, &msg))
	got, err := repo.GetByID(ctx, feed.ID)
	require.NoError(t, err)
	require.Equal(t, "HTTP 500", *got.ErrorMessage)
	require.Nil(t, got.LastRefreshedAt)

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.MarkRefreshed(ctx, feed.ID, at))
	got, err = repo.GetByID(ctx, feed.ID)
	require.NoError(t, err)
	require.Nil(t, got.ErrorMessage)
	require.NotNil(t, got.LastRefreshedAt)
	require.True(t, at.Equal(*got.LastRefreshedAt))
}
